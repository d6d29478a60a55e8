package scan_exit

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена по токену
	ErrSessionNotFound = errors.New("scan_exit: session not found")

	// ErrInvalidTransition возвращается при сканировании выезда по сессии
	// не в статусе active
	ErrInvalidTransition = errors.New("scan_exit: session is not active")

	// ErrInvalidDuration возвращается, когда время выезда раньше времени въезда
	ErrInvalidDuration = errors.New("scan_exit: exit time is before entry time")

	// ErrGatewayFailure возвращается, когда платёжный шлюз не принял финальный платёж
	// Выезд при этом полностью откатывается
	ErrGatewayFailure = errors.New("scan_exit: payment gateway failure")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("scan_exit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("scan_exit: internal error")
)
