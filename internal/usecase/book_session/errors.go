package book_session

import "errors"

var (
	// ErrZoneNotFound возвращается, когда зона не найдена
	ErrZoneNotFound = errors.New("book_session: zone not found")

	// ErrZoneInactive возвращается при попытке бронирования в неактивной зоне
	ErrZoneInactive = errors.New("book_session: zone is not active")

	// ErrNoSlotAvailable возвращается, когда в зоне нет свободных слотов
	ErrNoSlotAvailable = errors.New("book_session: no slot available")

	// ErrDuplicateActiveSession возвращается, когда у автомобиля уже есть незавершённая сессия
	ErrDuplicateActiveSession = errors.New("book_session: vehicle already has an open session")

	// ErrGatewayFailure возвращается, когда платёжный шлюз не принял начальный платёж
	// Бронирование при этом полностью откатывается
	ErrGatewayFailure = errors.New("book_session: payment gateway failure")

	// ErrInvalidAmount возвращается, когда сумма начального платежа не положительна
	ErrInvalidAmount = errors.New("book_session: initial payment amount must be positive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_session: internal error")
)
