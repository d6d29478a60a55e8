package scan_entry

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена по токену
	ErrSessionNotFound = errors.New("scan_entry: session not found")

	// ErrInvalidTransition возвращается при сканировании въезда по завершённой
	// или отменённой сессии
	ErrInvalidTransition = errors.New("scan_entry: session is not eligible for entry")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("scan_entry: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("scan_entry: internal error")
)
