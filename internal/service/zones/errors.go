package zones

import "errors"

var (
	// ErrZoneNotFound возвращается, когда зона не найдена
	ErrZoneNotFound = errors.New("service/zones: zone not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service/zones: internal error")
)
