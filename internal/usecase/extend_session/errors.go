package extend_session

import "errors"

// Ошибки уровня use case
var (
	ErrSessionNotFound   = errors.New("extend_session: session not found")
	ErrInvalidTransition = errors.New("extend_session: only reserved sessions can be extended")
	ErrInvalidHours      = errors.New("extend_session: unsupported extension duration")
	ErrInvalidInput      = errors.New("extend_session: invalid input")
	ErrInternal          = errors.New("extend_session: internal error")
)
