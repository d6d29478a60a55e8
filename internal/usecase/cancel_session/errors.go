package cancel_session

import "errors"

// Ошибки уровня use case
var (
	ErrSessionNotFound    = errors.New("cancel_session: session not found")
	ErrCannotCancelActive = errors.New("cancel_session: vehicle already inside, cancellation not allowed")
	ErrAlreadyFinal       = errors.New("cancel_session: session already completed or cancelled")
	ErrInvalidInput       = errors.New("cancel_session: invalid input")
	ErrInternal           = errors.New("cancel_session: internal error")
)
