package record_payment

import "errors"

// Ошибки уровня use case
var (
	ErrSessionNotFound   = errors.New("record_payment: session not found")
	ErrInvalidTransition = errors.New("record_payment: session is already closed")
	ErrGatewayFailure    = errors.New("record_payment: payment gateway failure")
	ErrInvalidAmount     = errors.New("record_payment: amount must be positive")
	ErrInvalidInput      = errors.New("record_payment: invalid input")
	ErrInternal          = errors.New("record_payment: internal error")
)
