package expiry_warning

import "errors"

// Ошибки уровня use case
var (
	ErrInternal = errors.New("expiry_warning: internal error")
)
