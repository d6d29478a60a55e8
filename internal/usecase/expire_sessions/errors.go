package expire_sessions

import "errors"

// Ошибки уровня use case
var (
	ErrInternal = errors.New("expire_sessions: internal error")
)
