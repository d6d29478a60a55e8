package smsgateway

import "errors"

var (
	// ErrSendFailed возвращается, когда шлюз не принял уведомление
	ErrSendFailed = errors.New("smsgateway client: failed to send notification")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")
)
