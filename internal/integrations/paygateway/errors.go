package paygateway

import "errors"

var (
	// ErrChargeDeclined возвращается, когда шлюз отклонил платёж
	ErrChargeDeclined = errors.New("paygateway client: charge declined")

	// ErrGatewayUnavailable возвращается при недоступности платёжного шлюза
	ErrGatewayUnavailable = errors.New("paygateway client: gateway unavailable")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("paygateway client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("paygateway client: internal error")
)
