package record_payment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, req.Amount)
	}

	switch domain.PaymentMethod(req.Method) {
	case domain.MethodCash, domain.MethodOnline:
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}

	switch domain.PaymentType(req.Type) {
	case domain.PaymentInitial, domain.PaymentFinal:
	default:
		return fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, req.Type)
	}

	return nil
}
