package book_session

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if domain.NormalizePlate(req.PlateNumber) == "" {
		return fmt.Errorf("%w: plateNumber is required", ErrInvalidInput)
	}

	if req.ZoneID <= 0 {
		return fmt.Errorf("%w: zoneID must be positive", ErrInvalidInput)
	}

	if req.ExpiryHours != nil && *req.ExpiryHours <= 0 {
		return fmt.Errorf("%w: expiryHours must be positive", ErrInvalidInput)
	}

	if req.InitialPayment != nil {
		if !req.InitialPayment.Amount.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: got %s", ErrInvalidAmount, req.InitialPayment.Amount)
		}
		if err := validateMethod(req.InitialPayment.Method); err != nil {
			return err
		}
	}

	return nil
}

// validateMethod проверяет способ оплаты
func validateMethod(method string) error {
	switch domain.PaymentMethod(method) {
	case domain.MethodCash, domain.MethodOnline:
		return nil
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}
}
