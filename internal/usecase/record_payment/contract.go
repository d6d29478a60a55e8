package record_payment

import (
	"context"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.ParkingSession, error)
	Update(ctx context.Context, s *domain.ParkingSession) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	Charge(ctx context.Context, req paygateway.ChargeRequest) (*paygateway.ChargeResult, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
