package book_session

import (
	"context"
	"time"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error)
	GetOpenByVehicle(ctx context.Context, vehicleID int64) ([]*domain.ParkingSession, error)
	Update(ctx context.Context, s *domain.ParkingSession) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ClaimFree(ctx context.Context, zoneID int64) (*domain.Slot, error)
	Reserve(ctx context.Context, id int64) error
}

// ZoneRepository интерфейс репозитория зон
type ZoneRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	Upsert(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	Charge(ctx context.Context, req paygateway.ChargeRequest) (*paygateway.ChargeResult, error)
}

// Notifier интерфейс отправки уведомлений
type Notifier interface {
	Notify(ctx context.Context, n smsgateway.Notification) error
}

// TokenGenerator интерфейс генератора токенов сессий
type TokenGenerator interface {
	Generate() string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
