package sessions

import (
	"context"
	"time"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.ParkingSession, error)
	GetByVehicle(ctx context.Context, vehicleID int64) ([]*domain.ParkingSession, error)
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
}

// ZoneRepository интерфейс репозитория зон
type ZoneRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetBySession(ctx context.Context, sessionID int64) ([]*domain.Payment, error)
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
