package zones

import (
	"context"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

// ZoneRepository интерфейс репозитория зон
type ZoneRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)
	List(ctx context.Context) ([]*domain.Zone, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CountStatesByZone(ctx context.Context, zoneID int64) (free, reserved, occupied int, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
