package get_zones

import (
	"context"

	"github.com/parkwise/PW-SessionService/internal/service/zones/models"
)

type ZonesService interface {
	List(ctx context.Context) (*models.ZoneListResponse, error)
	GetAvailability(ctx context.Context, zoneID int64) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
