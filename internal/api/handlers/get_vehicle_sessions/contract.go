package get_vehicle_sessions

import (
	"context"

	"github.com/parkwise/PW-SessionService/internal/service/sessions/models"
)

type SessionsService interface {
	GetVehicleHistory(ctx context.Context, plateNumber string) (*models.SessionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
