package get_session

import (
	"context"

	"github.com/parkwise/PW-SessionService/internal/service/sessions/models"
)

type SessionsService interface {
	GetByToken(ctx context.Context, token string) (*models.SessionResponse, error)
	GetPayments(ctx context.Context, token string) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
