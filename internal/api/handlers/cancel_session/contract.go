package cancel_session

import (
	"context"

	cancelSession "github.com/parkwise/PW-SessionService/internal/usecase/cancel_session"
)

type CancelSessionUseCase interface {
	Execute(ctx context.Context, req *cancelSession.Request) (*cancelSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
