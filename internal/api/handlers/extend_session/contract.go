package extend_session

import (
	"context"

	extendSession "github.com/parkwise/PW-SessionService/internal/usecase/extend_session"
)

type ExtendSessionUseCase interface {
	Execute(ctx context.Context, req *extendSession.Request) (*extendSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
