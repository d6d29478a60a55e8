package scan_exit

import (
	"context"

	scanExit "github.com/parkwise/PW-SessionService/internal/usecase/scan_exit"
)

type ScanExitUseCase interface {
	Execute(ctx context.Context, req *scanExit.Request) (*scanExit.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
