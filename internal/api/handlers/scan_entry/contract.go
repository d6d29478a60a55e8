package scan_entry

import (
	"context"

	scanEntry "github.com/parkwise/PW-SessionService/internal/usecase/scan_entry"
)

type ScanEntryUseCase interface {
	Execute(ctx context.Context, req *scanEntry.Request) (*scanEntry.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
