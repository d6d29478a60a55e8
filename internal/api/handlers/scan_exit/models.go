package scan_exit

import (
	"time"

	"github.com/shopspring/decimal"

	scanExit "github.com/parkwise/PW-SessionService/internal/usecase/scan_exit"
)

// ScanExitRequest HTTP request model
type ScanExitRequest struct {
	PaymentMethod string `json:"paymentMethod"` // "cash" или "online"
}

// ExitResponse HTTP response model
type ExitResponse struct {
	ID              int64           `json:"id"`
	Token           string          `json:"token"`
	PlateNumber     string          `json:"plateNumber"`
	Status          string          `json:"status"`
	EntryTime       string          `json:"entryTime"`
	ExitTime        string          `json:"exitTime"`
	DurationSeconds int64           `json:"durationSeconds"`
	BillableHours   int64           `json:"billableHours"`
	IsFree          bool            `json:"isFree"`
	TotalDue        decimal.Decimal `json:"totalDue"`
	InitialPaid     decimal.Decimal `json:"initialPaid"`
	FinalPaid       decimal.Decimal `json:"finalPaid"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	PaymentStatus   string          `json:"paymentStatus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scanExit.Response) *ExitResponse {
	return &ExitResponse{
		ID:              resp.ID,
		Token:           resp.Token,
		PlateNumber:     resp.PlateNumber,
		Status:          resp.Status,
		EntryTime:       resp.EntryTime.Format(time.RFC3339),
		ExitTime:        resp.ExitTime.Format(time.RFC3339),
		DurationSeconds: resp.DurationSeconds,
		BillableHours:   resp.BillableHours,
		IsFree:          resp.IsFree,
		TotalDue:        resp.TotalDue,
		InitialPaid:     resp.InitialPaid,
		FinalPaid:       resp.FinalPaid,
		TotalPaid:       resp.TotalPaid,
		PaymentStatus:   resp.PaymentStatus,
	}
}
