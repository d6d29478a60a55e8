package scan_exit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса сканирования на выезде
type Request struct {
	Token         string // QR-токен сессии
	PaymentMethod string // "cash" или "online" для доплаты на выезде
}

// Response модель ответа с итогами сессии
type Response struct {
	ID              int64
	Token           string
	PlateNumber     string
	Status          string
	EntryTime       time.Time
	ExitTime        time.Time
	DurationSeconds int64
	BillableHours   int64
	IsFree          bool
	TotalDue        decimal.Decimal
	InitialPaid     decimal.Decimal
	FinalPaid       decimal.Decimal
	TotalPaid       decimal.Decimal
	PaymentStatus   string
}
