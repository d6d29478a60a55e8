package record_payment

import "github.com/shopspring/decimal"

// Request запрос на проведение платежа по сессии
type Request struct {
	Token  string          `json:"token"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Type   string          `json:"type"` // "initial" или "final"
}

// Response результат проведения платежа
type Response struct {
	PaymentID     int64           `json:"payment_id"`
	SessionToken  string          `json:"session_token"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Type          string          `json:"type"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	InitialPaid   decimal.Decimal `json:"initial_paid"`
	FinalPaid     decimal.Decimal `json:"final_paid"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	PaymentStatus string          `json:"payment_status"`
}
