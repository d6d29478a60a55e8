package record_payment

import (
	"github.com/shopspring/decimal"

	recordPayment "github.com/parkwise/PW-SessionService/internal/usecase/record_payment"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"` // "cash" или "online"
	Type   string          `json:"type"`   // "initial" или "final"
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	PaymentID     int64           `json:"paymentId"`
	SessionToken  string          `json:"sessionToken"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Type          string          `json:"type"`
	TransactionID *string         `json:"transactionId,omitempty"`
	InitialPaid   decimal.Decimal `json:"initialPaid"`
	FinalPaid     decimal.Decimal `json:"finalPaid"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	PaymentStatus string          `json:"paymentStatus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		PaymentID:     resp.PaymentID,
		SessionToken:  resp.SessionToken,
		Amount:        resp.Amount,
		Method:        resp.Method,
		Type:          resp.Type,
		TransactionID: resp.TransactionID,
		InitialPaid:   resp.InitialPaid,
		FinalPaid:     resp.FinalPaid,
		TotalPaid:     resp.TotalPaid,
		PaymentStatus: resp.PaymentStatus,
	}
}
