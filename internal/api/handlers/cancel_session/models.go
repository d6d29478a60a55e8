package cancel_session

import (
	"time"

	"github.com/shopspring/decimal"

	cancelSession "github.com/parkwise/PW-SessionService/internal/usecase/cancel_session"
)

// CancelSessionRequest HTTP request model
type CancelSessionRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelResponse HTTP response model
type CancelResponse struct {
	ID           int64           `json:"id"`
	Token        string          `json:"token"`
	PlateNumber  string          `json:"plateNumber"`
	Status       string          `json:"status"`
	CancelledAt  string          `json:"cancelledAt"`
	RefundAmount decimal.Decimal `json:"refundAmount"`
	RefundStatus string          `json:"refundStatus"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelSession.Response) *CancelResponse {
	return &CancelResponse{
		ID:           resp.ID,
		Token:        resp.Token,
		PlateNumber:  resp.PlateNumber,
		Status:       resp.Status,
		CancelledAt:  resp.CancelledAt.Format(time.RFC3339),
		RefundAmount: resp.RefundAmount,
		RefundStatus: resp.RefundStatus,
	}
}
