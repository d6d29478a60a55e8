package cancel_session

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request запрос на отмену сессии
type Request struct {
	Token  string `json:"token"`
	Reason string `json:"reason,omitempty"`
}

// Response результат отмены
type Response struct {
	ID           int64           `json:"id"`
	Token        string          `json:"token"`
	PlateNumber  string          `json:"plate_number"`
	Status       string          `json:"status"`
	CancelledAt  time.Time       `json:"cancelled_at"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	RefundStatus string          `json:"refund_status"`
}
