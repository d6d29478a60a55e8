package book_session

import (
	"time"

	"github.com/shopspring/decimal"

	bookSession "github.com/parkwise/PW-SessionService/internal/usecase/book_session"
)

// InitialPaymentRequest опциональный платёж при бронировании
type InitialPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"` // "cash" или "online"
}

// BookSessionRequest HTTP request model
type BookSessionRequest struct {
	PlateNumber    string                 `json:"plateNumber"`
	OwnerName      string                 `json:"ownerName,omitempty"`
	ZoneID         int64                  `json:"zoneId"`
	ExpiryHours    *int                   `json:"expiryHours,omitempty"`
	InitialPayment *InitialPaymentRequest `json:"initialPayment,omitempty"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID                int64           `json:"id"`
	Token             string          `json:"token"`
	PlateNumber       string          `json:"plateNumber"`
	ZoneID            int64           `json:"zoneId"`
	SlotID            int64           `json:"slotId"`
	SlotNumber        int             `json:"slotNumber"`
	Status            string          `json:"status"`
	BookingExpiryTime string          `json:"bookingExpiryTime"`
	InitialAmountPaid decimal.Decimal `json:"initialAmountPaid"`
	PaymentStatus     string          `json:"paymentStatus"`
	CreatedAt         string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookSessionRequest) ToUseCaseRequest() *bookSession.Request {
	req := &bookSession.Request{
		PlateNumber: r.PlateNumber,
		OwnerName:   r.OwnerName,
		ZoneID:      r.ZoneID,
		ExpiryHours: r.ExpiryHours,
	}
	if r.InitialPayment != nil {
		req.InitialPayment = &bookSession.InitialPayment{
			Amount: r.InitialPayment.Amount,
			Method: r.InitialPayment.Method,
		}
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:                resp.ID,
		Token:             resp.Token,
		PlateNumber:       resp.PlateNumber,
		ZoneID:            resp.ZoneID,
		SlotID:            resp.SlotID,
		SlotNumber:        resp.SlotNumber,
		Status:            resp.Status,
		BookingExpiryTime: resp.BookingExpiryTime.Format(time.RFC3339),
		InitialAmountPaid: resp.InitialAmountPaid,
		PaymentStatus:     resp.PaymentStatus,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
