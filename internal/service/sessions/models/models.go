package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

// Response модели

// SessionResponse ответ с данными сессии
type SessionResponse struct {
	ID          int64  `json:"id"`
	Token       string `json:"token"`
	PlateNumber string `json:"plateNumber"`
	ZoneID      int64  `json:"zoneId"`
	SlotID      *int64 `json:"slotId,omitempty"`
	Status      string `json:"status"`

	EntryTime         *time.Time `json:"entryTime,omitempty"`
	ExitTime          *time.Time `json:"exitTime,omitempty"`
	BookingExpiryTime *time.Time `json:"bookingExpiryTime,omitempty"`

	InitialAmountPaid decimal.Decimal `json:"initialAmountPaid"`
	FinalAmountPaid   decimal.Decimal `json:"finalAmountPaid"`
	TotalAmountPaid   decimal.Decimal `json:"totalAmountPaid"`
	PaymentStatus     string          `json:"paymentStatus"`

	CancellationReason *string         `json:"cancellationReason,omitempty"`
	CancellationType   *string         `json:"cancellationType,omitempty"`
	CancelledAt        *string         `json:"cancelledAt,omitempty"` // ISO 8601 format
	RefundAmount       decimal.Decimal `json:"refundAmount"`
	RefundStatus       string          `json:"refundStatus"`

	ExtensionCount int `json:"extensionCount"`

	// Текущая оценка стоимости: для active считается на "сейчас",
	// для completed — на момент выезда
	Billing *BillingQuote `json:"billing,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BillingQuote оценка стоимости стоянки
type BillingQuote struct {
	DurationSeconds  int64           `json:"durationSeconds"`
	BillableHours    int64           `json:"billableHours"`
	IsFree           bool            `json:"isFree"`
	AmountDue        decimal.Decimal `json:"amountDue"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// SessionListResponse ответ со списком сессий
type SessionListResponse struct {
	PlateNumber string            `json:"plateNumber"`
	Sessions    []SessionResponse `json:"sessions"`
}

// PaymentResponse запись журнала платежей
type PaymentResponse struct {
	ID            int64           `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PaymentListResponse ответ с журналом платежей сессии
type PaymentListResponse struct {
	SessionToken string            `json:"sessionToken"`
	Payments     []PaymentResponse `json:"payments"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.ParkingSession, plate string) *SessionResponse {
	if s == nil {
		return nil
	}

	resp := &SessionResponse{
		ID:                 s.ID,
		Token:              s.Token,
		PlateNumber:        plate,
		ZoneID:             s.ZoneID,
		SlotID:             s.SlotID,
		Status:             string(s.Status),
		EntryTime:          s.EntryTime,
		ExitTime:           s.ExitTime,
		BookingExpiryTime:  s.BookingExpiryTime,
		InitialAmountPaid:  s.InitialAmountPaid,
		FinalAmountPaid:    s.FinalAmountPaid,
		TotalAmountPaid:    s.TotalAmountPaid,
		PaymentStatus:      string(s.PaymentStatus),
		CancellationReason: s.CancellationReason,
		RefundAmount:       s.RefundAmount,
		RefundStatus:       string(s.RefundStatus),
		ExtensionCount:     s.ExtensionCount,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}

	if s.CancellationType != nil {
		ct := string(*s.CancellationType)
		resp.CancellationType = &ct
	}

	if s.CancelledAt != nil {
		cancelledStr := s.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainPaymentList конвертирует журнал платежей в DTO
func FromDomainPaymentList(token string, payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		SessionToken: token,
		Payments:     make([]PaymentResponse, 0, len(payments)),
	}

	for _, p := range payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			Method:        string(p.Method),
			Type:          string(p.Type),
			Status:        string(p.Status),
			TransactionID: p.TransactionID,
			CreatedAt:     p.CreatedAt,
		})
	}

	return resp
}
