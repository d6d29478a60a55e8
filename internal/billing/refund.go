package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

var two = decimal.NewFromInt(2)

// CalculateRefund computes the refund owed when a session is cancelled.
//
// Only reserved (never entered) sessions are refund-eligible. The window
// is measured from booking time, not entry time:
//
//	elapsed <= 30 min  -> 100% of the initial payment
//	elapsed <= 2 h     ->  50% of the initial payment
//	otherwise          ->   0
func CalculateRefund(session *domain.ParkingSession, now time.Time) decimal.Decimal {
	if session.Status != domain.StatusReserved {
		return decimal.Zero
	}
	if session.InitialAmountPaid.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	elapsed := now.Sub(session.CreatedAt)

	switch {
	case elapsed <= domain.FullRefundWindowMinutes*time.Minute:
		return session.InitialAmountPaid
	case elapsed <= domain.HalfRefundWindowMinutes*time.Minute:
		return session.InitialAmountPaid.Div(two).Round(2)
	default:
		return decimal.Zero
	}
}
