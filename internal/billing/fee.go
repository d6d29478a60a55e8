// Package billing pure fee and refund calculations for parking sessions.
// All currency arithmetic is exact decimal, never floating point.
package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

// Quote is the result of a fee calculation
type Quote struct {
	DurationSeconds int64
	BillableHours   int64
	Amount          decimal.Decimal
	IsFree          bool
}

// CalculateAmount computes the amount due for a stay from entryTime to
// referenceTime at the given hourly rate.
//
// referenceTime is "now" for active sessions and exit_time for completed
// ones. Stays within the grace period are free. Past the grace period
// any started hour bills as a full hour, minimum one.
func CalculateAmount(entryTime, referenceTime time.Time, hourlyRate decimal.Decimal) (*Quote, error) {
	if referenceTime.Before(entryTime) {
		return nil, ErrInvalidDuration
	}
	if hourlyRate.IsNegative() {
		return nil, ErrNegativeRate
	}

	seconds := int64(referenceTime.Sub(entryTime) / time.Second)

	if seconds <= domain.GracePeriodSeconds {
		return &Quote{
			DurationSeconds: seconds,
			BillableHours:   0,
			Amount:          decimal.Zero,
			IsFree:          true,
		}, nil
	}

	hours := seconds / domain.SecondsPerHour
	if seconds%domain.SecondsPerHour > 0 {
		hours++
	}
	if hours < domain.MinBillableHours {
		hours = domain.MinBillableHours
	}

	return &Quote{
		DurationSeconds: seconds,
		BillableHours:   hours,
		Amount:          hourlyRate.Mul(decimal.NewFromInt(hours)),
		IsFree:          false,
	}, nil
}

// RemainingBalance computes how much is still owed on a session given
// the total due: max(0, totalDue - totalPaid)
func RemainingBalance(totalDue, totalPaid decimal.Decimal) decimal.Decimal {
	balance := totalDue.Sub(totalPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}
