package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

func reservedSession(createdAt time.Time, initialPaid string) *domain.ParkingSession {
	return &domain.ParkingSession{
		Status:            domain.StatusReserved,
		InitialAmountPaid: decimal.RequireFromString(initialPaid),
		CreatedAt:         createdAt,
	}
}

func TestCalculateRefundWindows(t *testing.T) {
	createdAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{name: "10 minutes full refund", elapsed: 10 * time.Minute, want: "150.00"},
		{name: "exactly 30 minutes full refund", elapsed: 30 * time.Minute, want: "150.00"},
		{name: "1 hour half refund", elapsed: time.Hour, want: "75.00"},
		{name: "exactly 2 hours half refund", elapsed: 2 * time.Hour, want: "75.00"},
		{name: "3 hours no refund", elapsed: 3 * time.Hour, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := reservedSession(createdAt, "150.00")
			refund := CalculateRefund(session, createdAt.Add(tt.elapsed))

			assert.True(t, refund.Equal(decimal.RequireFromString(tt.want)),
				"refund = %s, want %s", refund, tt.want)
		})
	}
}

func TestCalculateRefundOnlyReservedEligible(t *testing.T) {
	createdAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	now := createdAt.Add(5 * time.Minute)

	for _, status := range []domain.SessionStatus{domain.StatusActive, domain.StatusCompleted, domain.StatusCancelled} {
		session := reservedSession(createdAt, "150.00")
		session.Status = status

		assert.True(t, CalculateRefund(session, now).IsZero(), "status=%s", status)
	}
}

func TestCalculateRefundNothingPaid(t *testing.T) {
	createdAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	session := reservedSession(createdAt, "0")

	assert.True(t, CalculateRefund(session, createdAt.Add(time.Minute)).IsZero())
}

func TestCalculateRefundHalfRoundsToCents(t *testing.T) {
	createdAt := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	session := reservedSession(createdAt, "99.99")

	refund := CalculateRefund(session, createdAt.Add(time.Hour))
	assert.True(t, refund.Equal(decimal.RequireFromString("50.00")), "refund = %s", refund)
}
