package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransitionGuards(t *testing.T) {
	tests := []struct {
		status     SessionStatus
		canEnter   bool
		canExit    bool
		canCancel  bool
		canExtend  bool
		isTerminal bool
	}{
		{StatusReserved, true, false, true, true, false},
		{StatusActive, true, true, false, false, false},
		{StatusCompleted, false, false, false, false, true},
		{StatusCancelled, false, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			s := &ParkingSession{Status: tt.status}
			assert.Equal(t, tt.canEnter, s.CanEnter())
			assert.Equal(t, tt.canExit, s.CanExit())
			assert.Equal(t, tt.canCancel, s.CanBeCancelled())
			assert.Equal(t, tt.canExtend, s.CanBeExtended())
			assert.Equal(t, tt.isTerminal, s.IsTerminal())
		})
	}
}

func TestRecalculateTotal(t *testing.T) {
	s := &ParkingSession{
		InitialAmountPaid: decimal.NewFromInt(60),
		FinalAmountPaid:   decimal.NewFromInt(40),
	}

	s.RecalculateTotal()

	assert.True(t, s.TotalAmountPaid.Equal(decimal.NewFromInt(100)))
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name    string
		status  SessionStatus
		expiry  *time.Time
		expired bool
	}{
		{"reserved past expiry", StatusReserved, &past, true},
		{"reserved at expiry", StatusReserved, &now, true},
		{"reserved before expiry", StatusReserved, &future, false},
		{"reserved without expiry", StatusReserved, nil, false},
		{"active never expires", StatusActive, &past, false},
		{"cancelled never expires", StatusCancelled, &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ParkingSession{Status: tt.status, BookingExpiryTime: tt.expiry}
			assert.Equal(t, tt.expired, s.IsExpired(now))
		})
	}
}
