package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAmount(t *testing.T) {
	entry := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)
	rate := decimal.RequireFromString("100.00")

	tests := []struct {
		name      string
		elapsed   time.Duration
		wantHours int64
		wantTotal string
		wantFree  bool
	}{
		{name: "zero duration is free", elapsed: 0, wantHours: 0, wantTotal: "0", wantFree: true},
		{name: "exactly grace period is free", elapsed: 3 * time.Minute, wantHours: 0, wantTotal: "0", wantFree: true},
		{name: "one second past grace bills one hour", elapsed: 3*time.Minute + time.Second, wantHours: 1, wantTotal: "100.00", wantFree: false},
		{name: "half an hour bills one hour", elapsed: 30 * time.Minute, wantHours: 1, wantTotal: "100.00", wantFree: false},
		{name: "exactly one hour bills one hour", elapsed: time.Hour, wantHours: 1, wantTotal: "100.00", wantFree: false},
		{name: "one hour one second bills two hours", elapsed: time.Hour + time.Second, wantHours: 2, wantTotal: "200.00", wantFree: false},
		{name: "ninety minutes bills two hours", elapsed: 90 * time.Minute, wantHours: 2, wantTotal: "200.00", wantFree: false},
		{name: "full day", elapsed: 24 * time.Hour, wantHours: 24, wantTotal: "2400.00", wantFree: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := CalculateAmount(entry, entry.Add(tt.elapsed), rate)
			require.NoError(t, err)

			assert.Equal(t, int64(tt.elapsed/time.Second), quote.DurationSeconds)
			assert.Equal(t, tt.wantHours, quote.BillableHours)
			assert.True(t, quote.Amount.Equal(decimal.RequireFromString(tt.wantTotal)),
				"amount = %s, want %s", quote.Amount, tt.wantTotal)
			assert.Equal(t, tt.wantFree, quote.IsFree)
		})
	}
}

func TestCalculateAmountExitBeforeEntry(t *testing.T) {
	entry := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	_, err := CalculateAmount(entry, entry.Add(-time.Minute), decimal.NewFromInt(100))
	require.ErrorIs(t, err, ErrInvalidDuration)
}

func TestCalculateAmountNegativeRate(t *testing.T) {
	entry := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	_, err := CalculateAmount(entry, entry.Add(time.Hour), decimal.NewFromInt(-1))
	require.ErrorIs(t, err, ErrNegativeRate)
}

func TestCalculateAmountZeroRate(t *testing.T) {
	entry := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	quote, err := CalculateAmount(entry, entry.Add(2*time.Hour), decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, int64(2), quote.BillableHours)
	assert.True(t, quote.Amount.IsZero())
	assert.False(t, quote.IsFree)
}

func TestRemainingBalance(t *testing.T) {
	due := decimal.RequireFromString("200.00")

	assert.True(t, RemainingBalance(due, decimal.NewFromInt(50)).Equal(decimal.RequireFromString("150.00")))
	assert.True(t, RemainingBalance(due, due).IsZero())
	// Overpayment never yields a negative balance
	assert.True(t, RemainingBalance(due, decimal.NewFromInt(500)).IsZero())
}
