package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod how a payment was made
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodOnline PaymentMethod = "online"
)

// PaymentType whether the payment was taken at booking or at exit
type PaymentType string

const (
	PaymentInitial PaymentType = "initial"
	PaymentFinal   PaymentType = "final"
)

// PaymentState outcome of an individual payment attempt
type PaymentState string

const (
	PaymentSuccess      PaymentState = "success"
	PaymentFailed       PaymentState = "failed"
	PaymentStatePending PaymentState = "pending"
)

// Payment is an immutable ledger entry recorded against a session.
// Rows are only ever appended, never mutated.
type Payment struct {
	ID            int64
	SessionID     int64
	Amount        decimal.Decimal // always > 0
	Method        PaymentMethod
	Type          PaymentType
	Status        PaymentState
	TransactionID *string // external gateway transaction id, nil for cash
	CreatedAt     time.Time
}
