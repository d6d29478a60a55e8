package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionStatus represents the lifecycle status of a parking session
type SessionStatus string

const (
	StatusReserved  SessionStatus = "reserved"
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// PaymentStatus represents how much of the session fee has been settled
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// CancellationType distinguishes user-initiated cancellations from
// automatic ones (booking expiry sweep)
type CancellationType string

const (
	CancellationManual CancellationType = "manual"
	CancellationAuto   CancellationType = "auto"
)

// RefundStatus represents the state of a cancellation refund
type RefundStatus string

const (
	RefundNone      RefundStatus = "none"
	RefundInitiated RefundStatus = "initiated"
)

// ParkingSession represents one vehicle's occupancy record from
// booking/entry to exit/cancellation
type ParkingSession struct {
	ID        int64
	Token     string // opaque QR token, globally unique
	VehicleID int64
	ZoneID    int64
	SlotID    *int64 // nil until a slot is assigned

	Status SessionStatus

	EntryTime         *time.Time // set on reserved -> active
	ExitTime          *time.Time // set on active -> completed
	BookingExpiryTime *time.Time // set for reserved sessions

	InitialAmountPaid decimal.Decimal // paid at booking time
	FinalAmountPaid   decimal.Decimal // paid at exit time
	TotalAmountPaid   decimal.Decimal // always initial + final
	PaymentStatus     PaymentStatus

	CancellationReason *string
	CancellationType   *CancellationType
	CancelledAt        *time.Time
	RefundAmount       decimal.Decimal
	RefundStatus       RefundStatus

	ExtensionCount    int
	ExpiryWarningSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the session is in a final state
func (s *ParkingSession) IsTerminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusCancelled
}

// CanEnter returns true if the vehicle may enter on this session.
// An already active session is allowed: entry scans are idempotent.
func (s *ParkingSession) CanEnter() bool {
	return s.Status == StatusReserved || s.Status == StatusActive
}

// CanExit returns true if the session may be completed via an exit scan
func (s *ParkingSession) CanExit() bool {
	return s.Status == StatusActive
}

// CanBeCancelled returns true if the session may be cancelled.
// Active sessions must exit through the gate, they cannot be cancelled.
func (s *ParkingSession) CanBeCancelled() bool {
	return s.Status == StatusReserved
}

// CanBeExtended returns true if the booking expiry may be extended
func (s *ParkingSession) CanBeExtended() bool {
	return s.Status == StatusReserved
}

// RecalculateTotal restores the total_amount_paid invariant after any
// change to the partial amounts
func (s *ParkingSession) RecalculateTotal() {
	s.TotalAmountPaid = s.InitialAmountPaid.Add(s.FinalAmountPaid)
}

// IsExpired returns true if a reserved session has outlived its booking expiry
func (s *ParkingSession) IsExpired(now time.Time) bool {
	return s.Status == StatusReserved &&
		s.BookingExpiryTime != nil &&
		!s.BookingExpiryTime.After(now)
}
