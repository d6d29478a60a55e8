package domain

import "time"

// SlotState derived state of a slot; exactly one holds for an active slot
type SlotState string

const (
	SlotFree     SlotState = "free"
	SlotReserved SlotState = "reserved"
	SlotOccupied SlotState = "occupied"
)

// Slot represents an individual parking space within a zone
type Slot struct {
	ID         int64
	ZoneID     int64
	SlotNumber int // unique within the zone
	Occupied   bool
	Reserved   bool
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// State returns the derived slot state.
// Occupied wins over reserved: the flags are mutually exclusive by
// construction, but the ordering keeps the answer sane on bad data.
func (s *Slot) State() SlotState {
	switch {
	case s.Occupied:
		return SlotOccupied
	case s.Reserved:
		return SlotReserved
	default:
		return SlotFree
	}
}

// IsFree returns true if the slot can be claimed by a new booking
func (s *Slot) IsFree() bool {
	return s.Active && !s.Occupied && !s.Reserved
}
