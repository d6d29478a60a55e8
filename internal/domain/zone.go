package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Zone represents a priced parking area containing slots
type Zone struct {
	ID         int64
	Name       string
	HourlyRate decimal.Decimal // >= 0; rate changes apply only to sessions priced after the change
	TotalSlots int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AcceptsBookings returns true if new sessions may be booked into the zone
func (z *Zone) AcceptsBookings() bool {
	return z.Active
}

// ZoneAvailability per-zone slot occupancy counts
type ZoneAvailability struct {
	Zone     *Zone
	Free     int
	Reserved int
	Occupied int
}
