package domain

// Billing constants
const (
	GracePeriodSeconds = 180 // up to 3 minutes of parking is free
	SecondsPerHour     = 3600
	MinBillableHours   = 1 // any stay past the grace period bills at least one hour
)

// Refund policy windows, measured from session creation (booking time)
const (
	FullRefundWindowMinutes = 30  // <= 30 min: 100% of the initial payment
	HalfRefundWindowMinutes = 120 // <= 2 h: 50% of the initial payment
)

// Booking constants
const (
	DefaultBookingExpiryHours = 24
	CancelReasonExpired       = "expired"
)

// AllowedExtensionHours valid values for a booking extension
var AllowedExtensionHours = []int{2, 6, 24}

// IsAllowedExtension returns true if hours is a valid extension step
func IsAllowedExtension(hours int) bool {
	for _, h := range AllowedExtensionHours {
		if h == hours {
			return true
		}
	}
	return false
}

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TerminalStatuses session statuses that allow no further transitions
var TerminalStatuses = []SessionStatus{
	StatusCompleted,
	StatusCancelled,
}

// OpenStatuses session statuses that block a new booking for the same vehicle
var OpenStatuses = []SessionStatus{
	StatusReserved,
	StatusActive,
}
