package billing

import "errors"

var (
	// ErrInvalidDuration is returned when the reference time precedes the entry time
	ErrInvalidDuration = errors.New("billing: reference time is before entry time")

	// ErrNegativeRate is returned when the hourly rate is negative
	ErrNegativeRate = errors.New("billing: hourly rate must not be negative")
)
