package domain

import (
	"strings"
	"time"
)

// Vehicle represents a vehicle known to the system, created on first booking
type Vehicle struct {
	ID          int64
	PlateNumber string // normalized, unique
	OwnerName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizePlate canonicalizes a license plate for storage and lookup:
// upper-case, spaces and hyphens stripped ("ka 01-ab 1234" -> "KA01AB1234")
func NormalizePlate(plate string) string {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	plate = strings.ReplaceAll(plate, " ", "")
	plate = strings.ReplaceAll(plate, "-", "")
	return plate
}
