package extend_session

import "time"

// Request запрос на продление брони
type Request struct {
	Token string `json:"token"`
	Hours int    `json:"hours"`
}

// Response результат продления
type Response struct {
	ID                int64     `json:"id"`
	Token             string    `json:"token"`
	PlateNumber       string    `json:"plate_number"`
	Status            string    `json:"status"`
	BookingExpiryTime time.Time `json:"booking_expiry_time"`
	ExtensionCount    int       `json:"extension_count"`
}
