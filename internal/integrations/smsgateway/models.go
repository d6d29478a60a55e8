package smsgateway

// EventKind вид события, по которому отправляется уведомление
type EventKind string

const (
	EventBooked        EventKind = "booked"
	EventEntry         EventKind = "entry"
	EventExit          EventKind = "exit"
	EventCancelled     EventKind = "cancelled"
	EventExtended      EventKind = "extended"
	EventExpiryWarning EventKind = "expiry_warning"
	EventExpired       EventKind = "expired"
)

// Notification уведомление об изменении сессии
type Notification struct {
	SessionToken string    `json:"session_token"`
	PlateNumber  string    `json:"plate_number"`
	Event        EventKind `json:"event"`
	Message      string    `json:"message,omitempty"`
}
