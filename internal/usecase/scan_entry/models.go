package scan_entry

import "time"

// Request модель запроса сканирования на въезде
type Request struct {
	Token string // QR-токен сессии
}

// Response модель ответа
type Response struct {
	ID          int64
	Token       string
	PlateNumber string
	ZoneID      int64
	SlotID      *int64
	Status      string
	EntryTime   time.Time
	AlreadyIn   bool // true, если сессия уже была активна (повторный скан)
}
