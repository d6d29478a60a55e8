package book_session

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitialPayment опциональный платёж в момент бронирования
type InitialPayment struct {
	Amount decimal.Decimal // > 0
	Method string          // "cash" или "online"
}

// Request модель запроса на бронирование
type Request struct {
	PlateNumber    string          // Номер автомобиля (нормализуется перед поиском)
	OwnerName      string          // Имя владельца
	ZoneID         int64           // ID зоны
	ExpiryHours    *int            // Срок жизни брони в часах (по умолчанию 24)
	InitialPayment *InitialPayment // Частичная оплата при бронировании (опционально)
}

// Response модель ответа с созданной сессией
type Response struct {
	ID                int64
	Token             string // QR-токен для сканирования на въезде/выезде
	PlateNumber       string
	ZoneID            int64
	SlotID            int64
	SlotNumber        int
	Status            string
	BookingExpiryTime time.Time
	InitialAmountPaid decimal.Decimal
	PaymentStatus     string
	CreatedAt         time.Time
}
