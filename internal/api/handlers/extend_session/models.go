package extend_session

import (
	"time"

	extendSession "github.com/parkwise/PW-SessionService/internal/usecase/extend_session"
)

// ExtendSessionRequest HTTP request model
type ExtendSessionRequest struct {
	Hours int `json:"hours"` // 2, 6 или 24
}

// ExtendResponse HTTP response model
type ExtendResponse struct {
	ID                int64  `json:"id"`
	Token             string `json:"token"`
	PlateNumber       string `json:"plateNumber"`
	Status            string `json:"status"`
	BookingExpiryTime string `json:"bookingExpiryTime"`
	ExtensionCount    int    `json:"extensionCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *extendSession.Response) *ExtendResponse {
	return &ExtendResponse{
		ID:                resp.ID,
		Token:             resp.Token,
		PlateNumber:       resp.PlateNumber,
		Status:            resp.Status,
		BookingExpiryTime: resp.BookingExpiryTime.Format(time.RFC3339),
		ExtensionCount:    resp.ExtensionCount,
	}
}
