package scan_entry

import (
	"time"

	scanEntry "github.com/parkwise/PW-SessionService/internal/usecase/scan_entry"
)

// EntryResponse HTTP response model
type EntryResponse struct {
	ID          int64  `json:"id"`
	Token       string `json:"token"`
	PlateNumber string `json:"plateNumber"`
	ZoneID      int64  `json:"zoneId"`
	SlotID      *int64 `json:"slotId,omitempty"`
	Status      string `json:"status"`
	EntryTime   string `json:"entryTime"`
	AlreadyIn   bool   `json:"alreadyIn"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scanEntry.Response) *EntryResponse {
	return &EntryResponse{
		ID:          resp.ID,
		Token:       resp.Token,
		PlateNumber: resp.PlateNumber,
		ZoneID:      resp.ZoneID,
		SlotID:      resp.SlotID,
		Status:      resp.Status,
		EntryTime:   resp.EntryTime.Format(time.RFC3339),
		AlreadyIn:   resp.AlreadyIn,
	}
}
