package models

import (
	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/domain"
)

// ZoneResponse ответ с данными зоны
type ZoneResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	HourlyRate decimal.Decimal `json:"hourlyRate"`
	TotalSlots int             `json:"totalSlots"`
	Active     bool            `json:"active"`
}

// ZoneListResponse ответ со списком зон
type ZoneListResponse struct {
	Zones []ZoneResponse `json:"zones"`
}

// AvailabilityResponse ответ с доступностью слотов зоны
type AvailabilityResponse struct {
	Zone     ZoneResponse `json:"zone"`
	Free     int          `json:"free"`
	Reserved int          `json:"reserved"`
	Occupied int          `json:"occupied"`
}

// FromDomainZone конвертирует domain модель в DTO
func FromDomainZone(z *domain.Zone) ZoneResponse {
	return ZoneResponse{
		ID:         z.ID,
		Name:       z.Name,
		HourlyRate: z.HourlyRate,
		TotalSlots: z.TotalSlots,
		Active:     z.Active,
	}
}

// FromDomainAvailability конвертирует доступность зоны в DTO
func FromDomainAvailability(a *domain.ZoneAvailability) *AvailabilityResponse {
	return &AvailabilityResponse{
		Zone:     FromDomainZone(a.Zone),
		Free:     a.Free,
		Reserved: a.Reserved,
		Occupied: a.Occupied,
	}
}
