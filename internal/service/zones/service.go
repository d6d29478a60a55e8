package zones

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkwise/PW-SessionService/internal/domain"
	zoneRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/zone"
	"github.com/parkwise/PW-SessionService/internal/service/zones/models"
)

// Service сервис чтения зон и их доступности
type Service struct {
	zoneRepo ZoneRepository
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса зон
func NewService(zoneRepo ZoneRepository, slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		zoneRepo: zoneRepo,
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// List получает список активных зон
func (s *Service) List(ctx context.Context) (*models.ZoneListResponse, error) {
	s.logger.Info("List: fetching zones")

	zones, err := s.zoneRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.ZoneListResponse{Zones: make([]models.ZoneResponse, 0, len(zones))}
	for _, z := range zones {
		resp.Zones = append(resp.Zones, models.FromDomainZone(z))
	}

	s.logger.Info("List: fetched %d zone(s)", len(zones))
	return resp, nil
}

// GetAvailability получает зону с текущим распределением слотов по состояниям
func (s *Service) GetAvailability(ctx context.Context, zoneID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: fetching availability for zone=%d", zoneID)

	zone, err := s.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, zoneRepo.ErrZoneNotFound) {
			s.logger.Warn("GetAvailability: zone id=%d not found", zoneID)
			return nil, ErrZoneNotFound
		}
		s.logger.Error("GetAvailability: repository error for zone=%d: %v", zoneID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	free, reserved, occupied, err := s.slotRepo.CountStatesByZone(ctx, zoneID)
	if err != nil {
		s.logger.Error("GetAvailability: failed to count slots for zone=%d: %v", zoneID, err)
		return nil, fmt.Errorf("%w: GetAvailability - failed to count slots: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(&domain.ZoneAvailability{
		Zone:     zone,
		Free:     free,
		Reserved: reserved,
		Occupied: occupied,
	}), nil
}
