package get_zones

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	zonesService "github.com/parkwise/PW-SessionService/internal/service/zones"
)

const (
	msgZoneNotFound  = "зона не найдена"
	msgInvalidZoneID = "некорректный идентификатор зоны"
)

type Handler struct {
	service ZonesService
	logger  Logger
}

func NewHandler(service ZonesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/zones
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /zones - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleAvailability GET /api/v1/zones/{zoneId}/availability
func (h *Handler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	zoneID, err := strconv.ParseInt(mux.Vars(r)["zoneId"], 10, 64)
	if err != nil || zoneID <= 0 {
		h.logger.Warn("GET /zones/{zoneId}/availability - Invalid zone id: %s", mux.Vars(r)["zoneId"])
		handlers.RespondBadRequest(w, msgInvalidZoneID)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), zoneID)
	if err != nil {
		switch {
		case errors.Is(err, zonesService.ErrZoneNotFound):
			h.logger.Warn("GET /zones/{zoneId}/availability - Zone not found: zone=%d", zoneID)
			handlers.RespondNotFound(w, msgZoneNotFound)

		default:
			h.logger.Error("GET /zones/{zoneId}/availability - Failed: zone=%d, error=%v", zoneID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
