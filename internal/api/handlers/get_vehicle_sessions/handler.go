package get_vehicle_sessions

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	sessionsService "github.com/parkwise/PW-SessionService/internal/service/sessions"
)

const (
	msgVehicleNotFound = "автомобиль не найден"
	msgInvalidPlate    = "некорректный номер автомобиля"
)

type Handler struct {
	service SessionsService
	logger  Logger
}

func NewHandler(service SessionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vehicles/{plate}/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	plate := mux.Vars(r)["plate"]

	result, err := h.service.GetVehicleHistory(r.Context(), plate)
	if err != nil {
		switch {
		case errors.Is(err, sessionsService.ErrInvalidInput):
			h.logger.Warn("GET /vehicles/{plate}/sessions - Invalid plate: %s", plate)
			handlers.RespondBadRequest(w, msgInvalidPlate)

		case errors.Is(err, sessionsService.ErrVehicleNotFound):
			h.logger.Warn("GET /vehicles/{plate}/sessions - Vehicle not found: plate=%s", plate)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		default:
			h.logger.Error("GET /vehicles/{plate}/sessions - Failed: plate=%s, error=%v", plate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
