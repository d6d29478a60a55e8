package get_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	sessionsService "github.com/parkwise/PW-SessionService/internal/service/sessions"
)

const (
	msgSessionNotFound = "сессия не найдена"
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

// Handle GET /api/v1/sessions/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.service.GetByToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, sessionsService.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{token} - Session not found: token=%s", token)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("GET /sessions/{token} - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePayments GET /api/v1/sessions/{token}/payments
func (h *Handler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.service.GetPayments(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, sessionsService.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{token}/payments - Session not found: token=%s", token)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("GET /sessions/{token}/payments - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
