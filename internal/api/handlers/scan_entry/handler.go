package scan_entry

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	scanEntry "github.com/parkwise/PW-SessionService/internal/usecase/scan_entry"
)

const (
	msgSessionNotFound   = "сессия не найдена"
	msgInvalidTransition = "сессия не допускает въезд"
)

type Handler struct {
	useCase ScanEntryUseCase
	logger  Logger
}

func NewHandler(useCase ScanEntryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{token}/entry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.Execute(r.Context(), &scanEntry.Request{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, scanEntry.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{token}/entry - Session not found: token=%s", token)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, scanEntry.ErrInvalidTransition):
			h.logger.Warn("POST /sessions/{token}/entry - Invalid transition: token=%s", token)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("POST /sessions/{token}/entry - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{token}/entry - Entry recorded: token=%s, alreadyIn=%v", token, result.AlreadyIn)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
