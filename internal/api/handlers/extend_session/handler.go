package extend_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	extendSession "github.com/parkwise/PW-SessionService/internal/usecase/extend_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена"
	msgInvalidTransition  = "продлить можно только забронированную сессию"
	msgInvalidHours       = "допустимое продление: 2, 6 или 24 часа"
)

type Handler struct {
	useCase ExtendSessionUseCase
	logger  Logger
}

func NewHandler(useCase ExtendSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{token}/extend
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req ExtendSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{token}/extend - Invalid request body: token=%s: %v", token, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &extendSession.Request{
		Token: token,
		Hours: req.Hours,
	})
	if err != nil {
		switch {
		case errors.Is(err, extendSession.ErrInvalidHours):
			h.logger.Warn("PATCH /sessions/{token}/extend - Invalid hours=%d: token=%s", req.Hours, token)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, extendSession.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{token}/extend - Session not found: token=%s", token)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, extendSession.ErrInvalidTransition):
			h.logger.Warn("PATCH /sessions/{token}/extend - Invalid transition: token=%s", token)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /sessions/{token}/extend - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{token}/extend - Session extended: token=%s, count=%d",
		token, result.ExtensionCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
