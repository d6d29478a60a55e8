package cancel_session

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	cancelSession "github.com/parkwise/PW-SessionService/internal/usecase/cancel_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена"
	msgCannotCancelActive = "автомобиль уже на парковке, отмена невозможна"
	msgAlreadyFinal       = "сессия уже завершена или отменена"
)

type Handler struct {
	useCase CancelSessionUseCase
	logger  Logger
}

func NewHandler(useCase CancelSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{token}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	// Тело опционально: отмена без причины допустима
	var req CancelSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /sessions/{token}/cancel - Invalid request body: token=%s: %v", token, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelSession.Request{
		Token:  token,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelSession.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{token}/cancel - Session not found: token=%s", token)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, cancelSession.ErrCannotCancelActive):
			h.logger.Warn("PATCH /sessions/{token}/cancel - Vehicle inside: token=%s", token)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancelActive)

		case errors.Is(err, cancelSession.ErrAlreadyFinal):
			h.logger.Warn("PATCH /sessions/{token}/cancel - Already final: token=%s", token)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyFinal)

		default:
			h.logger.Error("PATCH /sessions/{token}/cancel - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{token}/cancel - Session cancelled: token=%s, refund=%s",
		token, result.RefundAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
