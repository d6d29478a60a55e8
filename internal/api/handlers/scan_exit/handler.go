package scan_exit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	scanExit "github.com/parkwise/PW-SessionService/internal/usecase/scan_exit"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные запроса"
	msgSessionNotFound    = "сессия не найдена"
	msgInvalidTransition  = "сессия не допускает выезд"
	msgInvalidDuration    = "время выезда раньше времени въезда"
	msgGatewayFailure     = "платёж отклонён платёжным шлюзом"
)

type Handler struct {
	useCase ScanExitUseCase
	logger  Logger
}

func NewHandler(useCase ScanExitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{token}/exit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req ScanExitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{token}/exit - Invalid request body: token=%s: %v", token, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &scanExit.Request{
		Token:         token,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, scanExit.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{token}/exit - Invalid input: token=%s: %v", token, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scanExit.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{token}/exit - Session not found: token=%s", token)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, scanExit.ErrInvalidTransition):
			h.logger.Warn("POST /sessions/{token}/exit - Invalid transition: token=%s", token)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, scanExit.ErrInvalidDuration):
			h.logger.Warn("POST /sessions/{token}/exit - Exit before entry: token=%s", token)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidDuration)

		case errors.Is(err, scanExit.ErrGatewayFailure):
			h.logger.Warn("POST /sessions/{token}/exit - Gateway failure: token=%s: %v", token, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailure)

		default:
			h.logger.Error("POST /sessions/{token}/exit - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{token}/exit - Session completed: token=%s, hours=%d, total=%s",
		token, result.BillableHours, result.TotalDue)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
