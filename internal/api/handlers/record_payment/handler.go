package record_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	recordPayment "github.com/parkwise/PW-SessionService/internal/usecase/record_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "сумма платежа должна быть положительной"
	msgInvalidInput       = "некорректные данные платежа"
	msgSessionNotFound    = "сессия не найдена"
	msgSessionClosed      = "сессия уже закрыта"
	msgGatewayFailure     = "платёж отклонён платёжным шлюзом"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{token}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{token}/payments - Invalid request body: token=%s: %v", token, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &recordPayment.Request{
		Token:  token,
		Amount: req.Amount,
		Method: req.Method,
		Type:   req.Type,
	})
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrInvalidAmount):
			h.logger.Warn("POST /sessions/{token}/payments - Invalid amount: token=%s: %v", token, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{token}/payments - Invalid input: token=%s: %v", token, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, recordPayment.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{token}/payments - Session not found: token=%s", token)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, recordPayment.ErrInvalidTransition):
			h.logger.Warn("POST /sessions/{token}/payments - Session closed: token=%s", token)
			handlers.RespondError(w, http.StatusConflict, msgSessionClosed)

		case errors.Is(err, recordPayment.ErrGatewayFailure):
			h.logger.Warn("POST /sessions/{token}/payments - Gateway failure: token=%s: %v", token, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailure)

		default:
			h.logger.Error("POST /sessions/{token}/payments - Failed: token=%s, error=%v", token, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{token}/payments - Payment recorded: token=%s, payment_id=%d, total=%s",
		token, result.PaymentID, result.TotalPaid)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
