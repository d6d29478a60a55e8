package book_session

import (
	"errors"
	"net/http"

	"github.com/parkwise/PW-SessionService/internal/api/handlers"
	bookSession "github.com/parkwise/PW-SessionService/internal/usecase/book_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAmount      = "сумма платежа должна быть положительной"
	msgInvalidInput       = "некорректные данные бронирования"
	msgZoneNotFound       = "зона не найдена"
	msgZoneInactive       = "зона не принимает бронирования"
	msgNoSlotAvailable    = "в зоне нет свободных мест"
	msgDuplicateSession   = "у автомобиля уже есть незавершённая сессия"
	msgGatewayFailure     = "платёж отклонён платёжным шлюзом"
)

type Handler struct {
	useCase BookSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, bookSession.ErrInvalidAmount):
			h.logger.Warn("POST /sessions - Invalid payment amount: plate=%s: %v", req.PlateNumber, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, bookSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: plate=%s, zone=%d: %v", req.PlateNumber, req.ZoneID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookSession.ErrZoneNotFound):
			h.logger.Warn("POST /sessions - Zone not found: zone=%d", req.ZoneID)
			handlers.RespondNotFound(w, msgZoneNotFound)

		case errors.Is(err, bookSession.ErrZoneInactive):
			h.logger.Warn("POST /sessions - Zone inactive: zone=%d", req.ZoneID)
			handlers.RespondError(w, http.StatusConflict, msgZoneInactive)

		case errors.Is(err, bookSession.ErrNoSlotAvailable):
			h.logger.Warn("POST /sessions - No slot available: zone=%d", req.ZoneID)
			handlers.RespondError(w, http.StatusConflict, msgNoSlotAvailable)

		case errors.Is(err, bookSession.ErrDuplicateActiveSession):
			h.logger.Warn("POST /sessions - Duplicate open session: plate=%s", req.PlateNumber)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateSession)

		case errors.Is(err, bookSession.ErrGatewayFailure):
			h.logger.Warn("POST /sessions - Gateway failure: plate=%s: %v", req.PlateNumber, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayFailure)

		default:
			h.logger.Error("POST /sessions - Failed to book session: plate=%s, zone=%d, error=%v",
				req.PlateNumber, req.ZoneID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session booked: id=%d, token=%s, zone=%d",
		result.ID, result.Token, result.ZoneID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
