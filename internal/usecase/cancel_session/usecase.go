package cancel_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/billing"
	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
	"github.com/parkwise/PW-SessionService/pkg/ptr"
)

// UseCase use case ручной отмены брони
type UseCase struct {
	sessionRepo  SessionRepository
	slotRepo     SlotRepository
	vehicleRepo  VehicleRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	slotRepo SlotRepository,
	vehicleRepo VehicleRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		slotRepo:     slotRepo,
		vehicleRepo:  vehicleRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute отменяет забронированную сессию. Возврат считается от времени
// бронирования: до 30 минут — 100% предоплаты, до 2 часов — 50%, дальше
// ничего. Активные и завершённые сессии отменить нельзя
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSession: token=%s", req.Token)

	if req.Token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		session *domain.ParkingSession
		plate   string
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		session, err = uc.sessionRepo.GetByToken(txCtx, req.Token)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("CancelSession: session token=%s not found", req.Token)
				return ErrSessionNotFound
			}
			uc.logger.Error("CancelSession: failed to get session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if !session.CanBeCancelled() {
			uc.logger.Warn("CancelSession: invalid transition for token=%s, status=%s", req.Token, session.Status)
			if session.Status == domain.StatusActive {
				return ErrCannotCancelActive
			}
			return ErrAlreadyFinal
		}

		vehicle, err := uc.vehicleRepo.GetByID(txCtx, session.VehicleID)
		if err != nil {
			uc.logger.Error("CancelSession: failed to get vehicle id=%d: %v", session.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}
		plate = vehicle.PlateNumber

		// Возврат считаем до смены статуса: после него сессия уже не reserved
		refund := billing.CalculateRefund(session, now)

		session.Status = domain.StatusCancelled
		session.CancelledAt = &now
		session.CancellationType = ptr.Ptr(domain.CancellationManual)
		if req.Reason != "" {
			session.CancellationReason = ptr.Ptr(req.Reason)
		}
		session.RefundAmount = refund
		if refund.GreaterThan(decimal.Zero) {
			session.RefundStatus = domain.RefundInitiated
		}

		if session.SlotID != nil {
			if err := uc.slotRepo.Release(txCtx, *session.SlotID); err != nil {
				uc.logger.Error("CancelSession: failed to release slot id=%d: %v", *session.SlotID, err)
				return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
			}
		}

		if err := uc.sessionRepo.Update(txCtx, session); err != nil {
			uc.logger.Error("CancelSession: failed to update session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelSession: session token=%s cancelled, refund=%s", req.Token, session.RefundAmount)

	uc.notifyCancelled(session.Token, plate)

	return &Response{
		ID:           session.ID,
		Token:        session.Token,
		PlateNumber:  plate,
		Status:       string(session.Status),
		CancelledAt:  *session.CancelledAt,
		RefundAmount: session.RefundAmount,
		RefundStatus: string(session.RefundStatus),
	}, nil
}

// notifyCancelled отправляет уведомление об отмене, не блокируя ответ
func (uc *UseCase) notifyCancelled(token, plate string) {
	go func() {
		if err := uc.notifier.Notify(context.Background(), smsgateway.Notification{
			SessionToken: token,
			PlateNumber:  plate,
			Event:        smsgateway.EventCancelled,
		}); err != nil {
			uc.logger.Warn("CancelSession: failed to send cancellation notification for token=%s: %v", token, err)
		}
	}()
}
