package expire_sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/billing"
	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
	"github.com/parkwise/PW-SessionService/pkg/ptr"
)

// batchSize максимум сессий за один проход уборщика
const batchSize = 100

// UseCase use case автоматического истечения просроченных броней
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

// Execute находит reserved-сессии с истёкшим сроком и автоматически их
// отменяет. Повторный запуск безопасен: отменённая сессия больше не
// reserved и в выборку не попадает
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	type expired struct {
		token string
		plate string
	}
	var done []expired

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		sessions, err := uc.sessionRepo.GetExpired(txCtx, now, batchSize)
		if err != nil {
			uc.logger.Error("ExpireSessions: failed to fetch expired sessions: %v", err)
			return fmt.Errorf("%w: failed to fetch expired sessions: %v", ErrInternal, err)
		}

		for _, session := range sessions {
			vehicle, err := uc.vehicleRepo.GetByID(txCtx, session.VehicleID)
			if err != nil {
				uc.logger.Error("ExpireSessions: failed to get vehicle id=%d: %v", session.VehicleID, err)
				return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
			}

			// К моменту истечения (>= 24 часа от брони) окна возврата давно
			// закрыты, но политика считается единообразно
			refund := billing.CalculateRefund(session, now)

			session.Status = domain.StatusCancelled
			session.CancelledAt = &now
			session.CancellationType = ptr.Ptr(domain.CancellationAuto)
			session.CancellationReason = ptr.Ptr(domain.CancelReasonExpired)
			session.RefundAmount = refund
			if refund.GreaterThan(decimal.Zero) {
				session.RefundStatus = domain.RefundInitiated
			}

			if session.SlotID != nil {
				if err := uc.slotRepo.Release(txCtx, *session.SlotID); err != nil {
					uc.logger.Error("ExpireSessions: failed to release slot id=%d: %v", *session.SlotID, err)
					return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
				}
			}

			if err := uc.sessionRepo.Update(txCtx, session); err != nil {
				uc.logger.Error("ExpireSessions: failed to update session token=%s: %v", session.Token, err)
				return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
			}

			done = append(done, expired{token: session.Token, plate: vehicle.PlateNumber})
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if len(done) == 0 {
		return &Response{}, nil
	}

	tokens := make([]string, 0, len(done))
	for _, e := range done {
		tokens = append(tokens, e.token)
		uc.notifyExpired(e.token, e.plate)
	}

	uc.logger.Info("ExpireSessions: auto-cancelled %d session(s) at %s", len(done), now.Format(time.RFC3339))

	return &Response{ExpiredCount: len(done), Tokens: tokens}, nil
}

// notifyExpired отправляет уведомление об истечении, не блокируя ответ
func (uc *UseCase) notifyExpired(token, plate string) {
	go func() {
		if err := uc.notifier.Notify(context.Background(), smsgateway.Notification{
			SessionToken: token,
			PlateNumber:  plate,
			Event:        smsgateway.EventExpired,
		}); err != nil {
			uc.logger.Warn("ExpireSessions: failed to send expiry notification for token=%s: %v", token, err)
		}
	}()
}
