package extend_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
)

// UseCase use case продления срока брони
type UseCase struct {
	sessionRepo  SessionRepository
	vehicleRepo  VehicleRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	vehicleRepo VehicleRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		vehicleRepo:  vehicleRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute продлевает срок брони на 2, 6 или 24 часа. Продлевать можно
// только reserved-сессии; отсчёт идёт от текущего срока, а не от now,
// чтобы повторные продления складывались
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExtendSession: token=%s, hours=%d", req.Token, req.Hours)

	if req.Token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	if !domain.IsAllowedExtension(req.Hours) {
		uc.logger.Warn("ExtendSession: unsupported duration %d for token=%s", req.Hours, req.Token)
		return nil, fmt.Errorf("%w: %d hours", ErrInvalidHours, req.Hours)
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
				uc.logger.Warn("ExtendSession: session token=%s not found", req.Token)
				return ErrSessionNotFound
			}
			uc.logger.Error("ExtendSession: failed to get session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if !session.CanBeExtended() {
			uc.logger.Warn("ExtendSession: invalid transition for token=%s, status=%s", req.Token, session.Status)
			return ErrInvalidTransition
		}

		vehicle, err := uc.vehicleRepo.GetByID(txCtx, session.VehicleID)
		if err != nil {
			uc.logger.Error("ExtendSession: failed to get vehicle id=%d: %v", session.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}
		plate = vehicle.PlateNumber

		extension := time.Duration(req.Hours) * time.Hour
		if session.BookingExpiryTime != nil {
			newExpiry := session.BookingExpiryTime.Add(extension)
			session.BookingExpiryTime = &newExpiry
		} else {
			newExpiry := now.Add(extension)
			session.BookingExpiryTime = &newExpiry
		}
		session.ExtensionCount++
		// Срок сдвинулся — предупреждение об истечении нужно отправить заново
		session.ExpiryWarningSent = false

		if err := uc.sessionRepo.Update(txCtx, session); err != nil {
			uc.logger.Error("ExtendSession: failed to update session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ExtendSession: session token=%s extended by %dh, new expiry=%s, count=%d",
		req.Token, req.Hours, session.BookingExpiryTime.Format(time.RFC3339), session.ExtensionCount)

	uc.notifyExtended(session.Token, plate)

	return &Response{
		ID:                session.ID,
		Token:             session.Token,
		PlateNumber:       plate,
		Status:            string(session.Status),
		BookingExpiryTime: *session.BookingExpiryTime,
		ExtensionCount:    session.ExtensionCount,
	}, nil
}

// notifyExtended отправляет уведомление о продлении, не блокируя ответ
func (uc *UseCase) notifyExtended(token, plate string) {
	go func() {
		if err := uc.notifier.Notify(context.Background(), smsgateway.Notification{
			SessionToken: token,
			PlateNumber:  plate,
			Event:        smsgateway.EventExtended,
		}); err != nil {
			uc.logger.Warn("ExtendSession: failed to send extension notification for token=%s: %v", token, err)
		}
	}()
}
