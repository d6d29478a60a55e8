package expiry_warning

import (
	"context"
	"fmt"
	"time"

	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
)

// UseCase use case предупреждений о скором истечении брони
type UseCase struct {
	sessionRepo   SessionRepository
	vehicleRepo   VehicleRepository
	notifier      Notifier
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
	warningWindow time.Duration
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	vehicleRepo VehicleRepository,
	notifier Notifier,
	txManager TransactionManager,
	warningMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		vehicleRepo:   vehicleRepo,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
		warningWindow: time.Duration(warningMinutes) * time.Minute,
	}
}

// Execute находит reserved-сессии, срок которых истекает в ближайшее
// окно, и шлёт по ним предупреждение. Флаг expiry_warning_sent
// гарантирует одно предупреждение на срок брони
func (uc *UseCase) Execute(ctx context.Context) (int, error) {
	now := uc.timeProvider.Now()
	threshold := now.Add(uc.warningWindow)

	type warned struct {
		token string
		plate string
	}
	var sent []warned

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		sessions, err := uc.sessionRepo.GetAwaitingExpiryWarning(txCtx, threshold)
		if err != nil {
			uc.logger.Error("ExpiryWarning: failed to fetch sessions: %v", err)
			return fmt.Errorf("%w: failed to fetch sessions: %v", ErrInternal, err)
		}

		for _, session := range sessions {
			vehicle, err := uc.vehicleRepo.GetByID(txCtx, session.VehicleID)
			if err != nil {
				uc.logger.Error("ExpiryWarning: failed to get vehicle id=%d: %v", session.VehicleID, err)
				return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
			}

			session.ExpiryWarningSent = true
			if err := uc.sessionRepo.Update(txCtx, session); err != nil {
				uc.logger.Error("ExpiryWarning: failed to update session token=%s: %v", session.Token, err)
				return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
			}

			sent = append(sent, warned{token: session.Token, plate: vehicle.PlateNumber})
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	for _, w := range sent {
		uc.notifyWarning(w.token, w.plate)
	}

	if len(sent) > 0 {
		uc.logger.Info("ExpiryWarning: sent %d warning(s)", len(sent))
	}

	return len(sent), nil
}

// notifyWarning отправляет предупреждение, не блокируя проход
func (uc *UseCase) notifyWarning(token, plate string) {
	go func() {
		if err := uc.notifier.Notify(context.Background(), smsgateway.Notification{
			SessionToken: token,
			PlateNumber:  plate,
			Event:        smsgateway.EventExpiryWarning,
		}); err != nil {
			uc.logger.Warn("ExpiryWarning: failed to send warning for token=%s: %v", token, err)
		}
	}()
}
