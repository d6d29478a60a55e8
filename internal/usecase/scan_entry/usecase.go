package scan_entry

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
)

// UseCase use case сканирования QR-токена на въезде
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

// Execute переводит сессию reserved -> active: фиксирует время въезда и
// помечает слот занятым. Повторный скан уже активной сессии — идемпотентный
// no-op, время въезда не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScanEntry: token=%s", req.Token)

	if req.Token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		session   *domain.ParkingSession
		plate     string
		alreadyIn bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		session, err = uc.sessionRepo.GetByToken(txCtx, req.Token)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("ScanEntry: session token=%s not found", req.Token)
				return ErrSessionNotFound
			}
			uc.logger.Error("ScanEntry: failed to get session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if !session.CanEnter() {
			uc.logger.Warn("ScanEntry: invalid transition for token=%s, status=%s", req.Token, session.Status)
			return ErrInvalidTransition
		}

		vehicle, err := uc.vehicleRepo.GetByID(txCtx, session.VehicleID)
		if err != nil {
			uc.logger.Error("ScanEntry: failed to get vehicle id=%d: %v", session.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}
		plate = vehicle.PlateNumber

		// Повторный скан активной сессии: ничего не меняем
		if session.Status == domain.StatusActive {
			alreadyIn = true
			uc.logger.Info("ScanEntry: token=%s already active, entry_time unchanged", req.Token)
			return nil
		}

		session.Status = domain.StatusActive
		session.EntryTime = &now

		if session.SlotID != nil {
			if err := uc.slotRepo.MarkOccupied(txCtx, *session.SlotID); err != nil {
				uc.logger.Error("ScanEntry: failed to occupy slot id=%d: %v", *session.SlotID, err)
				return fmt.Errorf("%w: failed to occupy slot: %v", ErrInternal, err)
			}
		}

		if err := uc.sessionRepo.Update(txCtx, session); err != nil {
			uc.logger.Error("ScanEntry: failed to update session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if !alreadyIn {
		uc.logger.Info("ScanEntry: session token=%s is now active", req.Token)
		uc.notifyEntry(session.Token, plate)
	}

	return &Response{
		ID:          session.ID,
		Token:       session.Token,
		PlateNumber: plate,
		ZoneID:      session.ZoneID,
		SlotID:      session.SlotID,
		Status:      string(session.Status),
		EntryTime:   *session.EntryTime,
		AlreadyIn:   alreadyIn,
	}, nil
}

// notifyEntry отправляет уведомление о въезде, не блокируя ответ
func (uc *UseCase) notifyEntry(token, plate string) {
	go func() {
		if err := uc.notifier.Notify(context.Background(), smsgateway.Notification{
			SessionToken: token,
			PlateNumber:  plate,
			Event:        smsgateway.EventEntry,
		}); err != nil {
			uc.logger.Warn("ScanEntry: failed to send entry notification for token=%s: %v", token, err)
		}
	}()
}
