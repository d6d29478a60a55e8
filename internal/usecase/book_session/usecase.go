package book_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parkwise/PW-SessionService/internal/domain"
	slotRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/slot"
	zoneRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/zone"
	payClient "github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
)

// UseCase use case бронирования парковочной сессии
type UseCase struct {
	sessionRepo  SessionRepository
	slotRepo     SlotRepository
	zoneRepo     ZoneRepository
	vehicleRepo  VehicleRepository
	paymentRepo  PaymentRepository
	gateway      PaymentGateway
	notifier     Notifier
	tokenGen     TokenGenerator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	slotRepo SlotRepository,
	zoneRepo ZoneRepository,
	vehicleRepo VehicleRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	notifier Notifier,
	tokenGen TokenGenerator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		slotRepo:     slotRepo,
		zoneRepo:     zoneRepo,
		vehicleRepo:  vehicleRepo,
		paymentRepo:  paymentRepo,
		gateway:      gateway,
		notifier:     notifier,
		tokenGen:     tokenGen,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование: выбирает свободный слот, создает
// reserved-сессию с QR-токеном и опционально записывает начальный платёж.
// Вся работа с БД идёт в сериализуемой транзакции: два параллельных
// бронирования не получат один слот
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSession: plate=%s, zone=%d", req.PlateNumber, req.ZoneID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Фиксируем единое "сейчас" на всю операцию
	now := uc.timeProvider.Now()

	plate := domain.NormalizePlate(req.PlateNumber)
	token := uc.tokenGen.Generate()

	expiryHours := domain.DefaultBookingExpiryHours
	if req.ExpiryHours != nil {
		expiryHours = *req.ExpiryHours
	}

	var (
		session *domain.ParkingSession
		slot    *domain.Slot
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем зону и проверяем, что она принимает бронирования
		zone, err := uc.zoneRepo.GetByID(txCtx, req.ZoneID)
		if err != nil {
			if errors.Is(err, zoneRepo.ErrZoneNotFound) {
				uc.logger.Warn("BookSession: zone id=%d not found", req.ZoneID)
				return ErrZoneNotFound
			}
			uc.logger.Error("BookSession: failed to get zone id=%d: %v", req.ZoneID, err)
			return fmt.Errorf("%w: failed to get zone: %v", ErrInternal, err)
		}
		if !zone.AcceptsBookings() {
			uc.logger.Warn("BookSession: zone id=%d is inactive", req.ZoneID)
			return ErrZoneInactive
		}

		// 3.2. Создаем автомобиль при первом бронировании
		vehicle, err := uc.vehicleRepo.Upsert(txCtx, &domain.Vehicle{
			PlateNumber: plate,
			OwnerName:   req.OwnerName,
		})
		if err != nil {
			uc.logger.Error("BookSession: failed to upsert vehicle plate=%s: %v", plate, err)
			return fmt.Errorf("%w: failed to upsert vehicle: %v", ErrInternal, err)
		}

		// 3.3. Проверяем, что у автомобиля нет незавершённой сессии
		open, err := uc.sessionRepo.GetOpenByVehicle(txCtx, vehicle.ID)
		if err != nil {
			uc.logger.Error("BookSession: failed to get open sessions for vehicle=%d: %v", vehicle.ID, err)
			return fmt.Errorf("%w: failed to get open sessions: %v", ErrInternal, err)
		}
		if len(open) > 0 {
			uc.logger.Warn("BookSession: vehicle plate=%s already has open session token=%s",
				plate, open[0].Token)
			return ErrDuplicateActiveSession
		}

		// 3.4. Захватываем свободный слот с блокировкой строки
		slot, err = uc.slotRepo.ClaimFree(txCtx, req.ZoneID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrNoFreeSlot) {
				uc.logger.Warn("BookSession: no free slot in zone id=%d", req.ZoneID)
				return ErrNoSlotAvailable
			}
			uc.logger.Error("BookSession: failed to claim slot in zone id=%d: %v", req.ZoneID, err)
			return fmt.Errorf("%w: failed to claim slot: %v", ErrInternal, err)
		}

		if err := uc.slotRepo.Reserve(txCtx, slot.ID); err != nil {
			uc.logger.Error("BookSession: failed to reserve slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 3.5. Создаем сессию в статусе reserved
		expiry := now.Add(time.Duration(expiryHours) * time.Hour)
		session = &domain.ParkingSession{
			Token:             token,
			VehicleID:         vehicle.ID,
			ZoneID:            zone.ID,
			SlotID:            &slot.ID,
			Status:            domain.StatusReserved,
			BookingExpiryTime: &expiry,
			PaymentStatus:     domain.PaymentPending,
			RefundStatus:      domain.RefundNone,
		}

		session, err = uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("BookSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		// 3.6. Записываем начальный платёж, если он указан
		if req.InitialPayment != nil {
			if err := uc.recordInitialPayment(txCtx, session, req.InitialPayment); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSession: created session id=%d token=%s slot=%d", session.ID, session.Token, slot.SlotNumber)

	// 4. Уведомление после коммита, fire-and-forget
	uc.notifyBooked(session.Token, plate)

	return &Response{
		ID:                session.ID,
		Token:             session.Token,
		PlateNumber:       plate,
		ZoneID:            session.ZoneID,
		SlotID:            slot.ID,
		SlotNumber:        slot.SlotNumber,
		Status:            string(session.Status),
		BookingExpiryTime: *session.BookingExpiryTime,
		InitialAmountPaid: session.InitialAmountPaid,
		PaymentStatus:     string(session.PaymentStatus),
		CreatedAt:         session.CreatedAt,
	}, nil
}

// recordInitialPayment проводит начальный платёж внутри транзакции бронирования
// Отказ шлюза откатывает всё бронирование: частично применённых платежей не бывает
func (uc *UseCase) recordInitialPayment(txCtx context.Context, session *domain.ParkingSession, p *InitialPayment) error {
	method := domain.PaymentMethod(p.Method)

	var txnID *string
	if method == domain.MethodOnline {
		result, err := uc.gateway.Charge(txCtx, payClient.ChargeRequest{
			Reference: session.Token,
			Amount:    p.Amount,
			Currency:  "INR",
			Method:    string(method),
		})
		if err != nil {
			uc.logger.Warn("BookSession: gateway rejected initial payment for token=%s: %v", session.Token, err)
			return fmt.Errorf("%w: %v", ErrGatewayFailure, err)
		}
		txnID = &result.TransactionID
	}

	_, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
		SessionID:     session.ID,
		Amount:        p.Amount,
		Method:        method,
		Type:          domain.PaymentInitial,
		Status:        domain.PaymentSuccess,
		TransactionID: txnID,
	})
	if err != nil {
		uc.logger.Error("BookSession: failed to record initial payment: %v", err)
		return fmt.Errorf("%w: failed to record initial payment: %v", ErrInternal, err)
	}

	session.InitialAmountPaid = p.Amount
	session.PaymentStatus = domain.PaymentPartial
	session.RecalculateTotal()

	if err := uc.sessionRepo.Update(txCtx, session); err != nil {
		uc.logger.Error("BookSession: failed to update session amounts: %v", err)
		return fmt.Errorf("%w: failed to update session amounts: %v", ErrInternal, err)
	}

	return nil
}

// notifyBooked отправляет уведомление о бронировании, не блокируя ответ
func (uc *UseCase) notifyBooked(token, plate string) {
	go func() {
		if err := uc.notifier.Notify(context.Background(), smsgateway.Notification{
			SessionToken: token,
			PlateNumber:  plate,
			Event:        smsgateway.EventBooked,
		}); err != nil {
			uc.logger.Warn("BookSession: failed to send booked notification for token=%s: %v", token, err)
		}
	}()
}
