package scan_exit

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/parkwise/PW-SessionService/internal/billing"
	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	payClient "github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
)

// UseCase use case сканирования QR-токена на выезде
type UseCase struct {
	sessionRepo  SessionRepository
	slotRepo     SlotRepository
	zoneRepo     ZoneRepository
	vehicleRepo  VehicleRepository
	paymentRepo  PaymentRepository
	gateway      PaymentGateway
	notifier     Notifier
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
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute завершает активную сессию: считает плату по тарифу зоны,
// проводит доплату (если остался долг), освобождает слот и переводит
// сессию в completed. Отказ шлюза откатывает выезд целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ScanExit: token=%s, method=%s", req.Token, req.PaymentMethod)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScanExit: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		session *domain.ParkingSession
		plate   string
		quote   *billing.Quote
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		session, err = uc.sessionRepo.GetByToken(txCtx, req.Token)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("ScanExit: session token=%s not found", req.Token)
				return ErrSessionNotFound
			}
			uc.logger.Error("ScanExit: failed to get session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if !session.CanExit() {
			uc.logger.Warn("ScanExit: invalid transition for token=%s, status=%s", req.Token, session.Status)
			return ErrInvalidTransition
		}

		vehicle, err := uc.vehicleRepo.GetByID(txCtx, session.VehicleID)
		if err != nil {
			uc.logger.Error("ScanExit: failed to get vehicle id=%d: %v", session.VehicleID, err)
			return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}
		plate = vehicle.PlateNumber

		// Считаем плату по тарифу зоны на момент выезда
		zone, err := uc.zoneRepo.GetByID(txCtx, session.ZoneID)
		if err != nil {
			uc.logger.Error("ScanExit: failed to get zone id=%d: %v", session.ZoneID, err)
			return fmt.Errorf("%w: failed to get zone: %v", ErrInternal, err)
		}

		quote, err = billing.CalculateAmount(*session.EntryTime, now, zone.HourlyRate)
		if err != nil {
			if errors.Is(err, billing.ErrInvalidDuration) {
				uc.logger.Warn("ScanExit: exit before entry for token=%s", req.Token)
				return ErrInvalidDuration
			}
			uc.logger.Error("ScanExit: fee calculation failed for token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: fee calculation failed: %v", ErrInternal, err)
		}

		// Доплачиваем остаток: max(0, total_due - initial)
		outstanding := billing.RemainingBalance(quote.Amount, session.InitialAmountPaid)
		if outstanding.GreaterThan(decimal.Zero) {
			if err := uc.recordFinalPayment(txCtx, session, outstanding, domain.PaymentMethod(req.PaymentMethod)); err != nil {
				return err
			}
			session.FinalAmountPaid = outstanding
		}

		session.Status = domain.StatusCompleted
		session.ExitTime = &now
		session.PaymentStatus = domain.PaymentPaid

		if session.SlotID != nil {
			if err := uc.slotRepo.Release(txCtx, *session.SlotID); err != nil {
				uc.logger.Error("ScanExit: failed to release slot id=%d: %v", *session.SlotID, err)
				return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
			}
		}

		if err := uc.sessionRepo.Update(txCtx, session); err != nil {
			uc.logger.Error("ScanExit: failed to update session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ScanExit: session token=%s completed, billed %d hour(s), total=%s",
		req.Token, quote.BillableHours, quote.Amount)

	uc.notifyExit(session.Token, plate)

	return &Response{
		ID:              session.ID,
		Token:           session.Token,
		PlateNumber:     plate,
		Status:          string(session.Status),
		EntryTime:       *session.EntryTime,
		ExitTime:        *session.ExitTime,
		DurationSeconds: quote.DurationSeconds,
		BillableHours:   quote.BillableHours,
		IsFree:          quote.IsFree,
		TotalDue:        quote.Amount,
		InitialPaid:     session.InitialAmountPaid,
		FinalPaid:       session.FinalAmountPaid,
		TotalPaid:       session.TotalAmountPaid,
		PaymentStatus:   string(session.PaymentStatus),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	switch domain.PaymentMethod(req.PaymentMethod) {
	case domain.MethodCash, domain.MethodOnline:
		return nil
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
}

// recordFinalPayment проводит финальный платёж внутри транзакции выезда
func (uc *UseCase) recordFinalPayment(txCtx context.Context, session *domain.ParkingSession, amount decimal.Decimal, method domain.PaymentMethod) error {
	var txnID *string
	if method == domain.MethodOnline {
		result, err := uc.gateway.Charge(txCtx, payClient.ChargeRequest{
			Reference: session.Token,
			Amount:    amount,
			Currency:  "INR",
			Method:    string(method),
		})
		if err != nil {
			uc.logger.Warn("ScanExit: gateway rejected final payment for token=%s: %v", session.Token, err)
			return fmt.Errorf("%w: %v", ErrGatewayFailure, err)
		}
		txnID = &result.TransactionID
	}

	_, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
		SessionID:     session.ID,
		Amount:        amount,
		Method:        method,
		Type:          domain.PaymentFinal,
		Status:        domain.PaymentSuccess,
		TransactionID: txnID,
	})
	if err != nil {
		uc.logger.Error("ScanExit: failed to record final payment: %v", err)
		return fmt.Errorf("%w: failed to record final payment: %v", ErrInternal, err)
	}

	return nil
}

// notifyExit отправляет уведомление о выезде, не блокируя ответ
func (uc *UseCase) notifyExit(token, plate string) {
	go func() {
		if err := uc.notifier.Notify(context.Background(), smsgateway.Notification{
			SessionToken: token,
			PlateNumber:  plate,
			Event:        smsgateway.EventExit,
		}); err != nil {
			uc.logger.Warn("ScanExit: failed to send exit notification for token=%s: %v", token, err)
		}
	}()
}
