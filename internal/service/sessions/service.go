package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkwise/PW-SessionService/internal/billing"
	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	vehicleRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/vehicle"
	"github.com/parkwise/PW-SessionService/internal/service/sessions/models"
)

// Service сервис чтения парковочных сессий
type Service struct {
	sessionRepo  SessionRepository
	vehicleRepo  VehicleRepository
	zoneRepo     ZoneRepository
	paymentRepo  PaymentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	vehicleRepo VehicleRepository,
	zoneRepo ZoneRepository,
	paymentRepo PaymentRepository,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:  sessionRepo,
		vehicleRepo:  vehicleRepo,
		zoneRepo:     zoneRepo,
		paymentRepo:  paymentRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByToken получает сессию по QR-токену вместе с текущей оценкой
// стоимости: для active — на "сейчас", для completed — на момент выезда
func (s *Service) GetByToken(ctx context.Context, token string) (*models.SessionResponse, error) {
	s.logger.Info("GetByToken: fetching session token=%s", token)

	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByToken: session token=%s not found", token)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByToken: repository error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: GetByToken - repository error: %v", ErrInternal, err)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, session.VehicleID)
	if err != nil {
		s.logger.Error("GetByToken: failed to get vehicle id=%d: %v", session.VehicleID, err)
		return nil, fmt.Errorf("%w: GetByToken - failed to get vehicle: %v", ErrInternal, err)
	}

	resp := models.FromDomainSession(session, vehicle.PlateNumber)
	resp.Billing = s.quote(ctx, session)

	return resp, nil
}

// GetVehicleHistory получает историю сессий по номеру автомобиля,
// от новых к старым
func (s *Service) GetVehicleHistory(ctx context.Context, plateNumber string) (*models.SessionListResponse, error) {
	plate := domain.NormalizePlate(plateNumber)
	s.logger.Info("GetVehicleHistory: fetching sessions for plate=%s", plate)

	if plate == "" {
		return nil, fmt.Errorf("%w: plateNumber is required", ErrInvalidInput)
	}

	vehicle, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("GetVehicleHistory: vehicle plate=%s not found", plate)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("GetVehicleHistory: failed to get vehicle plate=%s: %v", plate, err)
		return nil, fmt.Errorf("%w: GetVehicleHistory - failed to get vehicle: %v", ErrInternal, err)
	}

	history, err := s.sessionRepo.GetByVehicle(ctx, vehicle.ID)
	if err != nil {
		s.logger.Error("GetVehicleHistory: repository error for plate=%s: %v", plate, err)
		return nil, fmt.Errorf("%w: GetVehicleHistory - repository error: %v", ErrInternal, err)
	}

	resp := &models.SessionListResponse{
		PlateNumber: plate,
		Sessions:    make([]models.SessionResponse, 0, len(history)),
	}
	for _, session := range history {
		resp.Sessions = append(resp.Sessions, *models.FromDomainSession(session, plate))
	}

	s.logger.Info("GetVehicleHistory: fetched %d session(s) for plate=%s", len(history), plate)
	return resp, nil
}

// GetPayments получает журнал платежей сессии
func (s *Service) GetPayments(ctx context.Context, token string) (*models.PaymentListResponse, error) {
	s.logger.Info("GetPayments: fetching payments for token=%s", token)

	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetPayments: session token=%s not found", token)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetPayments: repository error for token=%s: %v", token, err)
		return nil, fmt.Errorf("%w: GetPayments - repository error: %v", ErrInternal, err)
	}

	payments, err := s.paymentRepo.GetBySession(ctx, session.ID)
	if err != nil {
		s.logger.Error("GetPayments: failed to get payments for session id=%d: %v", session.ID, err)
		return nil, fmt.Errorf("%w: GetPayments - failed to get payments: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(token, payments), nil
}

// quote считает оценку стоимости для сессий с зафиксированным въездом.
// Ошибки тарификации не валят чтение: сессия возвращается без оценки
func (s *Service) quote(ctx context.Context, session *domain.ParkingSession) *models.BillingQuote {
	if session.EntryTime == nil {
		return nil
	}

	reference := s.timeProvider.Now()
	if session.ExitTime != nil {
		reference = *session.ExitTime
	}

	zone, err := s.zoneRepo.GetByID(ctx, session.ZoneID)
	if err != nil {
		s.logger.Warn("quote: failed to get zone id=%d for token=%s: %v", session.ZoneID, session.Token, err)
		return nil
	}

	q, err := billing.CalculateAmount(*session.EntryTime, reference, zone.HourlyRate)
	if err != nil {
		s.logger.Warn("quote: fee calculation failed for token=%s: %v", session.Token, err)
		return nil
	}

	return &models.BillingQuote{
		DurationSeconds:  q.DurationSeconds,
		BillableHours:    q.BillableHours,
		IsFree:           q.IsFree,
		AmountDue:        q.Amount,
		RemainingBalance: billing.RemainingBalance(q.Amount, session.TotalAmountPaid),
	}
}
