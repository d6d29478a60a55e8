package record_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	payClient "github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
)

// UseCase use case проведения платежа по открытой сессии
type UseCase struct {
	sessionRepo SessionRepository
	paymentRepo PaymentRepository
	gateway     PaymentGateway
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute добавляет запись в журнал платежей и пересчитывает суммы
// сессии. Журнал только растёт: корректировки делаются новыми
// записями, существующие не трогаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: token=%s, amount=%s, method=%s, type=%s",
		req.Token, req.Amount, req.Method, req.Type)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	var (
		session *domain.ParkingSession
		payment *domain.Payment
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		session, err = uc.sessionRepo.GetByToken(txCtx, req.Token)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("RecordPayment: session token=%s not found", req.Token)
				return ErrSessionNotFound
			}
			uc.logger.Error("RecordPayment: failed to get session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if session.IsTerminal() {
			uc.logger.Warn("RecordPayment: session token=%s is %s", req.Token, session.Status)
			return ErrInvalidTransition
		}

		method := domain.PaymentMethod(req.Method)
		payType := domain.PaymentType(req.Type)

		var txnID *string
		if method == domain.MethodOnline {
			result, err := uc.gateway.Charge(txCtx, payClient.ChargeRequest{
				Reference: session.Token,
				Amount:    req.Amount,
				Currency:  "INR",
				Method:    string(method),
			})
			if err != nil {
				uc.logger.Warn("RecordPayment: gateway rejected payment for token=%s: %v", req.Token, err)
				return fmt.Errorf("%w: %v", ErrGatewayFailure, err)
			}
			txnID = &result.TransactionID
		}

		payment, err = uc.paymentRepo.Create(txCtx, &domain.Payment{
			SessionID:     session.ID,
			Amount:        req.Amount,
			Method:        method,
			Type:          payType,
			Status:        domain.PaymentSuccess,
			TransactionID: txnID,
		})
		if err != nil {
			uc.logger.Error("RecordPayment: failed to record payment: %v", err)
			return fmt.Errorf("%w: failed to record payment: %v", ErrInternal, err)
		}

		switch payType {
		case domain.PaymentInitial:
			session.InitialAmountPaid = session.InitialAmountPaid.Add(req.Amount)
		case domain.PaymentFinal:
			session.FinalAmountPaid = session.FinalAmountPaid.Add(req.Amount)
		}
		if session.PaymentStatus == domain.PaymentPending {
			session.PaymentStatus = domain.PaymentPartial
		}

		if err := uc.sessionRepo.Update(txCtx, session); err != nil {
			uc.logger.Error("RecordPayment: failed to update session token=%s: %v", req.Token, err)
			return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RecordPayment: payment id=%d recorded for token=%s, total=%s",
		payment.ID, req.Token, session.TotalAmountPaid)

	return &Response{
		PaymentID:     payment.ID,
		SessionToken:  session.Token,
		Amount:        payment.Amount,
		Method:        string(payment.Method),
		Type:          string(payment.Type),
		TransactionID: payment.TransactionID,
		InitialPaid:   session.InitialAmountPaid,
		FinalPaid:     session.FinalAmountPaid,
		TotalPaid:     session.TotalAmountPaid,
		PaymentStatus: string(session.PaymentStatus),
	}, nil
}
