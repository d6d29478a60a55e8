package scan_exit

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionStorage "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	"github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
	"github.com/parkwise/PW-SessionService/pkg/ptr"
)

// --- fakes ---

type fakeSessionRepo struct {
	session *domain.ParkingSession
	updated *domain.ParkingSession
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, _ string) (*domain.ParkingSession, error) {
	if f.session == nil {
		return nil, sessionStorage.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, s *domain.ParkingSession) error {
	s.RecalculateTotal()
	f.updated = s
	return nil
}

type fakeSlotRepo struct {
	released []int64
}

func (f *fakeSlotRepo) Release(_ context.Context, id int64) error {
	f.released = append(f.released, id)
	return nil
}

type fakeZoneRepo struct {
	zone *domain.Zone
}

func (f *fakeZoneRepo) GetByID(_ context.Context, _ int64) (*domain.Zone, error) {
	return f.zone, nil
}

type fakeVehicleRepo struct{}

func (fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	return &domain.Vehicle{ID: id, PlateNumber: "KA01AB1234"}, nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	p.ID = int64(len(f.payments) + 1)
	f.payments = append(f.payments, p)
	return p, nil
}

type fakeGateway struct {
	err     error
	charged []paygateway.ChargeRequest
}

func (f *fakeGateway) Charge(_ context.Context, req paygateway.ChargeRequest) (*paygateway.ChargeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.charged = append(f.charged, req)
	return &paygateway.ChargeResult{Success: true, TransactionID: "txn-9"}, nil
}

type fakeNotifier struct{}

func (fakeNotifier) Notify(_ context.Context, _ smsgateway.Notification) error { return nil }

type fakeTxManager struct {
	committed bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	f.committed = err == nil
	return err
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type env struct {
	sessions *fakeSessionRepo
	slots    *fakeSlotRepo
	payments *fakePaymentRepo
	gateway  *fakeGateway
	tx       *fakeTxManager
	now      time.Time
	uc       *UseCase
}

func newEnv(session *domain.ParkingSession, rate int64) *env {
	e := &env{
		sessions: &fakeSessionRepo{session: session},
		slots:    &fakeSlotRepo{},
		payments: &fakePaymentRepo{},
		gateway:  &fakeGateway{},
		tx:       &fakeTxManager{},
		now:      time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	zones := &fakeZoneRepo{zone: &domain.Zone{ID: 1, HourlyRate: decimal.NewFromInt(rate), Active: true}}
	e.uc = NewUseCase(
		e.sessions, e.slots, zones, fakeVehicleRepo{}, e.payments,
		e.gateway, fakeNotifier{}, e.tx, noopLogger{},
	)
	e.uc.timeProvider = &fixedClock{now: e.now}
	return e
}

func activeSession(entry time.Time) *domain.ParkingSession {
	return &domain.ParkingSession{
		ID:        1,
		Token:     "PW-abc",
		VehicleID: 7,
		ZoneID:    1,
		SlotID:    ptr.Ptr(int64(5)),
		Status:    domain.StatusActive,
		EntryTime: &entry,
	}
}

// --- tests ---

func TestExecute_TwoHoursAtFifty(t *testing.T) {
	e := newEnv(nil, 50)
	e.sessions.session = activeSession(e.now.Add(-2 * time.Hour))

	resp, err := e.uc.Execute(context.Background(), &Request{Token: "PW-abc", PaymentMethod: "online"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, int64(7200), resp.DurationSeconds)
	assert.Equal(t, int64(2), resp.BillableHours)
	assert.True(t, resp.TotalDue.Equal(decimal.NewFromInt(100)))
	assert.True(t, resp.TotalPaid.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, []int64{5}, e.slots.released)
	require.Len(t, e.payments.payments, 1)
	assert.Equal(t, domain.PaymentFinal, e.payments.payments[0].Type)
	require.Len(t, e.gateway.charged, 1)
	assert.Equal(t, "100.00", e.gateway.charged[0].Amount.StringFixed(2))
}

func TestExecute_GraceWindowIsFree(t *testing.T) {
	e := newEnv(nil, 50)
	e.sessions.session = activeSession(e.now.Add(-3 * time.Minute))

	resp, err := e.uc.Execute(context.Background(), &Request{Token: "PW-abc", PaymentMethod: "cash"})

	require.NoError(t, err)
	assert.True(t, resp.IsFree)
	assert.True(t, resp.TotalDue.IsZero())
	assert.Empty(t, e.payments.payments)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
}

func TestExecute_InitialPaymentReducesBalance(t *testing.T) {
	e := newEnv(nil, 50)
	s := activeSession(e.now.Add(-2 * time.Hour))
	s.InitialAmountPaid = decimal.NewFromInt(100)
	e.sessions.session = s

	resp, err := e.uc.Execute(context.Background(), &Request{Token: "PW-abc", PaymentMethod: "online"})

	require.NoError(t, err)
	// Долга нет: шлюз не вызывается, новых платежей не появляется
	assert.Empty(t, e.gateway.charged)
	assert.Empty(t, e.payments.payments)
	assert.True(t, resp.TotalPaid.Equal(decimal.NewFromInt(100)))
}

func TestExecute_GatewayFailureRollsBack(t *testing.T) {
	e := newEnv(nil, 50)
	e.sessions.session = activeSession(e.now.Add(-2 * time.Hour))
	e.gateway.err = paygateway.ErrGatewayUnavailable

	_, err := e.uc.Execute(context.Background(), &Request{Token: "PW-abc", PaymentMethod: "online"})

	assert.ErrorIs(t, err, ErrGatewayFailure)
	assert.False(t, e.tx.committed)
	assert.Empty(t, e.slots.released)
}

func TestExecute_InvalidTransition(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.StatusReserved, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			e := newEnv(nil, 50)
			e.sessions.session = &domain.ParkingSession{Token: "PW-abc", Status: status}

			_, err := e.uc.Execute(context.Background(), &Request{Token: "PW-abc", PaymentMethod: "cash"})

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_ExitBeforeEntryRejected(t *testing.T) {
	e := newEnv(nil, 50)
	e.sessions.session = activeSession(e.now.Add(time.Hour))

	_, err := e.uc.Execute(context.Background(), &Request{Token: "PW-abc", PaymentMethod: "cash"})

	assert.ErrorIs(t, err, ErrInvalidDuration)
}
