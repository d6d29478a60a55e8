package book_session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkwise/PW-SessionService/internal/domain"
	slotStorage "github.com/parkwise/PW-SessionService/internal/infra/storage/slot"
	"github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
	"github.com/parkwise/PW-SessionService/pkg/ptr"
)

// --- fakes ---

type fakeSessionRepo struct {
	open    []*domain.ParkingSession
	created *domain.ParkingSession
	updated *domain.ParkingSession
}

func (f *fakeSessionRepo) Create(_ context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error) {
	s.ID = 1
	s.CreatedAt = time.Now()
	f.created = s
	return s, nil
}

func (f *fakeSessionRepo) GetOpenByVehicle(_ context.Context, _ int64) ([]*domain.ParkingSession, error) {
	return f.open, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, s *domain.ParkingSession) error {
	f.updated = s
	return nil
}

type fakeSlotRepo struct {
	slot     *domain.Slot
	reserved []int64
}

func (f *fakeSlotRepo) ClaimFree(_ context.Context, _ int64) (*domain.Slot, error) {
	if f.slot == nil {
		return nil, slotStorage.ErrNoFreeSlot
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) Reserve(_ context.Context, id int64) error {
	f.reserved = append(f.reserved, id)
	return nil
}

type fakeZoneRepo struct {
	zone *domain.Zone
}

func (f *fakeZoneRepo) GetByID(_ context.Context, _ int64) (*domain.Zone, error) {
	return f.zone, nil
}

type fakeVehicleRepo struct{}

func (f *fakeVehicleRepo) Upsert(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	v.ID = 7
	return v, nil
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
	err error
}

func (f *fakeGateway) Charge(_ context.Context, _ paygateway.ChargeRequest) (*paygateway.ChargeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &paygateway.ChargeResult{Success: true, TransactionID: "txn-1"}, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []smsgateway.EventKind
}

func (f *fakeNotifier) Notify(_ context.Context, n smsgateway.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, n.Event)
	return nil
}

type fakeTokenGen struct{}

func (f *fakeTokenGen) Generate() string { return "PW-test-token" }

// fakeTxManager выполняет функцию напрямую и запоминает, дошло ли дело до коммита
type fakeTxManager struct {
	committed bool
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	f.committed = err == nil
	return err
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type env struct {
	sessions *fakeSessionRepo
	slots    *fakeSlotRepo
	zones    *fakeZoneRepo
	payments *fakePaymentRepo
	gateway  *fakeGateway
	tx       *fakeTxManager
	now      time.Time
	uc       *UseCase
}

func newEnv() *env {
	e := &env{
		sessions: &fakeSessionRepo{},
		slots:    &fakeSlotRepo{slot: &domain.Slot{ID: 3, ZoneID: 1, SlotNumber: 12}},
		zones:    &fakeZoneRepo{zone: &domain.Zone{ID: 1, Name: "A", HourlyRate: decimal.NewFromInt(50), Active: true}},
		payments: &fakePaymentRepo{},
		gateway:  &fakeGateway{},
		tx:       &fakeTxManager{},
		now:      time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
	e.uc = NewUseCase(
		e.sessions, e.slots, e.zones, &fakeVehicleRepo{}, e.payments,
		e.gateway, &fakeNotifier{}, &fakeTokenGen{}, e.tx, noopLogger{},
	)
	e.uc.timeProvider = &fixedClock{now: e.now}
	return e
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		PlateNumber: "ka 01 ab 1234",
		OwnerName:   "Priya",
		ZoneID:      1,
	})

	require.NoError(t, err)
	assert.Equal(t, "PW-test-token", resp.Token)
	assert.Equal(t, "KA01AB1234", resp.PlateNumber)
	assert.Equal(t, string(domain.StatusReserved), resp.Status)
	assert.Equal(t, 12, resp.SlotNumber)
	assert.Equal(t, e.now.Add(24*time.Hour), resp.BookingExpiryTime)
	assert.Equal(t, []int64{3}, e.slots.reserved)
	assert.True(t, e.tx.committed)
}

func TestExecute_CustomExpiryHours(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		PlateNumber: "KA01AB1234",
		ZoneID:      1,
		ExpiryHours: ptr.Ptr(6),
	})

	require.NoError(t, err)
	assert.Equal(t, e.now.Add(6*time.Hour), resp.BookingExpiryTime)
}

func TestExecute_DuplicateActiveSession(t *testing.T) {
	e := newEnv()
	e.sessions.open = []*domain.ParkingSession{{ID: 99, Token: "PW-old", Status: domain.StatusActive}}

	_, err := e.uc.Execute(context.Background(), &Request{PlateNumber: "KA01AB1234", ZoneID: 1})

	assert.ErrorIs(t, err, ErrDuplicateActiveSession)
	assert.Nil(t, e.sessions.created)
}

func TestExecute_NoFreeSlot(t *testing.T) {
	e := newEnv()
	e.slots.slot = nil

	_, err := e.uc.Execute(context.Background(), &Request{PlateNumber: "KA01AB1234", ZoneID: 1})

	assert.ErrorIs(t, err, ErrNoSlotAvailable)
}

func TestExecute_InactiveZone(t *testing.T) {
	e := newEnv()
	e.zones.zone.Active = false

	_, err := e.uc.Execute(context.Background(), &Request{PlateNumber: "KA01AB1234", ZoneID: 1})

	assert.ErrorIs(t, err, ErrZoneInactive)
}

func TestExecute_WithInitialOnlinePayment(t *testing.T) {
	e := newEnv()

	resp, err := e.uc.Execute(context.Background(), &Request{
		PlateNumber: "KA01AB1234",
		ZoneID:      1,
		InitialPayment: &InitialPayment{
			Amount: decimal.NewFromInt(100),
			Method: string(domain.MethodOnline),
		},
	})

	require.NoError(t, err)
	assert.True(t, resp.InitialAmountPaid.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, string(domain.PaymentPartial), resp.PaymentStatus)
	require.Len(t, e.payments.payments, 1)
	assert.Equal(t, domain.PaymentInitial, e.payments.payments[0].Type)
	require.NotNil(t, e.payments.payments[0].TransactionID)
	assert.Equal(t, "txn-1", *e.payments.payments[0].TransactionID)
}

func TestExecute_GatewayFailureRollsBack(t *testing.T) {
	e := newEnv()
	e.gateway.err = paygateway.ErrChargeDeclined

	_, err := e.uc.Execute(context.Background(), &Request{
		PlateNumber: "KA01AB1234",
		ZoneID:      1,
		InitialPayment: &InitialPayment{
			Amount: decimal.NewFromInt(100),
			Method: string(domain.MethodOnline),
		},
	})

	assert.ErrorIs(t, err, ErrGatewayFailure)
	assert.False(t, e.tx.committed)
	assert.Empty(t, e.payments.payments)
}

func TestExecute_Validation(t *testing.T) {
	e := newEnv()

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"empty plate", &Request{ZoneID: 1}, ErrInvalidInput},
		{"zero zone", &Request{PlateNumber: "KA01AB1234"}, ErrInvalidInput},
		{"zero payment", &Request{
			PlateNumber:    "KA01AB1234",
			ZoneID:         1,
			InitialPayment: &InitialPayment{Method: "cash"},
		}, ErrInvalidAmount},
		{"negative payment", &Request{
			PlateNumber:    "KA01AB1234",
			ZoneID:         1,
			InitialPayment: &InitialPayment{Amount: decimal.NewFromInt(-5), Method: "cash"},
		}, ErrInvalidAmount},
		{"bad method", &Request{
			PlateNumber:    "KA01AB1234",
			ZoneID:         1,
			InitialPayment: &InitialPayment{Amount: decimal.NewFromInt(5), Method: "crypto"},
		}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
