package cancel_session

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkwise/PW-SessionService/internal/domain"
	sessionStorage "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
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

type fakeVehicleRepo struct{}

func (fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	return &domain.Vehicle{ID: id, PlateNumber: "KA01AB1234"}, nil
}

type fakeNotifier struct{}

func (fakeNotifier) Notify(_ context.Context, _ smsgateway.Notification) error { return nil }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newUseCase(sessions *fakeSessionRepo, slots *fakeSlotRepo, now time.Time) *UseCase {
	uc := NewUseCase(sessions, slots, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

func reservedSession(createdAt time.Time, paid decimal.Decimal) *domain.ParkingSession {
	return &domain.ParkingSession{
		ID:                1,
		Token:             "PW-abc",
		VehicleID:         7,
		SlotID:            ptr.Ptr(int64(5)),
		Status:            domain.StatusReserved,
		InitialAmountPaid: paid,
		RefundStatus:      domain.RefundNone,
		CreatedAt:         createdAt,
	}
}

// --- tests ---

func TestExecute_RefundWindows(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	paid := decimal.NewFromInt(100)

	tests := []struct {
		name       string
		elapsed    time.Duration
		wantRefund string
		wantStatus domain.RefundStatus
	}{
		{"10 minutes full refund", 10 * time.Minute, "100", domain.RefundInitiated},
		{"exactly 30 minutes full refund", 30 * time.Minute, "100", domain.RefundInitiated},
		{"1 hour half refund", time.Hour, "50", domain.RefundInitiated},
		{"exactly 2 hours half refund", 2 * time.Hour, "50", domain.RefundInitiated},
		{"3 hours no refund", 3 * time.Hour, "0", domain.RefundNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := &fakeSessionRepo{session: reservedSession(now.Add(-tt.elapsed), paid)}
			slots := &fakeSlotRepo{}
			uc := newUseCase(sessions, slots, now)

			resp, err := uc.Execute(context.Background(), &Request{Token: "PW-abc", Reason: "plans changed"})

			require.NoError(t, err)
			assert.Equal(t, string(domain.StatusCancelled), resp.Status)
			assert.Equal(t, tt.wantRefund, resp.RefundAmount.String())
			assert.Equal(t, string(tt.wantStatus), resp.RefundStatus)
			assert.Equal(t, []int64{5}, slots.released)

			require.NotNil(t, sessions.updated)
			require.NotNil(t, sessions.updated.CancellationType)
			assert.Equal(t, domain.CancellationManual, *sessions.updated.CancellationType)
			require.NotNil(t, sessions.updated.CancellationReason)
			assert.Equal(t, "plans changed", *sessions.updated.CancellationReason)
		})
	}
}

func TestExecute_ActiveSessionCannotBeCancelled(t *testing.T) {
	now := time.Now()
	sessions := &fakeSessionRepo{session: &domain.ParkingSession{
		Token:  "PW-abc",
		Status: domain.StatusActive,
	}}
	uc := newUseCase(sessions, &fakeSlotRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{Token: "PW-abc"})

	assert.ErrorIs(t, err, ErrCannotCancelActive)
}

func TestExecute_TerminalSessionRejected(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			sessions := &fakeSessionRepo{session: &domain.ParkingSession{Token: "PW-abc", Status: status}}
			uc := newUseCase(sessions, &fakeSlotRepo{}, time.Now())

			_, err := uc.Execute(context.Background(), &Request{Token: "PW-abc"})

			assert.ErrorIs(t, err, ErrAlreadyFinal)
		})
	}
}

func TestExecute_UnpaidSessionRefundsNothing(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessionRepo{session: reservedSession(now.Add(-5*time.Minute), decimal.Zero)}
	uc := newUseCase(sessions, &fakeSlotRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{Token: "PW-abc"})

	require.NoError(t, err)
	assert.True(t, resp.RefundAmount.IsZero())
	assert.Equal(t, string(domain.RefundNone), resp.RefundStatus)
}
