package expire_sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
	"github.com/parkwise/PW-SessionService/pkg/ptr"
)

// --- fakes ---

// fakeSessionRepo отдаёт просроченные сессии так же, как БД:
// reserved и с истёкшим сроком. После отмены сессия из выборки уходит
type fakeSessionRepo struct {
	sessions []*domain.ParkingSession
	updates  int
}

func (f *fakeSessionRepo) GetExpired(_ context.Context, now time.Time, limit uint64) ([]*domain.ParkingSession, error) {
	var out []*domain.ParkingSession
	for _, s := range f.sessions {
		if s.Status == domain.StatusReserved && s.IsExpired(now) {
			out = append(out, s)
		}
		if uint64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, _ *domain.ParkingSession) error {
	f.updates++
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

func reserved(id int64, token string, expiry time.Time) *domain.ParkingSession {
	return &domain.ParkingSession{
		ID:                id,
		Token:             token,
		VehicleID:         id,
		SlotID:            ptr.Ptr(id * 10),
		Status:            domain.StatusReserved,
		BookingExpiryTime: &expiry,
		RefundStatus:      domain.RefundNone,
	}
}

// --- tests ---

func TestExecute_CancelsExpiredOnly(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		reserved(1, "PW-old", now.Add(-time.Hour)),
		reserved(2, "PW-fresh", now.Add(time.Hour)),
	}}
	slots := &fakeSlotRepo{}
	uc := NewUseCase(sessions, slots, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedClock{now: now}

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.ExpiredCount)
	assert.Equal(t, []string{"PW-old"}, resp.Tokens)
	assert.Equal(t, []int64{10}, slots.released)

	expired := sessions.sessions[0]
	assert.Equal(t, domain.StatusCancelled, expired.Status)
	require.NotNil(t, expired.CancellationType)
	assert.Equal(t, domain.CancellationAuto, *expired.CancellationType)
	require.NotNil(t, expired.CancellationReason)
	assert.Equal(t, domain.CancelReasonExpired, *expired.CancellationReason)
	assert.True(t, expired.RefundAmount.IsZero())

	assert.Equal(t, domain.StatusReserved, sessions.sessions[1].Status)
}

func TestExecute_SecondRunFindsNothing(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		reserved(1, "PW-old", now.Add(-time.Hour)),
	}}
	uc := NewUseCase(sessions, &fakeSlotRepo{}, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedClock{now: now}

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.ExpiredCount)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.ExpiredCount)
	assert.Equal(t, 1, sessions.updates)
}

func TestExecute_EmptySweep(t *testing.T) {
	uc := NewUseCase(&fakeSessionRepo{}, &fakeSlotRepo{}, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, noopLogger{})

	resp, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, resp.ExpiredCount)
	assert.Empty(t, resp.Tokens)
}
