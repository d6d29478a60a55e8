package expiry_warning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkwise/PW-SessionService/internal/domain"
	"github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
)

// --- fakes ---

// fakeSessionRepo отдаёт сессии так же, как БД: reserved, срок внутри
// окна threshold, предупреждение ещё не отправлялось
type fakeSessionRepo struct {
	sessions []*domain.ParkingSession
	updates  int
}

func (f *fakeSessionRepo) GetAwaitingExpiryWarning(_ context.Context, threshold time.Time) ([]*domain.ParkingSession, error) {
	var out []*domain.ParkingSession
	for _, s := range f.sessions {
		if s.Status != domain.StatusReserved || s.ExpiryWarningSent {
			continue
		}
		if s.BookingExpiryTime != nil && !s.BookingExpiryTime.After(threshold) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, _ *domain.ParkingSession) error {
	f.updates++
	return nil
}

type fakeVehicleRepo struct{}

func (fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	return &domain.Vehicle{ID: id, PlateNumber: "KA01AB1234"}, nil
}

type fakeNotifier struct{}

func (fakeNotifier) Notify(_ context.Context, _ smsgateway.Notification) error { return nil }

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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
		Status:            domain.StatusReserved,
		BookingExpiryTime: &expiry,
	}
}

// --- tests ---

func TestExecute_WarnsOnlyInsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		reserved(1, "PW-soon", now.Add(30*time.Minute)),
		reserved(2, "PW-later", now.Add(3*time.Hour)),
	}}
	uc := NewUseCase(sessions, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, 60, noopLogger{})
	uc.timeProvider = &fixedClock{now: now}

	count, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, sessions.sessions[0].ExpiryWarningSent)
	assert.False(t, sessions.sessions[1].ExpiryWarningSent)
}

func TestExecute_WarnsOncePerBooking(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	sessions := &fakeSessionRepo{sessions: []*domain.ParkingSession{
		reserved(1, "PW-soon", now.Add(30*time.Minute)),
	}}
	uc := NewUseCase(sessions, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, 60, noopLogger{})
	uc.timeProvider = &fixedClock{now: now}

	first, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second)
	assert.Equal(t, 1, sessions.updates)
}

func TestExecute_NothingDue(t *testing.T) {
	uc := NewUseCase(&fakeSessionRepo{}, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, 60, noopLogger{})

	count, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
