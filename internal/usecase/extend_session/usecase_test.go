package extend_session

import (
	"context"
	"testing"
	"time"

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

func newUseCase(sessions *fakeSessionRepo, now time.Time) *UseCase {
	uc := NewUseCase(sessions, fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

// --- tests ---

func TestExecute_ExtendsFromCurrentExpiry(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(3 * time.Hour)
	sessions := &fakeSessionRepo{session: &domain.ParkingSession{
		ID:                1,
		Token:             "PW-abc",
		VehicleID:         7,
		Status:            domain.StatusReserved,
		BookingExpiryTime: &expiry,
		ExpiryWarningSent: true,
	}}
	uc := newUseCase(sessions, now)

	resp, err := uc.Execute(context.Background(), &Request{Token: "PW-abc", Hours: 6})

	require.NoError(t, err)
	assert.Equal(t, expiry.Add(6*time.Hour), resp.BookingExpiryTime)
	assert.Equal(t, 1, resp.ExtensionCount)
	require.NotNil(t, sessions.updated)
	// Срок сдвинулся, предупреждение поедет заново
	assert.False(t, sessions.updated.ExpiryWarningSent)
}

func TestExecute_RepeatedExtensionsStack(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	expiry := now.Add(time.Hour)
	session := &domain.ParkingSession{
		ID:                1,
		Token:             "PW-abc",
		Status:            domain.StatusReserved,
		BookingExpiryTime: &expiry,
	}
	uc := newUseCase(&fakeSessionRepo{session: session}, now)

	_, err := uc.Execute(context.Background(), &Request{Token: "PW-abc", Hours: 2})
	require.NoError(t, err)
	resp, err := uc.Execute(context.Background(), &Request{Token: "PW-abc", Hours: 24})
	require.NoError(t, err)

	assert.Equal(t, expiry.Add(26*time.Hour), resp.BookingExpiryTime)
	assert.Equal(t, 2, resp.ExtensionCount)
}

func TestExecute_UnsupportedHours(t *testing.T) {
	uc := newUseCase(&fakeSessionRepo{}, time.Now())

	for _, hours := range []int{0, 1, 3, 12, 48, -2} {
		_, err := uc.Execute(context.Background(), &Request{Token: "PW-abc", Hours: hours})
		assert.ErrorIs(t, err, ErrInvalidHours, "hours=%d", hours)
	}
}

func TestExecute_OnlyReservedCanBeExtended(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.StatusActive, domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			sessions := &fakeSessionRepo{session: &domain.ParkingSession{
				Token:             "PW-abc",
				Status:            status,
				BookingExpiryTime: ptr.Ptr(time.Now()),
			}}
			uc := newUseCase(sessions, time.Now())

			_, err := uc.Execute(context.Background(), &Request{Token: "PW-abc", Hours: 2})

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}
