package scan_entry

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

type fakeSlotRepo struct {
	occupied []int64
}

func (f *fakeSlotRepo) MarkOccupied(_ context.Context, id int64) error {
	f.occupied = append(f.occupied, id)
	return nil
}

type fakeVehicleRepo struct{}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
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
	uc := NewUseCase(sessions, slots, &fakeVehicleRepo{}, fakeNotifier{}, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedClock{now: now}
	return uc
}

// --- tests ---

func TestExecute_ReservedBecomesActive(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	sessions := &fakeSessionRepo{session: &domain.ParkingSession{
		ID:     1,
		Token:  "PW-abc",
		Status: domain.StatusReserved,
		SlotID: ptr.Ptr(int64(5)),
	}}
	slots := &fakeSlotRepo{}
	uc := newUseCase(sessions, slots, now)

	resp, err := uc.Execute(context.Background(), &Request{Token: "PW-abc"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	assert.Equal(t, now, resp.EntryTime)
	assert.False(t, resp.AlreadyIn)
	assert.Equal(t, []int64{5}, slots.occupied)
	require.NotNil(t, sessions.updated)
	require.NotNil(t, sessions.updated.EntryTime)
	assert.Equal(t, now, *sessions.updated.EntryTime)
}

func TestExecute_SecondScanIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	entry := now.Add(-30 * time.Minute)
	sessions := &fakeSessionRepo{session: &domain.ParkingSession{
		ID:        1,
		Token:     "PW-abc",
		Status:    domain.StatusActive,
		EntryTime: &entry,
		SlotID:    ptr.Ptr(int64(5)),
	}}
	slots := &fakeSlotRepo{}
	uc := newUseCase(sessions, slots, now)

	resp, err := uc.Execute(context.Background(), &Request{Token: "PW-abc"})

	require.NoError(t, err)
	assert.True(t, resp.AlreadyIn)
	assert.Equal(t, entry, resp.EntryTime)
	// Повторный скан ничего не меняет
	assert.Nil(t, sessions.updated)
	assert.Empty(t, slots.occupied)
}

func TestExecute_TerminalSessionRejected(t *testing.T) {
	for _, status := range []domain.SessionStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			sessions := &fakeSessionRepo{session: &domain.ParkingSession{Token: "PW-abc", Status: status}}
			uc := newUseCase(sessions, &fakeSlotRepo{}, time.Now())

			_, err := uc.Execute(context.Background(), &Request{Token: "PW-abc"})

			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_UnknownToken(t *testing.T) {
	uc := newUseCase(&fakeSessionRepo{}, &fakeSlotRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{Token: "PW-missing"})

	assert.ErrorIs(t, err, ErrSessionNotFound)
}
