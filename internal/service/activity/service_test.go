package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (m *mockBookingRepo) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bookings, nil
}

type mockReadSetRepo struct {
	keys    map[string]bool
	keysErr error
	marked  []string
}

func (m *mockReadSetRepo) MarkRead(ctx context.Context, adminID string, key string) error {
	m.marked = append(m.marked, key)
	return nil
}

func (m *mockReadSetRepo) Keys(ctx context.Context, adminID string) (map[string]bool, error) {
	if m.keysErr != nil {
		return nil, m.keysErr
	}
	return m.keys, nil
}

func TestFeed_AppliesReadSet(t *testing.T) {
	now := time.Now()
	bookingRepo := &mockBookingRepo{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusPending, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)},
		{ID: 2, Status: domain.StatusPending, CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-2 * time.Hour)},
	}}
	readRepo := &mockReadSetRepo{keys: map[string]bool{"booking:2": true}}

	svc := NewService(bookingRepo, readRepo, DefaultPolicy(), nopLogger{})

	entries, err := svc.Feed(context.Background(), "admin-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.False(t, entries[0].IsRead)
	assert.Equal(t, "booking:2", entries[1].Key)
	assert.True(t, entries[1].IsRead)
}

func TestFeed_ReadSetFailureDegradesToUnread(t *testing.T) {
	// Сбой хранилища отметок не роняет ленту: всё показывается непрочитанным
	now := time.Now()
	bookingRepo := &mockBookingRepo{bookings: []*domain.Booking{
		{ID: 1, Status: domain.StatusPending, CreatedAt: now.Add(-time.Hour), UpdatedAt: now.Add(-time.Hour)},
	}}
	readRepo := &mockReadSetRepo{keysErr: errors.New("connection refused")}

	svc := NewService(bookingRepo, readRepo, DefaultPolicy(), nopLogger{})

	entries, err := svc.Feed(context.Background(), "admin-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsRead)
}

func TestFeed_SnapshotFailure(t *testing.T) {
	bookingRepo := &mockBookingRepo{err: errors.New("connection refused")}
	svc := NewService(bookingRepo, &mockReadSetRepo{}, DefaultPolicy(), nopLogger{})

	_, err := svc.Feed(context.Background(), "admin-1")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestMarkRead(t *testing.T) {
	readRepo := &mockReadSetRepo{}
	svc := NewService(&mockBookingRepo{}, readRepo, DefaultPolicy(), nopLogger{})

	require.NoError(t, svc.MarkRead(context.Background(), "admin-1", "booking:1"))
	assert.Equal(t, []string{"booking:1"}, readRepo.marked)

	assert.ErrorIs(t, svc.MarkRead(context.Background(), "admin-1", ""), ErrInvalidInput)
}
