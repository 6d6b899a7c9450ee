package append_remark

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	storage "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockBookingRepo struct {
	booking *domain.Booking
	getErr  error

	appended      *domain.AdminRemark
	appendErr     error
	updatedStatus *domain.BookingStatus
}

func (m *mockBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.booking, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	m.updatedStatus = &status
	return nil
}

func (m *mockBookingRepo) AppendRemark(ctx context.Context, remark *domain.AdminRemark) (*domain.AdminRemark, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	saved := *remark
	saved.ID = 100
	saved.CreatedAt = time.Now()
	m.appended = &saved
	return &saved, nil
}

type mockTxManager struct{}

func (mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func bookingWithStatus(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: 42, Status: status}
}

func TestExecute_RemarkOnPendingRequiresChanges(t *testing.T) {
	repo := &mockBookingRepo{booking: bookingWithStatus(domain.StatusPending)}
	uc := NewUseCase(repo, mockTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		Author:    "admin-1",
		Text:      "уточните размер группы",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusChangesRequired), resp.BookingStatus)
	assert.Equal(t, int64(100), resp.RemarkID)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusChangesRequired, *repo.updatedStatus)
	require.NotNil(t, repo.appended)
	assert.Equal(t, "admin-1", repo.appended.Author)
}

func TestExecute_RemarkOnChangesRequiredKeepsStatus(t *testing.T) {
	repo := &mockBookingRepo{booking: bookingWithStatus(domain.StatusChangesRequired)}
	uc := NewUseCase(repo, mockTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		Author:    "admin-1",
		Text:      "ещё одно замечание",
	})
	require.NoError(t, err)

	// Статус остаётся changes_required, но updated_at заявки сдвигается
	assert.Equal(t, string(domain.StatusChangesRequired), resp.BookingStatus)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusChangesRequired, *repo.updatedStatus)
}

func TestExecute_RemarkOnRejectedDoesNotChangeStatus(t *testing.T) {
	repo := &mockBookingRepo{booking: bookingWithStatus(domain.StatusRejected)}
	uc := NewUseCase(repo, mockTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 42,
		Author:    "admin-1",
		Text:      "комментарий к отказу",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusRejected), resp.BookingStatus)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_RemarksLockedForTerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusApproved, domain.StatusCancelled} {
		repo := &mockBookingRepo{booking: bookingWithStatus(status)}
		uc := NewUseCase(repo, mockTxManager{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 42,
			Author:    "admin-1",
			Text:      "слишком поздно",
		})
		assert.ErrorIs(t, err, ErrRemarksLocked, "status %s", status)
		assert.Nil(t, repo.appended, "status %s", status)
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &mockBookingRepo{getErr: storage.ErrBookingNotFound}
	uc := NewUseCase(repo, mockTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, Author: "admin-1", Text: "текст"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&mockBookingRepo{}, mockTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, Author: "admin-1", Text: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 42, Text: "без автора"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	long := strings.Repeat("a", domain.MaxRemarkTextLength+1)
	_, err = uc.Execute(context.Background(), &Request{BookingID: 42, Author: "admin-1", Text: long})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
