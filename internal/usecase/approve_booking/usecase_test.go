package approve_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	storage "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/booking"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockBookingRepo struct {
	booking *domain.Booking
	getErr  error

	approved int
	sumErr   error

	updateErr     error
	updatedStatus *domain.BookingStatus
	excludedID    *int64
}

func (m *mockBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.booking, nil
}

func (m *mockBookingRepo) SumApprovedPartySize(ctx context.Context, date types.DateOnly, excludeID *int64) (int, error) {
	m.excludedID = excludeID
	if m.sumErr != nil {
		return 0, m.sumErr
	}
	return m.approved, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedStatus = &status
	return nil
}

type mockDefaultsRepo struct {
	defaults *domain.CalendarDefaults
	err      error
}

func (m *mockDefaultsRepo) Get(ctx context.Context) (*domain.CalendarDefaults, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.defaults, nil
}

type mockResolver struct {
	capacity domain.EffectiveCapacity
}

func (m *mockResolver) Resolve(ctx context.Context, date types.DateOnly, defaults domain.CalendarDefaults) domain.EffectiveCapacity {
	return m.capacity
}

type mockTxManager struct {
	doCalls           int
	serializableCalls int
}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.doCalls++
	return fn(ctx)
}

func (m *mockTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.serializableCalls++
	return fn(ctx)
}

func pendingBooking(t *testing.T, partySize int) *domain.Booking {
	t.Helper()
	date, err := types.ParseDateOnly("2026-05-01")
	require.NoError(t, err)
	return &domain.Booking{
		ID:          42,
		RequesterID: 7,
		TrekDate:    date,
		PartySize:   partySize,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().Add(-time.Hour),
		UpdatedAt:   time.Now().Add(-time.Hour),
	}
}

func newTestUseCase(repo *mockBookingRepo, defaults *mockDefaultsRepo, resolver *mockResolver, tx *mockTxManager) *UseCase {
	return NewUseCase(repo, defaults, resolver, tx, nil, true, 5*time.Second, nopLogger{})
}

func TestExecute_ApprovesWhenCapacityFits(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking(t, 2), approved: 10}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30, Source: domain.SourceDefault}}
	tx := &mockTxManager{}

	uc := newTestUseCase(repo, defaults, resolver, tx)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusApproved), resp.Status)
	assert.Equal(t, 12, resp.ApprovedLoad)
	assert.Equal(t, 30, resp.Capacity)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.StatusApproved, *repo.updatedStatus)
	assert.Equal(t, 1, tx.serializableCalls)
}

func TestExecute_LastSlotFitsExactly(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking(t, 1), approved: 29}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30, Source: domain.SourceDefault}}

	uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.ApprovedLoad)
}

func TestExecute_CapacityExceededCarriesLoadSnapshot(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking(t, 1), approved: 30}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30, Source: domain.SourceDefault}}

	uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 30, capErr.Current)
	assert.Equal(t, 30, capErr.Max)

	// Статус заявки не тронут
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_ClosedDateRefused(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking(t, 1)}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 0, IsClosed: true, Source: domain.SourceOverride}}

	uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	assert.ErrorIs(t, err, ErrDateClosed)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_CountFailureFailsClosed(t *testing.T) {
	// Недоступная загрузка даты никогда не трактуется как нулевая
	repo := &mockBookingRepo{booking: pendingBooking(t, 1), sumErr: storage.ErrCountUnavailable}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30, Source: domain.SourceDefault}}

	uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	assert.ErrorIs(t, err, ErrCapacityUnknown)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_DefaultsFailureFailsClosed(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking(t, 1)}
	defaults := &mockDefaultsRepo{err: errors.New("connection refused")}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30, Source: domain.SourceDefault}}

	uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	assert.ErrorIs(t, err, ErrCapacityUnknown)
	assert.Nil(t, repo.updatedStatus)
}

func TestExecute_NonPendingRefused(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusApproved,
		domain.StatusRejected,
		domain.StatusCancelled,
		domain.StatusChangesRequired,
	} {
		booking := pendingBooking(t, 1)
		booking.Status = status

		repo := &mockBookingRepo{booking: booking}
		defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
		resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30}}

		uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

		_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
		assert.ErrorIs(t, err, ErrIllegalTransition, "status %s", status)
		assert.Nil(t, repo.updatedStatus, "status %s", status)
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := &mockBookingRepo{getErr: storage.ErrBookingNotFound}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30}}

	uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_CountExcludesOwnBooking(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking(t, 2), approved: 5}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30}}

	uc := newTestUseCase(repo, defaults, resolver, &mockTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	require.NoError(t, err)

	require.NotNil(t, repo.excludedID)
	assert.Equal(t, int64(42), *repo.excludedID)
}

func TestExecute_SerializationToggle(t *testing.T) {
	repo := &mockBookingRepo{booking: pendingBooking(t, 1), approved: 0}
	defaults := &mockDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}}
	resolver := &mockResolver{capacity: domain.EffectiveCapacity{Capacity: 30}}
	tx := &mockTxManager{}

	uc := NewUseCase(repo, defaults, resolver, tx, nil, false, 5*time.Second, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, AdminID: "admin-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, tx.doCalls)
	assert.Equal(t, 0, tx.serializableCalls)
}

func TestExecute_ValidatesRequest(t *testing.T) {
	uc := newTestUseCase(&mockBookingRepo{}, &mockDefaultsRepo{}, &mockResolver{}, &mockTxManager{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0, AdminID: "admin-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BookingID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
