package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	calendarModels "github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
	"github.com/m04kA/Trek-AdmissionService/pkg/ptr"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

type rangeCalendarRepo struct {
	mockCalendarRepo
	configs map[types.DateOnly]*domain.CalendarDateConfig
}

func (m *rangeCalendarRepo) ListRange(ctx context.Context, from, to types.DateOnly) (map[types.DateOnly]*domain.CalendarDateConfig, error) {
	return m.configs, nil
}

type stubDefaultsRepo struct {
	defaults *domain.CalendarDefaults
}

func (m *stubDefaultsRepo) Get(ctx context.Context) (*domain.CalendarDefaults, error) {
	return m.defaults, nil
}

func (m *stubDefaultsRepo) Update(ctx context.Context, defaultMaxSlots *int, criticalThreshold *int) (*domain.CalendarDefaults, error) {
	if defaultMaxSlots != nil {
		m.defaults.DefaultMaxSlots = *defaultMaxSlots
	}
	if criticalThreshold != nil {
		m.defaults.CriticalThreshold = *criticalThreshold
	}
	return m.defaults, nil
}

type stubBookingRepo struct {
	approved int
	load     map[types.DateOnly]int
}

func (m *stubBookingRepo) SumApprovedPartySize(ctx context.Context, date types.DateOnly, excludeID *int64) (int, error) {
	return m.approved, nil
}

func (m *stubBookingRepo) ApprovedLoadByDate(ctx context.Context, from, to types.DateOnly) (map[types.DateOnly]int, error) {
	return m.load, nil
}

func TestGetDaySummary(t *testing.T) {
	date := mustDate(t, "2026-05-01")

	repo := &rangeCalendarRepo{}
	repo.config = &domain.CalendarDateConfig{Date: date, MaxSlots: ptr.Ptr(20)}

	svc := NewService(
		repo,
		&stubDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30, CriticalThreshold: 18}},
		&stubBookingRepo{approved: 18},
		nopLogger{},
	)

	resp, err := svc.GetDaySummary(context.Background(), date)
	require.NoError(t, err)

	assert.Equal(t, 20, resp.Capacity)
	assert.Equal(t, 18, resp.Approved)
	assert.Equal(t, 2, resp.Remaining)
	assert.Equal(t, "override", resp.Source)
	assert.True(t, resp.Critical)
}

func TestUpdateDefaults_PartialUpdate(t *testing.T) {
	defaults := &stubDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30, CriticalThreshold: 25}}
	svc := NewService(&rangeCalendarRepo{}, defaults, &stubBookingRepo{}, nopLogger{})

	resp, err := svc.UpdateDefaults(context.Background(), &calendarModels.UpdateDefaultsRequest{
		DefaultMaxSlots: ptr.Ptr(40),
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.DefaultMaxSlots)
	assert.Equal(t, 25, resp.CriticalThreshold)

	_, err = svc.UpdateDefaults(context.Background(), &calendarModels.UpdateDefaultsRequest{
		DefaultMaxSlots: ptr.Ptr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateDefaults(context.Background(), &calendarModels.UpdateDefaultsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFindOverbooked(t *testing.T) {
	overDate := mustDate(t, "2026-05-01")
	okDate := mustDate(t, "2026-05-02")
	cappedDate := mustDate(t, "2026-05-03")

	repo := &rangeCalendarRepo{configs: map[types.DateOnly]*domain.CalendarDateConfig{
		// Дата с заниженной ёмкостью: одобрено больше, чем лимит
		cappedDate: {Date: cappedDate, MaxSlots: ptr.Ptr(5)},
	}}

	svc := NewService(
		repo,
		&stubDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}},
		&stubBookingRepo{load: map[types.DateOnly]int{
			overDate:   35, // выше дефолта
			okDate:     30, // ровно по лимиту
			cappedDate: 8,  // выше переопределения
		}},
		nopLogger{},
	)

	got, err := svc.FindOverbooked(context.Background(), overDate, cappedDate)
	require.NoError(t, err)

	require.Len(t, got, 2)
	// Отсортировано по дате
	assert.Equal(t, overDate, got[0].Date)
	assert.Equal(t, 35, got[0].Approved)
	assert.Equal(t, 30, got[0].Capacity)
	assert.Equal(t, cappedDate, got[1].Date)
	assert.Equal(t, 8, got[1].Approved)
	assert.Equal(t, 5, got[1].Capacity)
}

func TestFindOverbooked_InvalidPeriod(t *testing.T) {
	svc := NewService(
		&rangeCalendarRepo{},
		&stubDefaultsRepo{defaults: &domain.CalendarDefaults{DefaultMaxSlots: 30}},
		&stubBookingRepo{},
		nopLogger{},
	)

	_, err := svc.FindOverbooked(context.Background(), mustDate(t, "2026-05-02"), mustDate(t, "2026-05-01"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
