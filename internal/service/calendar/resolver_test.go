package calendar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	calendarRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/calendar"
	"github.com/m04kA/Trek-AdmissionService/pkg/ptr"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockCalendarRepo struct {
	config *domain.CalendarDateConfig
	err    error
}

func (m *mockCalendarRepo) GetByDate(ctx context.Context, date types.DateOnly) (*domain.CalendarDateConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.config, nil
}

func (m *mockCalendarRepo) ListRange(ctx context.Context, from, to types.DateOnly) (map[types.DateOnly]*domain.CalendarDateConfig, error) {
	return nil, nil
}

func (m *mockCalendarRepo) Upsert(ctx context.Context, config *domain.CalendarDateConfig) (*domain.CalendarDateConfig, error) {
	return config, nil
}

func (m *mockCalendarRepo) Delete(ctx context.Context, date types.DateOnly) error {
	return nil
}

func mustDate(t *testing.T, s string) types.DateOnly {
	t.Helper()
	d, err := types.ParseDateOnly(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func TestResolve_NoOverrideInheritsDefault(t *testing.T) {
	repo := &mockCalendarRepo{err: calendarRepo.ErrConfigNotFound}
	resolver := NewResolver(repo, nopLogger{})

	got := resolver.Resolve(context.Background(), mustDate(t, "2026-04-15"), domain.CalendarDefaults{DefaultMaxSlots: 30})

	assert.Equal(t, 30, got.Capacity)
	assert.False(t, got.IsClosed)
	assert.Equal(t, domain.SourceDefault, got.Source)
}

func TestResolve_OverrideWins(t *testing.T) {
	repo := &mockCalendarRepo{config: &domain.CalendarDateConfig{
		Date:     mustDate(t, "2026-04-15"),
		MaxSlots: ptr.Ptr(10),
	}}
	resolver := NewResolver(repo, nopLogger{})

	got := resolver.Resolve(context.Background(), mustDate(t, "2026-04-15"), domain.CalendarDefaults{DefaultMaxSlots: 30})

	assert.Equal(t, 10, got.Capacity)
	assert.Equal(t, domain.SourceOverride, got.Source)
}

func TestResolve_ClosedDateHasZeroCapacity(t *testing.T) {
	repo := &mockCalendarRepo{config: &domain.CalendarDateConfig{
		Date:     mustDate(t, "2026-04-15"),
		MaxSlots: ptr.Ptr(10),
		IsClosed: true,
	}}
	resolver := NewResolver(repo, nopLogger{})

	got := resolver.Resolve(context.Background(), mustDate(t, "2026-04-15"), domain.CalendarDefaults{DefaultMaxSlots: 30})

	assert.True(t, got.IsClosed)
	assert.Equal(t, 0, got.Capacity)
}

func TestResolve_OverrideWithoutMaxSlotsInheritsDefault(t *testing.T) {
	// Переопределение с одной заметкой: лимит наследуется от дефолта
	repo := &mockCalendarRepo{config: &domain.CalendarDateConfig{
		Date: mustDate(t, "2026-04-15"),
		Note: ptr.Ptr("проводник в отпуске"),
	}}
	resolver := NewResolver(repo, nopLogger{})

	got := resolver.Resolve(context.Background(), mustDate(t, "2026-04-15"), domain.CalendarDefaults{DefaultMaxSlots: 30})

	assert.Equal(t, 30, got.Capacity)
	assert.Equal(t, domain.SourceDefault, got.Source)
}

func TestResolve_LookupFailureFallsBackToDefault(t *testing.T) {
	// Транзиентный сбой чтения переопределения не роняет путь чтения
	repo := &mockCalendarRepo{err: errors.New("connection refused")}
	resolver := NewResolver(repo, nopLogger{})

	got := resolver.Resolve(context.Background(), mustDate(t, "2026-04-15"), domain.CalendarDefaults{DefaultMaxSlots: 30})

	assert.Equal(t, 30, got.Capacity)
	assert.False(t, got.IsClosed)
	assert.Equal(t, domain.SourceDefault, got.Source)
}

func TestResolveWithConfig(t *testing.T) {
	defaults := domain.CalendarDefaults{DefaultMaxSlots: 30}

	assert.Equal(t, 30, ResolveWithConfig(nil, defaults).Capacity)
	assert.Equal(t, 12, ResolveWithConfig(&domain.CalendarDateConfig{MaxSlots: ptr.Ptr(12)}, defaults).Capacity)
	assert.True(t, ResolveWithConfig(&domain.CalendarDateConfig{IsClosed: true}, defaults).IsClosed)
}
