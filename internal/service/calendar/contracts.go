package calendar

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// CalendarRepository интерфейс репозитория переопределений дат
type CalendarRepository interface {
	GetByDate(ctx context.Context, date types.DateOnly) (*domain.CalendarDateConfig, error)
	ListRange(ctx context.Context, from, to types.DateOnly) (map[types.DateOnly]*domain.CalendarDateConfig, error)
	Upsert(ctx context.Context, config *domain.CalendarDateConfig) (*domain.CalendarDateConfig, error)
	Delete(ctx context.Context, date types.DateOnly) error
}

// DefaultsRepository интерфейс репозитория глобальных настроек
type DefaultsRepository interface {
	Get(ctx context.Context) (*domain.CalendarDefaults, error)
	Update(ctx context.Context, defaultMaxSlots *int, criticalThreshold *int) (*domain.CalendarDefaults, error)
}

// BookingRepository интерфейс репозитория бронирований (только чтение загрузки)
type BookingRepository interface {
	SumApprovedPartySize(ctx context.Context, date types.DateOnly, excludeID *int64) (int, error)
	ApprovedLoadByDate(ctx context.Context, from, to types.DateOnly) (map[types.DateOnly]int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
