package approve_booking

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// BookingRepository интерфейс репозитория заявок
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	SumApprovedPartySize(ctx context.Context, date types.DateOnly, excludeID *int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// DefaultsRepository интерфейс репозитория глобальных настроек ёмкости
type DefaultsRepository interface {
	Get(ctx context.Context) (*domain.CalendarDefaults, error)
}

// CapacityResolver интерфейс резолвера действующей ёмкости даты
type CapacityResolver interface {
	Resolve(ctx context.Context, date types.DateOnly, defaults domain.CalendarDefaults) domain.EffectiveCapacity
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// OutcomeRecorder интерфейс записи исхода admission-проверки в метрики
type OutcomeRecorder interface {
	ApprovalOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopRecorder заглушка для выключенных метрик
type NopRecorder struct{}

// ApprovalOutcome ничего не делает
func (NopRecorder) ApprovalOutcome(string) {}
