package get_overbooked

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

type CalendarService interface {
	FindOverbooked(ctx context.Context, from, to types.DateOnly) ([]domain.OverbookedDate, error)
}

// OverbookedRecorder интерфейс выставления gauge-метрики сверки
type OverbookedRecorder interface {
	SetOverbookedDates(window string, count int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// NopRecorder заглушка для выключенных метрик
type NopRecorder struct{}

// SetOverbookedDates ничего не делает
func (NopRecorder) SetOverbookedDates(string, int) {}
