package get_calendar_day

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

type CalendarService interface {
	GetDaySummary(ctx context.Context, date types.DateOnly) (*models.DaySummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
