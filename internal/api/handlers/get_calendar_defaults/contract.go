package get_calendar_defaults

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
)

type CalendarService interface {
	GetDefaults(ctx context.Context) (*models.DefaultsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
