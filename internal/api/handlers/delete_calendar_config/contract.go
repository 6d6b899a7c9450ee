package delete_calendar_config

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

type CalendarService interface {
	DeleteConfig(ctx context.Context, date types.DateOnly) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
