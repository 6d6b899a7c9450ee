package upsert_calendar_config

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/service/calendar/models"
)

type CalendarService interface {
	UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
