package get_activity_feed

import (
	"context"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
)

type ActivityService interface {
	Feed(ctx context.Context, adminID string) ([]domain.ActivityEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
