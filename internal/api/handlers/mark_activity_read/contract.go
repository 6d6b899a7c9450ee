package mark_activity_read

import "context"

type ActivityService interface {
	MarkRead(ctx context.Context, adminID string, key string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
