package activity

import (
	"context"
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
)

// BookingRepository интерфейс репозитория заявок (снимок для деривации)
type BookingRepository interface {
	ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ReadSetRepository интерфейс хранилища отметок прочтения
type ReadSetRepository interface {
	MarkRead(ctx context.Context, adminID string, key string) error
	Keys(ctx context.Context, adminID string) (map[string]bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
