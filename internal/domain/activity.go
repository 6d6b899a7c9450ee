package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// ActivityKind вид записи в ленте активности
type ActivityKind string

const (
	ActivityNewRequest ActivityKind = "new_request"
	ActivityCancelled  ActivityKind = "cancelled"
	ActivityUpdated    ActivityKind = "updated"
)

// ActivityEntry одна запись ленты активности администратора.
// Key детерминированно выводится из (вид события, ID бронирования), поэтому
// повторная генерация ленты никогда не порождает дубликатов.
type ActivityEntry struct {
	Key         string
	Kind        ActivityKind
	BookingID   int64
	RequesterID int64
	PartySize   int
	TrekDate    types.DateOnly
	Timestamp   time.Time
	IsRead      bool
}

// ActivityKey строит стабильный ключ записи
func ActivityKey(kind ActivityKind, bookingID int64) string {
	switch kind {
	case ActivityNewRequest:
		return fmt.Sprintf("booking:%d", bookingID)
	case ActivityCancelled:
		return fmt.Sprintf("cancelled:%d", bookingID)
	case ActivityUpdated:
		return fmt.Sprintf("update:%d", bookingID)
	default:
		return fmt.Sprintf("%s:%d", kind, bookingID)
	}
}
