package activity

import (
	"sort"
	"time"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
)

// Policy пороги деривации ленты. Значения приходят из конфигурации;
// алгоритм от них не зависит по форме.
type Policy struct {
	// RecentWindow окно свежести: события cancelled/updated старше окна не попадают в ленту
	RecentWindow time.Duration
	// UpdateDelta минимальная разница updatedAt - createdAt, после которой
	// pending заявка считается обновлённой, а не новой
	UpdateDelta time.Duration
}

// DefaultPolicy пороги по умолчанию: окно 7 дней, дельта 60 секунд
func DefaultPolicy() Policy {
	return Policy{
		RecentWindow: 7 * 24 * time.Hour,
		UpdateDelta:  60 * time.Second,
	}
}

// Derive строит ленту активности из снимка заявок. Чистая функция:
// одинаковые входы дают одинаковый результат, запись за записью.
// Ключи детерминированы парой (вид события, ID заявки), поэтому повторная
// деривация никогда не порождает дубликатов. readSet влияет только на флаг
// IsRead, не на состав ленты.
func Derive(bookings []*domain.Booking, readSet map[string]bool, now time.Time, policy Policy) []domain.ActivityEntry {
	entries := make([]domain.ActivityEntry, 0, len(bookings))

	for _, b := range bookings {
		if entry, ok := deriveOne(b, now, policy); ok {
			entry.IsRead = readSet[entry.Key]
			entries = append(entries, entry)
		}
	}

	// Свежие сверху; равные времена упорядочиваем по ключу для детерминизма
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].Key < entries[j].Key
	})

	return entries
}

func deriveOne(b *domain.Booking, now time.Time, policy Policy) (domain.ActivityEntry, bool) {
	recent := func(t time.Time) bool {
		return now.Sub(t) <= policy.RecentWindow
	}
	updated := b.UpdatedAt.Sub(b.CreatedAt) > policy.UpdateDelta

	var kind domain.ActivityKind
	var ts time.Time

	switch b.Status {
	case domain.StatusPending, domain.StatusChangesRequired:
		if !updated && b.Status == domain.StatusPending {
			// Новая заявка ждёт рассмотрения; окно свежести не применяется,
			// пока её не обработали
			kind = domain.ActivityNewRequest
			ts = b.CreatedAt
		} else {
			if !recent(b.UpdatedAt) {
				return domain.ActivityEntry{}, false
			}
			kind = domain.ActivityUpdated
			ts = b.UpdatedAt
		}
	case domain.StatusRejected:
		if !recent(b.UpdatedAt) {
			return domain.ActivityEntry{}, false
		}
		kind = domain.ActivityUpdated
		ts = b.UpdatedAt
	case domain.StatusCancelled:
		if !recent(b.UpdatedAt) {
			return domain.ActivityEntry{}, false
		}
		kind = domain.ActivityCancelled
		ts = b.UpdatedAt
	default:
		// approved заявки не порождают записей в ленте
		return domain.ActivityEntry{}, false
	}

	return domain.ActivityEntry{
		Key:         domain.ActivityKey(kind, b.ID),
		Kind:        kind,
		BookingID:   b.ID,
		RequesterID: b.RequesterID,
		PartySize:   b.PartySize,
		TrekDate:    b.TrekDate,
		Timestamp:   ts,
	}, true
}
