package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

var testNow = time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)

func testBooking(id int64, status domain.BookingStatus, created, updated time.Time) *domain.Booking {
	date, _ := types.ParseDateOnly("2026-05-01")
	return &domain.Booking{
		ID:          id,
		RequesterID: id * 100,
		TrekDate:    date,
		PartySize:   2,
		Status:      status,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
}

func TestDerive_PendingBecomesNewRequest(t *testing.T) {
	created := testNow.Add(-48 * time.Hour)
	bookings := []*domain.Booking{
		testBooking(1, domain.StatusPending, created, created.Add(time.Second)),
	}

	entries := Derive(bookings, nil, testNow, DefaultPolicy())

	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityNewRequest, entries[0].Kind)
	assert.Equal(t, "booking:1", entries[0].Key)
	assert.Equal(t, created, entries[0].Timestamp)
	assert.False(t, entries[0].IsRead)
}

func TestDerive_OldPendingStillShown(t *testing.T) {
	// Необработанная заявка не выпадает из ленты по возрасту
	created := testNow.Add(-30 * 24 * time.Hour)
	bookings := []*domain.Booking{
		testBooking(1, domain.StatusPending, created, created),
	}

	entries := Derive(bookings, nil, testNow, DefaultPolicy())

	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityNewRequest, entries[0].Kind)
}

func TestDerive_UpdatedPendingWithinWindow(t *testing.T) {
	created := testNow.Add(-10 * 24 * time.Hour)
	updated := testNow.Add(-2 * 24 * time.Hour)
	bookings := []*domain.Booking{
		testBooking(1, domain.StatusPending, created, updated),
	}

	entries := Derive(bookings, nil, testNow, DefaultPolicy())

	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityUpdated, entries[0].Kind)
	assert.Equal(t, "update:1", entries[0].Key)
	assert.Equal(t, updated, entries[0].Timestamp)
}

func TestDerive_UpdateDeltaSeparatesNewFromUpdated(t *testing.T) {
	created := testNow.Add(-time.Hour)
	policy := DefaultPolicy()

	// updatedAt в пределах дельты от createdAt: заявка всё ещё "новая"
	within := []*domain.Booking{
		testBooking(1, domain.StatusPending, created, created.Add(policy.UpdateDelta)),
	}
	entries := Derive(within, nil, testNow, policy)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityNewRequest, entries[0].Kind)

	// updatedAt за пределами дельты: заявка считается обновлённой
	beyond := []*domain.Booking{
		testBooking(1, domain.StatusPending, created, created.Add(policy.UpdateDelta+time.Second)),
	}
	entries = Derive(beyond, nil, testNow, policy)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityUpdated, entries[0].Kind)
}

func TestDerive_CancelledWithinWindow(t *testing.T) {
	created := testNow.Add(-10 * 24 * time.Hour)

	recent := []*domain.Booking{
		testBooking(1, domain.StatusCancelled, created, testNow.Add(-24*time.Hour)),
	}
	entries := Derive(recent, nil, testNow, DefaultPolicy())
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityCancelled, entries[0].Kind)
	assert.Equal(t, "cancelled:1", entries[0].Key)

	// Отмена старше окна свежести в ленту не попадает
	stale := []*domain.Booking{
		testBooking(1, domain.StatusCancelled, created, testNow.Add(-8*24*time.Hour)),
	}
	entries = Derive(stale, nil, testNow, DefaultPolicy())
	assert.Empty(t, entries)
}

func TestDerive_RejectedShowsAsUpdated(t *testing.T) {
	created := testNow.Add(-3 * 24 * time.Hour)
	bookings := []*domain.Booking{
		testBooking(1, domain.StatusRejected, created, testNow.Add(-time.Hour)),
	}

	entries := Derive(bookings, nil, testNow, DefaultPolicy())

	require.Len(t, entries, 1)
	assert.Equal(t, domain.ActivityUpdated, entries[0].Kind)
}

func TestDerive_ApprovedProducesNothing(t *testing.T) {
	created := testNow.Add(-time.Hour)
	bookings := []*domain.Booking{
		testBooking(1, domain.StatusApproved, created, testNow),
	}

	entries := Derive(bookings, nil, testNow, DefaultPolicy())

	assert.Empty(t, entries)
}

func TestDerive_Idempotent(t *testing.T) {
	created := testNow.Add(-48 * time.Hour)
	bookings := []*domain.Booking{
		testBooking(1, domain.StatusPending, created, created),
		testBooking(2, domain.StatusCancelled, created, testNow.Add(-time.Hour)),
		testBooking(3, domain.StatusRejected, created, testNow.Add(-2*time.Hour)),
	}

	first := Derive(bookings, nil, testNow, DefaultPolicy())
	second := Derive(bookings, nil, testNow, DefaultPolicy())

	assert.Equal(t, first, second)
}

func TestDerive_OrderingNewestFirstThenKey(t *testing.T) {
	created := testNow.Add(-48 * time.Hour)
	sameTime := testNow.Add(-time.Hour)

	bookings := []*domain.Booking{
		testBooking(5, domain.StatusCancelled, created, sameTime),
		testBooking(2, domain.StatusRejected, created, sameTime),
		testBooking(9, domain.StatusPending, testNow.Add(-30*time.Minute), testNow.Add(-30*time.Minute)),
	}

	entries := Derive(bookings, nil, testNow, DefaultPolicy())

	require.Len(t, entries, 3)
	// Самая свежая запись первой
	assert.Equal(t, "booking:9", entries[0].Key)
	// При равных временах порядок детерминирован ключом
	assert.Equal(t, "cancelled:5", entries[1].Key)
	assert.Equal(t, "update:2", entries[2].Key)
}

func TestDerive_ReadSetOnlyAffectsIsRead(t *testing.T) {
	created := testNow.Add(-48 * time.Hour)
	bookings := []*domain.Booking{
		testBooking(1, domain.StatusPending, created, created),
		testBooking(2, domain.StatusPending, created, created),
	}

	unread := Derive(bookings, nil, testNow, DefaultPolicy())
	read := Derive(bookings, map[string]bool{"booking:1": true}, testNow, DefaultPolicy())

	require.Len(t, unread, 2)
	require.Len(t, read, 2)

	// Состав и порядок ленты не зависят от отметок прочтения
	for i := range unread {
		assert.Equal(t, unread[i].Key, read[i].Key)
	}

	for _, e := range read {
		if e.Key == "booking:1" {
			assert.True(t, e.IsRead)
		} else {
			assert.False(t, e.IsRead)
		}
	}
}
