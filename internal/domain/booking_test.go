package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to changes_required", StatusPending, StatusChangesRequired, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to pending", StatusPending, StatusPending, false},

		{"changes_required to changes_required is idempotent", StatusChangesRequired, StatusChangesRequired, true},
		{"changes_required to pending", StatusChangesRequired, StatusPending, true},
		{"changes_required to cancelled", StatusChangesRequired, StatusCancelled, true},
		{"changes_required to approved is forbidden", StatusChangesRequired, StatusApproved, false},
		{"changes_required to rejected is forbidden", StatusChangesRequired, StatusRejected, false},

		{"rejected to pending", StatusRejected, StatusPending, true},
		{"rejected to cancelled", StatusRejected, StatusCancelled, true},
		{"rejected to approved is forbidden", StatusRejected, StatusApproved, false},

		{"approved is terminal for approve", StatusApproved, StatusApproved, false},
		{"approved to rejected needs override", StatusApproved, StatusRejected, false},
		{"approved to cancelled needs override", StatusApproved, StatusCancelled, false},
		{"approved to pending needs override", StatusApproved, StatusPending, false},

		{"cancelled to pending is forbidden", StatusCancelled, StatusPending, false},
		{"cancelled to approved is forbidden", StatusCancelled, StatusApproved, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusApproved}).IsTerminal())
	assert.True(t, (&Booking{Status: StatusCancelled}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusPending}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusRejected}).IsTerminal())
	assert.False(t, (&Booking{Status: StatusChangesRequired}).IsTerminal())
}

func TestRemarksLocked(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusApproved}).RemarksLocked())
	assert.True(t, (&Booking{Status: StatusCancelled}).RemarksLocked())
	assert.False(t, (&Booking{Status: StatusPending}).RemarksLocked())
	assert.False(t, (&Booking{Status: StatusChangesRequired}).RemarksLocked())
	assert.False(t, (&Booking{Status: StatusRejected}).RemarksLocked())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusChangesRequired} {
		assert.True(t, ValidStatus(s), "status %s", s)
	}
	assert.False(t, ValidStatus(BookingStatus("confirmed")))
	assert.False(t, ValidStatus(BookingStatus("")))
}

func TestActivityKey(t *testing.T) {
	assert.Equal(t, "booking:42", ActivityKey(ActivityNewRequest, 42))
	assert.Equal(t, "cancelled:42", ActivityKey(ActivityCancelled, 42))
	assert.Equal(t, "update:42", ActivityKey(ActivityUpdated, 42))

	// Ключ детерминирован: повторный вызов дает тот же результат
	assert.Equal(t, ActivityKey(ActivityNewRequest, 7), ActivityKey(ActivityNewRequest, 7))
}

func TestEffectiveCapacityRemaining(t *testing.T) {
	ec := EffectiveCapacity{Capacity: 30}
	assert.Equal(t, 30, ec.Remaining(0))
	assert.Equal(t, 1, ec.Remaining(29))
	assert.Equal(t, 0, ec.Remaining(30))

	// Перебронированная дата не уходит в отрицательный остаток
	assert.Equal(t, 0, ec.Remaining(35))

	closed := EffectiveCapacity{Capacity: 0, IsClosed: true}
	assert.Equal(t, 0, closed.Remaining(0))
}
