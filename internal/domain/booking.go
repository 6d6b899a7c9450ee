package domain

import (
	"time"

	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// BookingStatus represents the status of a trek booking request
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusApproved        BookingStatus = "approved"
	StatusRejected        BookingStatus = "rejected"
	StatusCancelled       BookingStatus = "cancelled"
	StatusChangesRequired BookingStatus = "changes_required"
)

// Booking represents a request to take a group onto the trail on a specific date
type Booking struct {
	ID          int64
	RequesterID int64
	TrekDate    types.DateOnly
	PartySize   int // количество человек (треккеры + портеры), списываемых с лимита даты
	Status      BookingStatus

	Remarks []AdminRemark

	CreatedAt time.Time
	UpdatedAt time.Time
}

// transitions таблица допустимых переходов статусов.
// approved и cancelled терминальны: из approved выход только через
// административный override (см. service/bookings.OverrideStatus).
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:         {StatusApproved, StatusRejected, StatusChangesRequired, StatusCancelled},
	StatusChangesRequired: {StatusChangesRequired, StatusPending, StatusCancelled},
	StatusRejected:        {StatusPending, StatusCancelled},
	StatusApproved:        {},
	StatusCancelled:       {},
}

// CanTransitionTo returns true if the transition from the current status to target is legal
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range transitions[b.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the booking reached a state that normal transitions cannot leave
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusApproved || b.Status == StatusCancelled
}

// RemarksLocked returns true if admin remarks can no longer be edited or deleted
func (b *Booking) RemarksLocked() bool {
	return b.Status == StatusApproved || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the requester may still cancel the booking
func (b *Booking) CanBeCancelled() bool {
	return b.CanTransitionTo(StatusCancelled)
}

// ValidStatus returns true if s is one of the known booking statuses
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusChangesRequired:
		return true
	default:
		return false
	}
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate *types.DateOnly // Начало периода (опционально)
	EndDate   *types.DateOnly // Конец периода (опционально)
	Status    *BookingStatus  // Фильтр по статусу (опционально)
}
