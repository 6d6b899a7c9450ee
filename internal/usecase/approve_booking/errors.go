package approve_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("approve_booking: booking not found")

	// ErrIllegalTransition возвращается, когда заявка не в статусе pending
	ErrIllegalTransition = errors.New("approve_booking: illegal status transition")

	// ErrDateClosed возвращается при попытке одобрить заявку на закрытую дату
	ErrDateClosed = errors.New("approve_booking: date is closed")

	// ErrCapacityExceeded возвращается, когда одобрение превысило бы ёмкость даты
	ErrCapacityExceeded = errors.New("approve_booking: capacity exceeded")

	// ErrCapacityUnknown возвращается, когда занятость даты не удалось определить
	// (таймаут, отсутствующий индекс, сбой хранилища). Политика fail-closed:
	// одобрение отклоняется, инвариант ёмкости важнее доступности операции.
	ErrCapacityUnknown = errors.New("approve_booking: capacity unknown")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_booking: internal error")
)

// CapacityExceededError несёт снимок загрузки на момент отказа.
// Current — уже одобренная загрузка даты, Max — действующая ёмкость.
type CapacityExceededError struct {
	Current int
	Max     int
}

// Error реализует error
func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("approve_booking: capacity exceeded (current=%d, max=%d)", e.Current, e.Max)
}

// Is позволяет errors.Is(err, ErrCapacityExceeded)
func (e *CapacityExceededError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
