package append_remark

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("append_remark: booking not found")

	// ErrRemarksLocked возвращается при попытке оставить замечание по
	// одобренной или отменённой заявке
	ErrRemarksLocked = errors.New("append_remark: remarks are locked for booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("append_remark: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("append_remark: internal error")
)
