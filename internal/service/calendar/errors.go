package calendar

import "errors"

var (
	// ErrConfigNotFound возвращается, когда для даты нет переопределения
	ErrConfigNotFound = errors.New("calendar service: date config not found")

	// ErrDefaultsNotFound возвращается, когда глобальные настройки отсутствуют
	ErrDefaultsNotFound = errors.New("calendar service: defaults not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calendar service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("calendar service: internal error")
)
