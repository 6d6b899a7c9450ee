package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrRemarkNotFound возвращается, когда замечание не найдено
	ErrRemarkNotFound = errors.New("booking.repository: remark not found")

	// ErrCountUnavailable возвращается, когда подсчёт занятых мест не может быть
	// выполнен (таймаут, отмена запроса, отсутствует таблица или индекс).
	// Admission-проверка обязана отличать "ёмкость неизвестна" от "ёмкость превышена".
	ErrCountUnavailable = errors.New("booking.repository: approved count unavailable")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
