package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/dbmetrics"
	"github.com/m04kA/Trek-AdmissionService/pkg/psqlbuilder"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// Коды ошибок PostgreSQL, при которых подсчёт занятых мест считается
// невыполнимым, а не просто неудавшимся (отсутствие таблицы/колонки,
// отменённый по таймауту запрос). Выборка по (status, trek_date) требует
// составного индекса idx_bookings_status_trek_date (см. migrations).
const (
	pqQueryCanceled   = "57014"
	pqUndefinedTable  = "42P01"
	pqUndefinedColumn = "42703"
)

// Repository репозиторий для работы с бронированиями и замечаниями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"requester_id",
			"trek_date",
			"party_size",
			"status",
		).
		Values(
			booking.RequesterID,
			booking.TrekDate,
			booking.PartySize,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID с блокировкой строки (FOR UPDATE).
// Используется admission-проверкой внутри транзакции одобрения.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"requester_id",
		"trek_date",
		"party_size",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Блокировка имеет смысл только внутри транзакции
	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.RequesterID,
		&booking.TrekDate,
		&booking.PartySize,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// ListWithFilter получает бронирования с фильтрацией по периоду и статусу.
// Совместная фильтрация status + trek_date обслуживается составным индексом
// idx_bookings_status_trek_date.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"requester_id",
		"trek_date",
		"party_size",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings")

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"trek_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"trek_date": *filter.EndDate})
	}

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("trek_date DESC, id DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// SumApprovedPartySize суммирует party_size одобренных бронирований на дату.
// excludeID исключает одно бронирование из суммы — нужно при переоценке уже
// одобренного бронирования (например, при изменении размера группы).
// Ёмкость расходуется на человека, а не на заявку, поэтому суммируем
// party_size, а не количество строк.
func (r *Repository) SumApprovedPartySize(ctx context.Context, date types.DateOnly, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COALESCE(SUM(party_size), 0)").
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusApproved}).
		Where(squirrel.Eq{"trek_date": date})

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumApprovedPartySize - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&total)
	if err != nil {
		if isCountUnavailable(err) {
			return 0, fmt.Errorf("%w: SumApprovedPartySize - %v", ErrCountUnavailable, err)
		}
		return 0, fmt.Errorf("%w: SumApprovedPartySize - execute query: %v", ErrExecQuery, err)
	}

	return total, nil
}

// ApprovedLoadByDate возвращает суммарный одобренный party_size по каждой дате
// периода. Используется сверочным сканированием overbooked-дат.
func (r *Repository) ApprovedLoadByDate(ctx context.Context, from, to types.DateOnly) (map[types.DateOnly]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("trek_date", "SUM(party_size)").
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusApproved}).
		Where(squirrel.GtOrEq{"trek_date": from}).
		Where(squirrel.LtOrEq{"trek_date": to}).
		GroupBy("trek_date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ApprovedLoadByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ApprovedLoadByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	load := make(map[types.DateOnly]int)
	for rows.Next() {
		var date types.DateOnly
		var total int
		if err := rows.Scan(&date, &total); err != nil {
			return nil, fmt.Errorf("%w: ApprovedLoadByDate - scan row: %v", ErrScanRow, err)
		}
		load[date] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ApprovedLoadByDate - rows error: %v", ErrScanRow, err)
	}

	return load, nil
}

// UpdateStatus обновляет статус бронирования и updated_at
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AppendRemark добавляет замечание администратора к бронированию
func (r *Repository) AppendRemark(ctx context.Context, remark *domain.AdminRemark) (*domain.AdminRemark, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_remarks").
		Columns(
			"booking_id",
			"author",
			"text",
			"edited",
		).
		Values(
			remark.BookingID,
			remark.Author,
			remark.Text,
			remark.Edited,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AppendRemark - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&remark.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: AppendRemark - execute insert: %v", ErrExecQuery, err)
	}

	remark.CreatedAt = createdAt.Time
	remark.UpdatedAt = updatedAt.Time

	return remark, nil
}

// ListRemarks получает замечания бронирования в порядке добавления
func (r *Repository) ListRemarks(ctx context.Context, bookingID int64) ([]domain.AdminRemark, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"author",
		"text",
		"edited",
		"created_at",
		"updated_at",
	).
		From("booking_remarks").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRemarks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRemarks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	remarks := make([]domain.AdminRemark, 0)
	for rows.Next() {
		var remark domain.AdminRemark
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&remark.ID,
			&remark.BookingID,
			&remark.Author,
			&remark.Text,
			&remark.Edited,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRemarks - scan row: %v", ErrScanRow, err)
		}

		remark.CreatedAt = createdAt.Time
		remark.UpdatedAt = updatedAt.Time
		remarks = append(remarks, remark)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRemarks - rows error: %v", ErrScanRow, err)
	}

	return remarks, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.RequesterID,
			&booking.TrekDate,
			&booking.PartySize,
			&booking.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// isCountUnavailable отличает "подсчёт невозможен" от обычной ошибки запроса
func isCountUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqQueryCanceled, pqUndefinedTable, pqUndefinedColumn:
			return true
		}
	}

	return false
}
