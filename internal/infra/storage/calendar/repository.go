package calendar

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/dbmetrics"
	"github.com/m04kA/Trek-AdmissionService/pkg/psqlbuilder"
	"github.com/m04kA/Trek-AdmissionService/pkg/types"
)

// Repository репозиторий переопределений ёмкости по датам.
// Ключ — каноническая дата YYYY-MM-DD (тип DATE в PostgreSQL).
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает переопределение для даты
func (r *Repository) GetByDate(ctx context.Context, date types.DateOnly) (*domain.CalendarDateConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"date",
		"max_slots",
		"is_closed",
		"note",
		"reason",
		"created_at",
		"updated_at",
	).
		From("calendar_date_config").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.CalendarDateConfig
	var maxSlots sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.Date,
		&maxSlots,
		&config.IsClosed,
		&config.Note,
		&config.Reason,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan config: %v", ErrScanRow, err)
	}

	if maxSlots.Valid {
		v := int(maxSlots.Int64)
		config.MaxSlots = &v
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// ListRange получает все переопределения в периоде, ключом по дате
func (r *Repository) ListRange(ctx context.Context, from, to types.DateOnly) (map[types.DateOnly]*domain.CalendarDateConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"date",
		"max_slots",
		"is_closed",
		"note",
		"reason",
		"created_at",
		"updated_at",
	).
		From("calendar_date_config").
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make(map[types.DateOnly]*domain.CalendarDateConfig)
	for rows.Next() {
		var config domain.CalendarDateConfig
		var maxSlots sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&config.Date,
			&maxSlots,
			&config.IsClosed,
			&config.Note,
			&config.Reason,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRange - scan row: %v", ErrScanRow, err)
		}

		if maxSlots.Valid {
			v := int(maxSlots.Int64)
			config.MaxSlots = &v
		}
		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time

		configs[config.Date] = &config
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRange - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Upsert создает или обновляет переопределение для даты
func (r *Repository) Upsert(ctx context.Context, config *domain.CalendarDateConfig) (*domain.CalendarDateConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_date_config").
		Columns(
			"date",
			"max_slots",
			"is_closed",
			"note",
			"reason",
		).
		Values(
			config.Date,
			config.MaxSlots,
			config.IsClosed,
			config.Note,
			config.Reason,
		).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
			max_slots = EXCLUDED.max_slots,
			is_closed = EXCLUDED.is_closed,
			note = EXCLUDED.note,
			reason = EXCLUDED.reason,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет переопределение даты; дата возвращается к глобальному дефолту
func (r *Repository) Delete(ctx context.Context, date types.DateOnly) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_date_config").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
