package defaults

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Trek-AdmissionService/internal/domain"
	"github.com/m04kA/Trek-AdmissionService/pkg/dbmetrics"
	"github.com/m04kA/Trek-AdmissionService/pkg/psqlbuilder"
)

// singletonID глобальные настройки хранятся единственной строкой
const singletonID = 1

// Repository репозиторий глобальных настроек ёмкости календаря
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает глобальные настройки
func (r *Repository) Get(ctx context.Context) (*domain.CalendarDefaults, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"default_max_slots",
		"critical_threshold",
		"updated_at",
	).
		From("calendar_defaults").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var defaults domain.CalendarDefaults
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&defaults.DefaultMaxSlots,
		&defaults.CriticalThreshold,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDefaultsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan defaults: %v", ErrScanRow, err)
	}

	defaults.UpdatedAt = updatedAt.Time

	return &defaults, nil
}

// Update частично обновляет глобальные настройки
func (r *Repository) Update(ctx context.Context, defaultMaxSlots *int, criticalThreshold *int) (*domain.CalendarDefaults, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("calendar_defaults").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": singletonID})

	if defaultMaxSlots != nil {
		updateBuilder = updateBuilder.Set("default_max_slots", *defaultMaxSlots)
	}
	if criticalThreshold != nil {
		updateBuilder = updateBuilder.Set("critical_threshold", *criticalThreshold)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING default_max_slots, critical_threshold, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var defaults domain.CalendarDefaults
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&defaults.DefaultMaxSlots,
		&defaults.CriticalThreshold,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrDefaultsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	defaults.UpdatedAt = updatedAt.Time

	return &defaults, nil
}
