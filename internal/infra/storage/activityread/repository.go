package activityread

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Trek-AdmissionService/pkg/dbmetrics"
	"github.com/m04kA/Trek-AdmissionService/pkg/psqlbuilder"
)

// Repository хранилище отметок "прочитано" ленты активности.
// Отметки принадлежат конкретному администратору и не влияют на то,
// какие записи порождает деривация — только на флаг IsRead.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отметок прочтения
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// MarkRead отмечает запись ленты прочитанной. Повторная отметка не ошибка.
func (r *Repository) MarkRead(ctx context.Context, adminID string, key string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activity_reads").
		Columns("admin_id", "entry_key").
		Values(adminID, key).
		Suffix("ON CONFLICT (admin_id, entry_key) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRead - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkRead - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Keys возвращает множество прочитанных ключей администратора
func (r *Repository) Keys(ctx context.Context, adminID string) (map[string]bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("entry_key").
		From("activity_reads").
		Where(squirrel.Eq{"admin_id": adminID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Keys - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Keys - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	keys := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("%w: Keys - scan row: %v", ErrScanRow, err)
		}
		keys[key] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Keys - rows error: %v", ErrScanRow, err)
	}

	return keys, nil
}

// DeleteOlderThan удаляет отметки старше cutoff. Записи ленты живут не дольше
// окна свежести, поэтому старые отметки никогда больше не понадобятся.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("activity_reads").
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
