package barber

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/dbmetrics"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/psqlbuilder"
)

// Repository репозиторий для работы с барберами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория барберов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает барбера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"active",
		"weekly_pattern",
		"created_at",
		"updated_at",
	).
		From("barbers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBarber(executor.QueryRowContext(ctx, query, args...))
}

// GetActive получает всех активных барберов, упорядоченных по ID
// Используется материализатором расписаний
func (r *Repository) GetActive(ctx context.Context) ([]*domain.Barber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"active",
		"weekly_pattern",
		"created_at",
		"updated_at",
	).
		From("barbers").
		Where(squirrel.Eq{"active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	barbers := make([]*domain.Barber, 0)
	for rows.Next() {
		var barber domain.Barber
		var patternJSON []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&barber.ID,
			&barber.Name,
			&barber.Email,
			&barber.Active,
			&patternJSON,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActive - scan row: %v", ErrScanRow, err)
		}

		if err := json.Unmarshal(patternJSON, &barber.Pattern); err != nil {
			return nil, fmt.Errorf("%w: GetActive - barber id=%d: %v", ErrInvalidPattern, barber.ID, err)
		}

		barber.CreatedAt = createdAt.Time
		barber.UpdatedAt = updatedAt.Time
		barbers = append(barbers, &barber)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActive - rows error: %v", ErrScanRow, err)
	}

	return barbers, nil
}

// UpdatePattern обновляет недельный паттерн барбера
func (r *Repository) UpdatePattern(ctx context.Context, id int64, pattern domain.WeeklyPattern) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	patternJSON, err := json.Marshal(pattern)
	if err != nil {
		return fmt.Errorf("%w: UpdatePattern - marshal pattern: %v", ErrInvalidPattern, err)
	}

	query, args, err := psqlbuilder.Update("barbers").
		Set("weekly_pattern", patternJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePattern - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePattern - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePattern - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBarberNotFound
	}

	return nil
}

// scanBarber сканирует одну строку результата в domain.Barber
func (r *Repository) scanBarber(row *sql.Row) (*domain.Barber, error) {
	var barber domain.Barber
	var patternJSON []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&barber.ID,
		&barber.Name,
		&barber.Email,
		&barber.Active,
		&patternJSON,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBarberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBarber - scan barber: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(patternJSON, &barber.Pattern); err != nil {
		return nil, fmt.Errorf("%w: scanBarber - barber id=%d: %v", ErrInvalidPattern, barber.ID, err)
	}

	barber.CreatedAt = createdAt.Time
	barber.UpdatedAt = updatedAt.Time

	return &barber, nil
}
