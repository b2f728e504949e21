package closure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/dbmetrics"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/psqlbuilder"
)

// uniqueViolationCode код ошибки PostgreSQL при нарушении уникального ограничения
const uniqueViolationCode = "23505"

// Repository репозиторий для работы с правилами закрытий:
// еженедельными закрытиями, закрытиями на дату и журналом удаленных автозакрытий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ---------- SpecificClosure ----------

// CreateSpecific создает закрытие на конкретную дату
// Дубликат по (barber_id, date, closure_type) возвращает ErrClosureExists
func (r *Repository) CreateSpecific(ctx context.Context, closure *domain.SpecificClosure) (*domain.SpecificClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specific_closures").
		Columns(
			"barber_id",
			"date",
			"closure_type",
			"reason",
			"created_by",
		).
		Values(
			closure.BarberID,
			closure.Date,
			closure.Type,
			closure.Reason,
			closure.CreatedBy,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecific - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&closure.ID,
		&createdAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrClosureExists
		}
		return nil, fmt.Errorf("%w: CreateSpecific - execute insert: %v", ErrExecQuery, err)
	}

	closure.CreatedAt = createdAt.Time
	return closure, nil
}

// CreateSpecificIfAbsent вставляет закрытие, только если его ещё нет
// Используется материализатором: идемпотентная вставка автозакрытий
// Возвращает true, если строка была создана
func (r *Repository) CreateSpecificIfAbsent(ctx context.Context, closure *domain.SpecificClosure) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specific_closures").
		Columns(
			"barber_id",
			"date",
			"closure_type",
			"reason",
			"created_by",
		).
		Values(
			closure.BarberID,
			closure.Date,
			closure.Type,
			closure.Reason,
			closure.CreatedBy,
		).
		Suffix("ON CONFLICT (barber_id, date, closure_type) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CreateSpecificIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateSpecificIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateSpecificIfAbsent - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// GetSpecificByBarberAndDate получает все закрытия барбера на дату
func (r *Repository) GetSpecificByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.SpecificClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"date",
		"closure_type",
		"reason",
		"created_by",
		"created_at",
	).
		From("specific_closures").
		Where(squirrel.Eq{"barber_id": barberID, "date": date}).
		OrderBy("closure_type ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecificByBarberAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecificByBarberAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]*domain.SpecificClosure, 0)
	for rows.Next() {
		var closure domain.SpecificClosure
		var createdAt sql.NullTime

		err := rows.Scan(
			&closure.ID,
			&closure.BarberID,
			&closure.Date,
			&closure.Type,
			&closure.Reason,
			&closure.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSpecificByBarberAndDate - scan row: %v", ErrScanRow, err)
		}

		closure.CreatedAt = createdAt.Time
		closures = append(closures, &closure)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSpecificByBarberAndDate - rows error: %v", ErrScanRow, err)
	}

	return closures, nil
}

// GetSpecific получает закрытие по тройке (барбер, дата, тип)
func (r *Repository) GetSpecific(ctx context.Context, barberID int64, date time.Time, closureType domain.ClosureType) (*domain.SpecificClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"date",
		"closure_type",
		"reason",
		"created_by",
		"created_at",
	).
		From("specific_closures").
		Where(squirrel.Eq{"barber_id": barberID, "date": date, "closure_type": closureType}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecific - build select query: %v", ErrBuildQuery, err)
	}

	var closure domain.SpecificClosure
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&closure.ID,
		&closure.BarberID,
		&closure.Date,
		&closure.Type,
		&closure.Reason,
		&closure.CreatedBy,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClosureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecific - scan closure: %v", ErrScanRow, err)
	}

	closure.CreatedAt = createdAt.Time
	return &closure, nil
}

// DeleteSpecific удаляет закрытие на дату
// Запись в журнал removed_auto_closures - ответственность сервисного слоя,
// выполняется в одной транзакции с удалением
func (r *Repository) DeleteSpecific(ctx context.Context, barberID int64, date time.Time, closureType domain.ClosureType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("specific_closures").
		Where(squirrel.Eq{"barber_id": barberID, "date": date, "closure_type": closureType}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSpecific - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSpecific - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSpecific - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClosureNotFound
	}

	return nil
}

// ---------- RecurringClosure ----------

// GetRecurringByBarber получает еженедельные закрытия барбера
func (r *Repository) GetRecurringByBarber(ctx context.Context, barberID int64) ([]*domain.RecurringClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"weekdays",
		"created_at",
		"updated_at",
	).
		From("recurring_closures").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByBarber - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]*domain.RecurringClosure, 0)
	for rows.Next() {
		var closure domain.RecurringClosure
		var weekdays []int64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&closure.ID,
			&closure.BarberID,
			pq.Array(&weekdays),
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRecurringByBarber - scan row: %v", ErrScanRow, err)
		}

		closure.Weekdays = make([]time.Weekday, len(weekdays))
		for i, wd := range weekdays {
			closure.Weekdays[i] = time.Weekday(wd)
		}
		closure.CreatedAt = createdAt.Time
		closure.UpdatedAt = updatedAt.Time

		closures = append(closures, &closure)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRecurringByBarber - rows error: %v", ErrScanRow, err)
	}

	return closures, nil
}

// ---------- RemovedAutoClosure (ledger) ----------

// CreateRemovedAuto добавляет запись журнала об удалении автозакрытия
// Повторное добавление той же тройки идемпотентно
func (r *Repository) CreateRemovedAuto(ctx context.Context, entry *domain.RemovedAutoClosure) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("removed_auto_closures").
		Columns(
			"barber_id",
			"date",
			"closure_type",
		).
		Values(
			entry.BarberID,
			entry.Date,
			entry.Type,
		).
		Suffix("ON CONFLICT (barber_id, date, closure_type) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CreateRemovedAuto - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateRemovedAuto - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetRemovedAutoByBarberAndDate получает записи журнала удалений на дату
func (r *Repository) GetRemovedAutoByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.RemovedAutoClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"date",
		"closure_type",
		"created_at",
	).
		From("removed_auto_closures").
		Where(squirrel.Eq{"barber_id": barberID, "date": date}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRemovedAutoByBarberAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRemovedAutoByBarberAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.RemovedAutoClosure, 0)
	for rows.Next() {
		var entry domain.RemovedAutoClosure
		var createdAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BarberID,
			&entry.Date,
			&entry.Type,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRemovedAutoByBarberAndDate - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRemovedAutoByBarberAndDate - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// HasRemovedAuto проверяет наличие записи журнала для тройки (барбер, дата, тип)
func (r *Repository) HasRemovedAuto(ctx context.Context, barberID int64, date time.Time, closureType domain.ClosureType) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("removed_auto_closures").
		Where(squirrel.Eq{"barber_id": barberID, "date": date, "closure_type": closureType}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasRemovedAuto - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasRemovedAuto - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
