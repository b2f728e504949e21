package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/dbmetrics"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/psqlbuilder"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Repository репозиторий для работы с материализованными расписаниями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateIfAbsent вставляет строку расписания, только если её ещё нет
// Существующая строка никогда не перезаписывается - ручные правки сохраняются
// Возвращает true, если строка была создана
func (r *Repository) CreateIfAbsent(ctx context.Context, day *domain.ScheduleDay) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_days").
		Columns(
			"barber_id",
			"date",
			"available_slots",
			"unavailable_slots",
			"day_off",
			"is_exception",
		).
		Values(
			day.BarberID,
			day.Date,
			pq.Array(slotsToStrings(day.AvailableSlots)),
			pq.Array(slotsToStrings(day.UnavailableSlots)),
			day.DayOff,
			day.IsException,
		).
		Suffix("ON CONFLICT (barber_id, date) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// GetByBarberAndDate получает расписание барбера на дату
func (r *Repository) GetByBarberAndDate(ctx context.Context, barberID int64, date time.Time) (*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"barber_id",
		"date",
		"available_slots",
		"unavailable_slots",
		"day_off",
		"is_exception",
		"created_at",
		"updated_at",
	).
		From("schedule_days").
		Where(squirrel.Eq{"barber_id": barberID, "date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.ScheduleDay
	var available, unavailable []string
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&day.BarberID,
		&day.Date,
		pq.Array(&available),
		pq.Array(&unavailable),
		&day.DayOff,
		&day.IsException,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBarberAndDate - scan schedule day: %v", ErrScanRow, err)
	}

	day.AvailableSlots = stringsToSlots(available)
	day.UnavailableSlots = stringsToSlots(unavailable)
	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}

// UpdateSlots обновляет наборы слотов и флаги существующей строки расписания
// Используется при ручном редактировании дня администратором/барбером
func (r *Repository) UpdateSlots(ctx context.Context, day *domain.ScheduleDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_days").
		Set("available_slots", pq.Array(slotsToStrings(day.AvailableSlots))).
		Set("unavailable_slots", pq.Array(slotsToStrings(day.UnavailableSlots))).
		Set("day_off", day.DayOff).
		Set("is_exception", day.IsException).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"barber_id": day.BarberID, "date": day.Date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlots - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleDayNotFound
	}

	return nil
}

// MarkException помечает день как исключительное открытие
func (r *Repository) MarkException(ctx context.Context, barberID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_days").
		Set("is_exception", true).
		Set("day_off", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"barber_id": barberID, "date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkException - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkException - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkException - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleDayNotFound
	}

	return nil
}

// slotsToStrings конвертирует слоты в строки для pq.Array
func slotsToStrings(slots []types.TimeString) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = string(s)
	}
	return result
}

// stringsToSlots конвертирует строки из pq.Array в слоты
func stringsToSlots(values []string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = types.TimeString(v)
	}
	return result
}
