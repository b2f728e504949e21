package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/dbmetrics"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/psqlbuilder"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Repository репозиторий для работы с листом ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в хвост очереди (барбер, дата)
// Позиция вычисляется атомарно на стороне БД
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"barber_id",
			"date",
			"customer_name",
			"customer_phone",
			"customer_email",
			"user_id",
			"position",
			"status",
		).
		Values(
			entry.BarberID,
			entry.Date,
			entry.CustomerName,
			entry.CustomerPhone,
			entry.CustomerEmail,
			entry.UserID,
			squirrel.Expr(
				"(SELECT COALESCE(MAX(position), 0) + 1 FROM waitlist_entries WHERE barber_id = ? AND date = ? AND status = ?)",
				entry.BarberID, entry.Date, domain.WaitlistWaiting,
			),
			domain.WaitlistWaiting,
		).
		Suffix("RETURNING id, position, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&entry.Position,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.Status = domain.WaitlistWaiting
	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectEntries().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEntryNotFound
	}

	return entries[0], nil
}

// GetWaitingByBarberAndDate получает очередь ожидания в FIFO порядке (по позиции)
func (r *Repository) GetWaitingByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectEntries().
		Where(squirrel.Eq{"barber_id": barberID, "date": date, "status": domain.WaitlistWaiting}).
		OrderBy("position ASC, created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitingByBarberAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitingByBarberAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// GetExpiredOffers получает записи с истекшими предложениями (для sweep задачи)
func (r *Repository) GetExpiredOffers(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectEntries().
		Where(squirrel.Eq{"status": domain.WaitlistOffered}).
		Where(squirrel.LtOrEq{"offer_expires_at": now}).
		OrderBy("offer_expires_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredOffers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetExpiredOffers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
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
		return ErrEntryNotFound
	}

	return nil
}

// SetOffer переводит запись в статус offered с токеном, временем слота и сроком действия
func (r *Repository) SetOffer(ctx context.Context, id int64, token string, offerTime types.TimeString, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistOffered).
		Set("offer_token", token).
		Set("offer_time", offerTime).
		Set("offer_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetOffer - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetOffer - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetOffer - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// compactPositionsSQL пересчитывает позиции ожидающих записей очереди без зазоров
// Оконные функции в UPDATE не выражаются через squirrel, поэтому запрос сырой
const compactPositionsSQL = `
UPDATE waitlist_entries AS w
SET position = ranked.new_position,
    updated_at = NOW()
FROM (
    SELECT id, ROW_NUMBER() OVER (ORDER BY position ASC, created_at ASC) AS new_position
    FROM waitlist_entries
    WHERE barber_id = $1 AND date = $2 AND status = $3
) AS ranked
WHERE w.id = ranked.id AND w.position <> ranked.new_position`

// CompactPositions уплотняет позиции очереди после выхода записи из waiting
func (r *Repository) CompactPositions(ctx context.Context, barberID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, compactPositionsSQL, barberID, date, domain.WaitlistWaiting); err != nil {
		return fmt.Errorf("%w: CompactPositions - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// selectEntries базовый SELECT со всеми колонками записи листа ожидания
func (r *Repository) selectEntries() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"barber_id",
		"date",
		"customer_name",
		"customer_phone",
		"customer_email",
		"user_id",
		"position",
		"status",
		"offer_token",
		"offer_time",
		"offer_expires_at",
		"created_at",
		"updated_at",
	).From("waitlist_entries")
}

// scanEntries сканирует результаты запроса в слайс записей
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)

	for rows.Next() {
		var entry domain.WaitlistEntry
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BarberID,
			&entry.Date,
			&entry.CustomerName,
			&entry.CustomerPhone,
			&entry.CustomerEmail,
			&entry.UserID,
			&entry.Position,
			&entry.Status,
			&entry.OfferToken,
			&entry.OfferTime,
			&entry.OfferExpiresAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		entry.CreatedAt = createdAt.Time
		entry.UpdatedAt = updatedAt.Time

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
