package waitlist

import (
	"context"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)
	GetWaitingByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.WaitlistEntry, error)
	GetExpiredOffers(ctx context.Context, now time.Time) ([]*domain.WaitlistEntry, error)
	UpdateStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error
	SetOffer(ctx context.Context, id int64, token string, offerTime types.TimeString, expiresAt time.Time) error
	CompactPositions(ctx context.Context, barberID int64, date time.Time) error
}

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// BookingRepository интерфейс репозитория бронирований
// Create опирается на частичный уникальный индекс как на страж конфликтов
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityResolver интерфейс резолвера доступности слотов
type AvailabilityResolver interface {
	Resolve(ctx context.Context, barberID int64, date time.Time) (*domain.DayAvailability, error)
}

// Notifier интерфейс внешнего диспетчера уведомлений
// Ошибки доставки не должны прерывать бизнес-операции
type Notifier interface {
	NotifySlotFreed(ctx context.Context, entry *domain.WaitlistEntry, slot types.TimeString) error
	NotifyOffer(ctx context.Context, entry *domain.WaitlistEntry, slot types.TimeString, token string, expiresAt time.Time) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
