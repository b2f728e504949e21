package availability

import (
	"context"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ScheduleRepository интерфейс репозитория материализованных расписаний
type ScheduleRepository interface {
	GetByBarberAndDate(ctx context.Context, barberID int64, date time.Time) (*domain.ScheduleDay, error)
}

// ClosureRepository интерфейс репозитория правил закрытий
type ClosureRepository interface {
	GetSpecificByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.SpecificClosure, error)
	GetRecurringByBarber(ctx context.Context, barberID int64) ([]*domain.RecurringClosure, error)
	GetRemovedAutoByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.RemovedAutoClosure, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
