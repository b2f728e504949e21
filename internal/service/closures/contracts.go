package closures

import (
	"context"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
}

// ClosureRepository интерфейс репозитория правил закрытий
type ClosureRepository interface {
	CreateSpecific(ctx context.Context, closure *domain.SpecificClosure) (*domain.SpecificClosure, error)
	GetSpecificByBarberAndDate(ctx context.Context, barberID int64, date time.Time) ([]*domain.SpecificClosure, error)
	GetSpecific(ctx context.Context, barberID int64, date time.Time, closureType domain.ClosureType) (*domain.SpecificClosure, error)
	DeleteSpecific(ctx context.Context, barberID int64, date time.Time, closureType domain.ClosureType) error
	GetRecurringByBarber(ctx context.Context, barberID int64) ([]*domain.RecurringClosure, error)
	CreateRemovedAuto(ctx context.Context, entry *domain.RemovedAutoClosure) error
}

// ScheduleRepository интерфейс репозитория материализованных расписаний
type ScheduleRepository interface {
	MarkException(ctx context.Context, barberID int64, date time.Time) error
}

// TxManager интерфейс менеджера транзакций
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
