package materialize_schedules

import (
	"context"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetActive(ctx context.Context) ([]*domain.Barber, error)
}

// ScheduleRepository интерфейс репозитория материализованных расписаний
type ScheduleRepository interface {
	CreateIfAbsent(ctx context.Context, day *domain.ScheduleDay) (bool, error)
	GetByBarberAndDate(ctx context.Context, barberID int64, date time.Time) (*domain.ScheduleDay, error)
}

// ClosureRepository интерфейс репозитория правил закрытий
type ClosureRepository interface {
	CreateSpecificIfAbsent(ctx context.Context, closure *domain.SpecificClosure) (bool, error)
	HasRemovedAuto(ctx context.Context, barberID int64, date time.Time, closureType domain.ClosureType) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
