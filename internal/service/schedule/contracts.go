package schedule

import (
	"context"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// BarberRepository интерфейс репозитория барберов
type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	UpdatePattern(ctx context.Context, id int64, pattern domain.WeeklyPattern) error
}

// ScheduleRepository интерфейс репозитория материализованных расписаний
type ScheduleRepository interface {
	GetByBarberAndDate(ctx context.Context, barberID int64, date time.Time) (*domain.ScheduleDay, error)
	UpdateSlots(ctx context.Context, day *domain.ScheduleDay) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
