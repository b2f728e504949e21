package get_availability

import (
	"context"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

type AvailabilityService interface {
	Resolve(ctx context.Context, barberID int64, date time.Time) (*domain.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
