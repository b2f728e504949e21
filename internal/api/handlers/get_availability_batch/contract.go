package get_availability_batch

import (
	"context"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability/models"
)

type AvailabilityService interface {
	ResolveBatch(ctx context.Context, barberID int64, dates []time.Time) (*models.BatchResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
