package update_barber_pattern

import (
	"context"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdatePattern(ctx context.Context, req *models.UpdatePatternRequest) (*models.PatternResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
