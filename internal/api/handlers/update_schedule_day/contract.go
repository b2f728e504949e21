package update_schedule_day

import (
	"context"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.ScheduleDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
