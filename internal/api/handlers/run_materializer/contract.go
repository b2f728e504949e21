package run_materializer

import (
	"context"

	materializeSchedules "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/materialize_schedules"
)

type MaterializeSchedulesUseCase interface {
	Execute(ctx context.Context, req *materializeSchedules.Request) (*materializeSchedules.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
