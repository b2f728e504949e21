package remove_closure

import (
	"context"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures/models"
)

type ClosureService interface {
	Remove(ctx context.Context, req *models.RemoveClosureRequest) (*models.RemoveClosureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
