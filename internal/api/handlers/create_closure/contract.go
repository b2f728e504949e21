package create_closure

import (
	"context"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures/models"
)

type ClosureService interface {
	Create(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
