package join_waitlist

import (
	"context"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist/models"
)

type WaitlistService interface {
	Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
