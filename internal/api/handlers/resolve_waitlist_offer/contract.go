package resolve_waitlist_offer

import (
	"context"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist/models"
)

type WaitlistService interface {
	ResolveOffer(ctx context.Context, req *models.ResolveOfferRequest) (*models.ResolveOfferResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
