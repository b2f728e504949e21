package cancel_booking

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	cancelBooking "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID               int64  `json:"id"`
	BarberID         int64  `json:"barberId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	Status           string `json:"status"`
	CancelledAt      string `json:"cancelledAt"`
	WaitlistNotified int    `json:"waitlistNotified"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:               resp.ID,
		BarberID:         resp.BarberID,
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		Status:           resp.Status,
		CancelledAt:      resp.CancelledAt.Format(time.RFC3339),
		WaitlistNotified: resp.WaitlistNotified,
	}
}
