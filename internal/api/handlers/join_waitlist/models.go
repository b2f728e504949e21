package join_waitlist

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	waitlistModels "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist/models"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	BarberID      int64   `json:"barberId"`
	Date          string  `json:"date"` // "2025-10-15"
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *JoinWaitlistRequest) ToServiceRequest(userID int64) (*waitlistModels.JoinRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &waitlistModels.JoinRequest{
		BarberID:      r.BarberID,
		Date:          date,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		UserID:        &userID,
	}, nil
}
