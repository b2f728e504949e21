package create_closure

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures/models"
)

// CreateClosureRequest HTTP request model
type CreateClosureRequest struct {
	Date   string `json:"date"` // "2025-10-15"
	Type   string `json:"type"` // full | morning | afternoon
	Reason string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateClosureRequest) ToServiceRequest(barberID int64, createdBy string) (*models.CreateClosureRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateClosureRequest{
		BarberID:  barberID,
		Date:      date,
		Type:      domain.ClosureType(r.Type),
		Reason:    r.Reason,
		CreatedBy: createdBy,
	}, nil
}
