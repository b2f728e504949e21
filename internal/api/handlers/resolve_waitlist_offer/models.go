package resolve_waitlist_offer

import (
	waitlistModels "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist/models"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// ResolveOfferRequest HTTP request model
type ResolveOfferRequest struct {
	Approve bool    `json:"approve"`
	Token   *string `json:"token,omitempty"`
	Time    *string `json:"time,omitempty"` // "10:00", для записей без зафиксированного предложения
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ResolveOfferRequest) ToServiceRequest(entryID int64) (*waitlistModels.ResolveOfferRequest, error) {
	req := &waitlistModels.ResolveOfferRequest{
		EntryID: entryID,
		Approve: r.Approve,
		Token:   r.Token,
	}

	if r.Time != nil {
		slotTime, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, err
		}
		req.Time = &slotTime
	}

	return req, nil
}
