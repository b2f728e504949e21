package get_availability

import (
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time      string `json:"time"` // "10:00"
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP модель доступности дня
type AvailabilityResponse struct {
	BarberID       int64          `json:"barberId"`
	Date           string         `json:"date"` // "2025-10-15"
	Slots          []SlotResponse `json:"slots"`
	AvailableCount int            `json:"availableCount"`
}

// FromDomainAvailability конвертирует domain модель в HTTP response
func FromDomainAvailability(day *domain.DayAvailability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		BarberID:       day.BarberID,
		Date:           day.Date.Format(domain.DateFormat),
		Slots:          make([]SlotResponse, 0, len(day.Slots)),
		AvailableCount: day.AvailableCount(),
	}

	for _, slot := range day.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			Time:      slot.Time.String(),
			Available: slot.Available,
		})
	}

	return resp
}
