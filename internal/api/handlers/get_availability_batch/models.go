package get_availability_batch

import (
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability/models"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Time      string `json:"time"` // "10:00"
	Available bool   `json:"available"`
}

// DaySummaryResponse HTTP модель сводки одного дня
type DaySummaryResponse struct {
	Date           string         `json:"date"` // "2025-10-15"
	HasSlots       bool           `json:"hasSlots"`
	AvailableCount int            `json:"availableCount"`
	Slots          []SlotResponse `json:"slots"`
}

// BatchResponse HTTP модель пакетной сводки доступности
type BatchResponse struct {
	BarberID int64                         `json:"barberId"`
	Days     map[string]DaySummaryResponse `json:"days"`
}

// FromBatchResult конвертирует результат сервиса в HTTP response
func FromBatchResult(result *models.BatchResult) *BatchResponse {
	resp := &BatchResponse{
		BarberID: result.BarberID,
		Days:     make(map[string]DaySummaryResponse, len(result.Days)),
	}

	for date, day := range result.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{
				Time:      slot.Time.String(),
				Available: slot.Available,
			})
		}
		resp.Days[date] = DaySummaryResponse{
			Date:           day.Date,
			HasSlots:       day.HasSlots,
			AvailableCount: day.AvailableCount,
			Slots:          slots,
		}
	}

	return resp
}
