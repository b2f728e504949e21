package models

import (
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// DaySummary сводка доступности барбера на одну дату пакетного запроса
type DaySummary struct {
	Date           string                    `json:"date"` // "2025-10-15"
	HasSlots       bool                      `json:"hasSlots"`
	AvailableCount int                       `json:"availableCount"`
	Slots          []domain.SlotAvailability `json:"slots"`
}

// BatchResult результат пакетного разрешения доступности
// Ключ карты - дата в формате YYYY-MM-DD
type BatchResult struct {
	BarberID int64                 `json:"barberId"`
	Days     map[string]DaySummary `json:"days"`
}

// FromDayAvailability конвертирует результат резолвера в сводку дня
func FromDayAvailability(day *domain.DayAvailability) DaySummary {
	return DaySummary{
		Date:           day.Date.Format(domain.DateFormat),
		HasSlots:       day.HasSlots(),
		AvailableCount: day.AvailableCount(),
		Slots:          day.Slots,
	}
}
