package models

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Request модели

// UpdateDayRequest запрос на ручное редактирование материализованного дня
// Наборы слотов заменяются целиком
type UpdateDayRequest struct {
	BarberID         int64
	Date             time.Time
	AvailableSlots   []types.TimeString
	UnavailableSlots []types.TimeString
	DayOff           bool
}

// UpdatePatternRequest запрос на замену недельного паттерна барбера
type UpdatePatternRequest struct {
	BarberID int64
	Pattern  domain.WeeklyPattern
}

// Response модели

// ScheduleDayResponse ответ с данными дня расписания
type ScheduleDayResponse struct {
	BarberID         int64              `json:"barberId"`
	Date             string             `json:"date"`
	AvailableSlots   []types.TimeString `json:"availableSlots"`
	UnavailableSlots []types.TimeString `json:"unavailableSlots"`
	DayOff           bool               `json:"dayOff"`
	IsException      bool               `json:"isException"`
}

// PatternResponse ответ с обновленным недельным паттерном барбера
type PatternResponse struct {
	BarberID int64                `json:"barberId"`
	Pattern  domain.WeeklyPattern `json:"pattern"`
}

// Методы конвертации

// FromDomainDay конвертирует domain модель в DTO
func FromDomainDay(day *domain.ScheduleDay) *ScheduleDayResponse {
	if day == nil {
		return nil
	}

	return &ScheduleDayResponse{
		BarberID:         day.BarberID,
		Date:             day.Date.Format(domain.DateFormat),
		AvailableSlots:   day.AvailableSlots,
		UnavailableSlots: day.UnavailableSlots,
		DayOff:           day.DayOff,
		IsException:      day.IsException,
	}
}
