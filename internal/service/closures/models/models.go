package models

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// Request модели

// CreateClosureRequest запрос на создание закрытия на конкретную дату
type CreateClosureRequest struct {
	BarberID  int64
	Date      time.Time
	Type      domain.ClosureType
	Reason    string
	CreatedBy string
}

// RemoveClosureRequest запрос на удаление закрытия
// Удаление автоматического закрытия трактуется как исключительное открытие
type RemoveClosureRequest struct {
	BarberID int64
	Date     time.Time
	Type     domain.ClosureType
}

// Response модели

// ClosureResponse ответ с данными закрытия
type ClosureResponse struct {
	ID        int64     `json:"id"`
	BarberID  int64     `json:"barberId"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	Reason    string    `json:"reason,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecurringClosureResponse ответ с данными еженедельного закрытия
type RecurringClosureResponse struct {
	ID       int64 `json:"id"`
	BarberID int64 `json:"barberId"`
	Weekdays []int `json:"weekdays"`
}

// ClosureListResponse ответ со списком закрытий барбера
type ClosureListResponse struct {
	Specific  []ClosureResponse          `json:"specific"`
	Recurring []RecurringClosureResponse `json:"recurring"`
}

// RemoveClosureResponse ответ на удаление закрытия
// ExceptionalOpening = true, когда удалено автоматическое закрытие и дата
// помечена как исключительное открытие
type RemoveClosureResponse struct {
	BarberID           int64  `json:"barberId"`
	Date               string `json:"date"`
	Type               string `json:"type"`
	ExceptionalOpening bool   `json:"exceptionalOpening"`
}

// Методы конвертации

// FromDomainClosure конвертирует domain модель в DTO
func FromDomainClosure(c *domain.SpecificClosure) *ClosureResponse {
	if c == nil {
		return nil
	}

	return &ClosureResponse{
		ID:        c.ID,
		BarberID:  c.BarberID,
		Date:      c.Date.Format(domain.DateFormat),
		Type:      string(c.Type),
		Reason:    c.Reason,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

// FromDomainClosures конвертирует списки domain моделей в DTO списка
func FromDomainClosures(specific []*domain.SpecificClosure, recurring []*domain.RecurringClosure) *ClosureListResponse {
	resp := &ClosureListResponse{
		Specific:  make([]ClosureResponse, 0, len(specific)),
		Recurring: make([]RecurringClosureResponse, 0, len(recurring)),
	}

	for _, c := range specific {
		if dto := FromDomainClosure(c); dto != nil {
			resp.Specific = append(resp.Specific, *dto)
		}
	}

	for _, rc := range recurring {
		weekdays := make([]int, 0, len(rc.Weekdays))
		for _, wd := range rc.Weekdays {
			weekdays = append(weekdays, int(wd))
		}
		resp.Recurring = append(resp.Recurring, RecurringClosureResponse{
			ID:       rc.ID,
			BarberID: rc.BarberID,
			Weekdays: weekdays,
		})
	}

	return resp
}

// ToDomainClosure конвертирует CreateClosureRequest в domain модель
func (r *CreateClosureRequest) ToDomainClosure() *domain.SpecificClosure {
	return &domain.SpecificClosure{
		BarberID:  r.BarberID,
		Date:      r.Date,
		Type:      r.Type,
		Reason:    r.Reason,
		CreatedBy: r.CreatedBy,
	}
}
