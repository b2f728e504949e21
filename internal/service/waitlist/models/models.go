package models

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Mode режим реакции листа ожидания на освобождение слота
type Mode string

const (
	// ModeBroadcast все ожидающие уведомляются, бронирование в порядке живой очереди
	ModeBroadcast Mode = "broadcast"

	// ModeSingleOffer предложение с токеном и сроком действия получает только голова очереди
	ModeSingleOffer Mode = "single_offer"
)

// IsValid проверяет, что режим входит в допустимый словарь
func (m Mode) IsValid() bool {
	return m == ModeBroadcast || m == ModeSingleOffer
}

// Request модели

// JoinRequest запрос на постановку в лист ожидания
type JoinRequest struct {
	BarberID      int64
	Date          time.Time
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	UserID        *int64
}

// ResolveOfferRequest запрос на разрешение предложения
// Token обязателен в режиме single_offer
// Time обязательно, когда у записи нет зафиксированного времени предложения
type ResolveOfferRequest struct {
	EntryID int64
	Approve bool
	Token   *string
	Time    *types.TimeString
}

// Response модели

// EntryResponse ответ с данными записи листа ожидания
type EntryResponse struct {
	ID             int64      `json:"id"`
	BarberID       int64      `json:"barberId"`
	Date           string     `json:"date"`
	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone"`
	CustomerEmail  *string    `json:"customerEmail,omitempty"`
	UserID         *int64     `json:"userId,omitempty"`
	Position       int        `json:"position"`
	Status         string     `json:"status"`
	OfferTime      *string    `json:"offerTime,omitempty"`
	OfferExpiresAt *time.Time `json:"offerExpiresAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ResolveOfferResponse ответ на разрешение предложения
// BookingID заполняется при одобрении
type ResolveOfferResponse struct {
	EntryID   int64  `json:"entryId"`
	Status    string `json:"status"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// SlotFreedReport итог обработки события освобождения слота
type SlotFreedReport struct {
	Mode     Mode `json:"mode"`
	Notified int  `json:"notified"`
	Offered  int  `json:"offered"`
}

// Методы конвертации

// FromDomainEntry конвертирует domain модель в DTO
func FromDomainEntry(e *domain.WaitlistEntry) *EntryResponse {
	if e == nil {
		return nil
	}

	resp := &EntryResponse{
		ID:             e.ID,
		BarberID:       e.BarberID,
		Date:           e.Date.Format(domain.DateFormat),
		CustomerName:   e.CustomerName,
		CustomerPhone:  e.CustomerPhone,
		CustomerEmail:  e.CustomerEmail,
		UserID:         e.UserID,
		Position:       e.Position,
		Status:         string(e.Status),
		OfferExpiresAt: e.OfferExpiresAt,
		CreatedAt:      e.CreatedAt,
	}

	if e.OfferTime != nil {
		offerTime := e.OfferTime.String()
		resp.OfferTime = &offerTime
	}

	return resp
}

// ToDomainEntry конвертирует JoinRequest в domain модель
func (r *JoinRequest) ToDomainEntry() *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		BarberID:      r.BarberID,
		Date:          r.Date,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		UserID:        r.UserID,
		Status:        domain.WaitlistWaiting,
	}
}
