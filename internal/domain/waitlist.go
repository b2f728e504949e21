package domain

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// WaitlistStatus статус записи в листе ожидания
type WaitlistStatus string

const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistOffered  WaitlistStatus = "offered"
	WaitlistNotified WaitlistStatus = "notified"
	WaitlistApproved WaitlistStatus = "approved"
	WaitlistDeclined WaitlistStatus = "declined"
	WaitlistExpired  WaitlistStatus = "expired"
)

// WaitlistEntry запись FIFO очереди ожидания на полностью занятый день барбера
//
// Жизненный цикл:
//
//	waiting -> (слот освободился) -> offered/notified -> approved (создано бронирование)
//	                                                  -> declined/expired (позиции уплотняются)
type WaitlistEntry struct {
	ID       int64
	BarberID int64
	Date     time.Time

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	UserID        *int64

	// Position позиция в очереди, начиная с 1; уплотняется при выходе записи из waiting
	Position int
	Status   WaitlistStatus

	// OfferToken, OfferTime и OfferExpiresAt заполняются только в режиме single_offer
	OfferToken     *string
	OfferTime      *types.TimeString
	OfferExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWaiting returns true if the entry is still queued
func (e *WaitlistEntry) IsWaiting() bool {
	return e.Status == WaitlistWaiting
}

// HasPendingOffer returns true if the entry holds an unexpired offer
func (e *WaitlistEntry) HasPendingOffer(now time.Time) bool {
	return e.Status == WaitlistOffered &&
		e.OfferExpiresAt != nil &&
		e.OfferExpiresAt.After(now)
}

// SlotFreedEvent событие освобождения слота при отмене бронирования
// Единственный триггер рассылки по листу ожидания
type SlotFreedEvent struct {
	BarberID int64
	Date     time.Time
	Time     types.TimeString
}
