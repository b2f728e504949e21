package notifier

import "time"

// Типы уведомлений диспетчера
const (
	TypeSlotFreed = "slot_freed"
	TypeSlotOffer = "slot_offer"
)

// Notification модель уведомления для внешнего диспетчера
type Notification struct {
	Type          string `json:"type"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail,omitempty"`

	BarberID int64  `json:"barberId"`
	Date     string `json:"date"` // "2025-10-15"
	Time     string `json:"time"` // "10:00"

	// Поля предложения, только для type = slot_offer
	OfferToken     string     `json:"offerToken,omitempty"`
	OfferExpiresAt *time.Time `json:"offerExpiresAt,omitempty"`
}

// ErrorResponse модель ошибки от диспетчера уведомлений
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
