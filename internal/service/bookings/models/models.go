package models

import (
	"errors"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// Actor инициатор запроса: идентификатор пользователя и роль
type Actor struct {
	UserID int64
	Role   domain.ActingRole
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	Actor  Actor
	UserID int64
	Status *string
}

// GetBarberBookingsRequest запрос на получение бронирований барбера
type GetBarberBookingsRequest struct {
	Actor           Actor
	BarberID        int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetBarberBookingsRequest) ToDomainFilter() (domain.BarberBookingsFilter, error) {
	filter := domain.BarberBookingsFilter{
		BarberID:        r.BarberID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64      `json:"id"`
	BarberID           int64      `json:"barberId"`
	Date               string     `json:"date"`      // "2025-10-15"
	StartTime          string     `json:"startTime"` // "10:00"
	CustomerName       string     `json:"customerName"`
	CustomerPhone      string     `json:"customerPhone"`
	CustomerEmail      *string    `json:"customerEmail,omitempty"`
	UserID             *int64     `json:"userId,omitempty"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                 b.ID,
		BarberID:           b.BarberID,
		Date:               b.Date.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		CustomerEmail:      b.CustomerEmail,
		UserID:             b.UserID,
		Status:             string(b.Status),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if dto := FromDomainBooking(b); dto != nil {
			resp.Bookings = append(resp.Bookings, *dto)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строковый статус в domain тип
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
