package create_booking

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	createBooking "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/create_booking"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BarberID      int64   `json:"barberId"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	BarberID      int64   `json:"barberId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	UserID        *int64  `json:"userId,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorUserID int64, role domain.ActingRole) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ActorUserID:   actorUserID,
		ActingRole:    role,
		BarberID:      r.BarberID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		BarberID:      resp.BarberID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		Status:        resp.Status,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		CustomerEmail: resp.CustomerEmail,
		UserID:        resp.UserID,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
