package create_booking

import (
	"fmt"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActorUserID <= 0 {
		return fmt.Errorf("%w: actorUserID must be positive", ErrInvalidInput)
	}

	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters",
			ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	return nil
}

// ownerUserID вычисляет владельца бронирования
// Бронирование, созданное персоналом от имени клиента, не привязывается
// к учетной записи сотрудника, иначе сотрудник ошибочно блокируется
// от внесения второй записи в тот же день
func ownerUserID(req *Request) *int64 {
	if req.ActingRole.IsStaff() {
		return nil
	}
	userID := req.ActorUserID
	return &userID
}
