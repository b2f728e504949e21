package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	bookingRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo BookingRepository
	waitlist    WaitlistService
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	waitlist WaitlistService,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		waitlist:    waitlist,
		logger:      logger,
	}
}

// Execute выполняет use case отмены бронирования
// Успешная отмена эмитит событие освобождения слота в лист ожидания;
// сбой рассылки логируется и никогда не отменяет саму отмену
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d by user=%d (%s)", req.BookingID, req.ActorUserID, req.ActingRole)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !canCancel(booking, req) {
		uc.logger.Warn("CancelBooking: user=%d (%s) has no access to booking id=%d",
			req.ActorUserID, req.ActingRole, req.BookingID)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}

	if err := uc.bookingRepo.Cancel(ctx, req.BookingID, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Конкурентная отмена успела раньше
			uc.logger.Warn("CancelBooking: booking id=%d was cancelled concurrently", req.BookingID)
			return nil, ErrAlreadyCancelled
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	resp := &Response{
		ID:          booking.ID,
		BarberID:    booking.BarberID,
		Date:        booking.Date,
		StartTime:   booking.StartTime,
		Status:      string(domain.StatusCancelled),
		CancelledAt: time.Now(),
	}

	// Единственный триггер рассылки по листу ожидания
	event := domain.SlotFreedEvent{
		BarberID: booking.BarberID,
		Date:     booking.Date,
		Time:     booking.StartTime,
	}
	report, err := uc.waitlist.HandleSlotFreed(ctx, event)
	if err != nil {
		uc.logger.Error("CancelBooking: waitlist dispatch failed for booking id=%d: %v", req.BookingID, err)
	} else {
		resp.WaitlistNotified = report.Notified + report.Offered
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d (waitlist notified: %d)",
		req.BookingID, resp.WaitlistNotified)
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorUserID <= 0 {
		return fmt.Errorf("%w: actorUserID must be positive", ErrInvalidInput)
	}

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return nil
}

// canCancel проверяет право актора на отмену бронирования
// Клиент отменяет только собственные бронирования, персонал - любые
func canCancel(booking *domain.Booking, req *Request) bool {
	if req.ActingRole.IsStaff() {
		return true
	}
	return booking.UserID != nil && *booking.UserID == req.ActorUserID
}
