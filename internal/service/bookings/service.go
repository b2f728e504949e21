package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	bookingRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/booking"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/bookings/models"
)

// Service сервис чтения бронирований
// Создание и отмена живут в usecase слое, здесь только выборки с проверкой доступа
type Service struct {
	bookingRepo BookingRepository
	barberRepo  BarberRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookings BookingRepository,
	barbers BarberRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookings,
		barberRepo:  barbers,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только собственные бронирования, персонал - любые
func (s *Service) GetByID(ctx context.Context, id int64, actor models.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d by user=%d (%s)", id, actor.UserID, actor.Role)

	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !s.canView(booking, actor) {
		s.logger.Warn("GetByID: user=%d (%s) has no access to booking id=%d", actor.UserID, actor.Role, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя
// Клиент может запрашивать только свои, персонал - любого пользователя
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by user=%d (%s)",
		req.UserID, req.Actor.UserID, req.Actor.Role)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if !req.Actor.Role.IsStaff() && req.Actor.UserID != req.UserID {
		s.logger.Warn("GetUserBookings: user=%d requested bookings of user=%d", req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		parsed, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status %q", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = &parsed
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBarberBookings получает бронирования барбера за период
// Доступно только персоналу
func (s *Service) GetBarberBookings(ctx context.Context, req *models.GetBarberBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBarberBookings: fetching bookings for barber=%d by user=%d (%s)",
		req.BarberID, req.Actor.UserID, req.Actor.Role)

	if req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if !req.Actor.Role.IsStaff() {
		s.logger.Warn("GetBarberBookings: user=%d (%s) is not staff", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	if _, err := s.barberRepo.GetByID(ctx, req.BarberID); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("GetBarberBookings: barber id=%d not found", req.BarberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("GetBarberBookings: failed to get barber id=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBarberBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByBarberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBarberBookings: repository error for barber=%d: %v", req.BarberID, err)
		return nil, fmt.Errorf("%w: GetBarberBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBarberBookings: successfully fetched %d bookings for barber=%d", len(bookings), req.BarberID)
	return models.FromDomainBookingList(bookings), nil
}

// canView проверяет право актора на просмотр бронирования
func (s *Service) canView(booking *domain.Booking, actor models.Actor) bool {
	if actor.Role.IsStaff() {
		return true
	}
	return booking.UserID != nil && *booking.UserID == actor.UserID
}
