package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	bookingRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/booking"
	availabilitySvc "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     AvailabilityResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и запись выполняются в сериализуемой транзакции,
// но авторитетный страж конфликтов - частичный уникальный индекс в БД:
// даже проигравшая гонку транзакция получит честный отказ, а не дубль
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d (%s), barber=%d, date=%s, time=%s",
		req.ActorUserID, req.ActingRole, req.BarberID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if err := validateDate(req.Date, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Разрешаем доступность внутри транзакции: активные бронирования
		// читаются с блокировкой FOR UPDATE
		availability, err := uc.resolver.Resolve(txCtx, req.BarberID, req.Date)
		if err != nil {
			switch {
			case errors.Is(err, availabilitySvc.ErrBarberNotFound):
				return ErrBarberNotFound
			case errors.Is(err, availabilitySvc.ErrBarberInactive):
				return ErrBarberInactive
			case errors.Is(err, availabilitySvc.ErrInvalidInput):
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			default:
				return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
			}
		}

		// 2. Запрошенное время должно быть доступным слотом дня
		if !availability.IsAvailable(req.StartTime) {
			return ErrSlotNotAvailable
		}

		// 3. Создаем бронирование
		booking := &domain.Booking{
			BarberID:      req.BarberID,
			Date:          req.Date,
			StartTime:     req.StartTime,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			UserID:        ownerUserID(req),
			Status:        domain.StatusConfirmed,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBarberNotFound),
			errors.Is(err, ErrBarberInactive),
			errors.Is(err, ErrSlotNotAvailable),
			errors.Is(err, ErrSlotTaken),
			errors.Is(err, ErrInvalidInput):
			uc.logger.Warn("CreateBooking: rejected: %v", err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateBooking: failed: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		BarberID:      result.BarberID,
		Date:          result.Date,
		StartTime:     result.StartTime,
		Status:        string(result.Status),
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		CustomerEmail: result.CustomerEmail,
		UserID:        result.UserID,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
