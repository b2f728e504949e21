package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	scheduleRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/schedule"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule/models"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Service сервис административного редактирования расписаний
// Ручные правки материализованных дней и замена недельных паттернов барберов
type Service struct {
	barberRepo   BarberRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(barbers BarberRepository, schedules ScheduleRepository, logger Logger) *Service {
	return &Service{
		barberRepo:   barbers,
		scheduleRepo: schedules,
		logger:       logger,
	}
}

// UpdateDay заменяет наборы слотов материализованного дня
// День помечается исключением: материализатор и автозакрытия его больше не трогают
// Редактировать можно только уже материализованный день
func (s *Service) UpdateDay(ctx context.Context, req *models.UpdateDayRequest) (*models.ScheduleDayResponse, error) {
	s.logger.Info("UpdateDay: barber=%d date=%s available=%d unavailable=%d dayOff=%v",
		req.BarberID, req.Date.Format(domain.DateFormat),
		len(req.AvailableSlots), len(req.UnavailableSlots), req.DayOff)

	if err := s.validateUpdateDay(req); err != nil {
		s.logger.Warn("UpdateDay: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.getBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	day, err := s.scheduleRepo.GetByBarberAndDate(ctx, req.BarberID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleDayNotFound) {
			s.logger.Warn("UpdateDay: schedule day not found for barber=%d date=%s",
				req.BarberID, req.Date.Format(domain.DateFormat))
			return nil, ErrScheduleDayNotFound
		}
		s.logger.Error("UpdateDay: failed to get schedule day: %v", err)
		return nil, fmt.Errorf("%w: UpdateDay - failed to get schedule day: %v", ErrInternal, err)
	}

	day.AvailableSlots = req.AvailableSlots
	day.UnavailableSlots = req.UnavailableSlots
	day.DayOff = req.DayOff
	day.IsException = true

	if err := s.scheduleRepo.UpdateSlots(ctx, day); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleDayNotFound) {
			return nil, ErrScheduleDayNotFound
		}
		s.logger.Error("UpdateDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDay: successfully updated schedule for barber=%d date=%s",
		req.BarberID, req.Date.Format(domain.DateFormat))
	return models.FromDomainDay(day), nil
}

// UpdatePattern заменяет недельный паттерн барбера
// Действует только на будущие материализации: уже созданные дни не пересчитываются
func (s *Service) UpdatePattern(ctx context.Context, req *models.UpdatePatternRequest) (*models.PatternResponse, error) {
	s.logger.Info("UpdatePattern: barber=%d", req.BarberID)

	if req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if err := validatePattern(req.Pattern); err != nil {
		s.logger.Warn("UpdatePattern: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.getBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	if err := s.barberRepo.UpdatePattern(ctx, req.BarberID, req.Pattern); err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			return nil, ErrBarberNotFound
		}
		s.logger.Error("UpdatePattern: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdatePattern - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePattern: successfully updated pattern for barber=%d", req.BarberID)
	return &models.PatternResponse{BarberID: req.BarberID, Pattern: req.Pattern}, nil
}

// Вспомогательные методы

func (s *Service) getBarber(ctx context.Context, barberID int64) (*domain.Barber, error) {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	return barber, nil
}

func (s *Service) validateUpdateDay(req *models.UpdateDayRequest) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := validateSlots(req.AvailableSlots, "availableSlots"); err != nil {
		return err
	}
	if err := validateSlots(req.UnavailableSlots, "unavailableSlots"); err != nil {
		return err
	}

	// Слот не может быть одновременно базовым и заблокированным
	blocked := make(map[types.TimeString]struct{}, len(req.UnavailableSlots))
	for _, slot := range req.UnavailableSlots {
		blocked[slot] = struct{}{}
	}
	for _, slot := range req.AvailableSlots {
		if _, ok := blocked[slot]; ok {
			return fmt.Errorf("%w: slot %s is listed as both available and unavailable", ErrInvalidInput, slot)
		}
	}

	if req.DayOff && len(req.AvailableSlots) > 0 {
		return fmt.Errorf("%w: a day off cannot have available slots", ErrInvalidInput)
	}

	return nil
}

func validateSlots(slots []types.TimeString, field string) error {
	seen := make(map[types.TimeString]struct{}, len(slots))
	for _, slot := range slots {
		if err := slot.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
		}
		if _, ok := seen[slot]; ok {
			return fmt.Errorf("%w: %s: duplicate slot %s", ErrInvalidInput, field, slot)
		}
		seen[slot] = struct{}{}
	}
	return nil
}

func validatePattern(pattern domain.WeeklyPattern) error {
	if len(pattern.Windows) == 0 {
		return fmt.Errorf("%w: pattern must define at least one window", ErrInvalidInput)
	}

	for weekday, windows := range pattern.Windows {
		if weekday < 0 || weekday > 6 {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidInput, weekday)
		}
		for _, window := range windows {
			if err := window.Start.Validate(); err != nil {
				return fmt.Errorf("%w: %s window start: %v", ErrInvalidInput, weekday, err)
			}
			if err := window.End.Validate(); err != nil {
				return fmt.Errorf("%w: %s window end: %v", ErrInvalidInput, weekday, err)
			}
			if window.End.IsBefore(window.Start) {
				return fmt.Errorf("%w: %s window %s-%s ends before it starts",
					ErrInvalidInput, weekday, window.Start, window.End)
			}
			if window.StepMinutes < 0 {
				return fmt.Errorf("%w: %s window step must not be negative", ErrInvalidInput, weekday)
			}
		}
	}

	return nil
}
