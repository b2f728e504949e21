package availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	scheduleRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/schedule"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability/models"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Service резолвер доступности слотов - ядро системы
// Послойно применяет к базовым слотам дня правила закрытий, ручные блокировки
// и активные бронирования, выдавая итоговый список доступных слотов
type Service struct {
	barberRepo   BarberRepository
	scheduleRepo ScheduleRepository
	closureRepo  ClosureRepository
	bookingRepo  BookingRepository
	logger       Logger
}

// NewService создает новый экземпляр резолвера доступности
func NewService(
	barbers BarberRepository,
	schedules ScheduleRepository,
	closures ClosureRepository,
	bookings BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		barberRepo:   barbers,
		scheduleRepo: schedules,
		closureRepo:  closures,
		bookingRepo:  bookings,
		logger:       logger,
	}
}

// Resolve вычисляет доступность слотов барбера на одну дату
// Результат всегда хронологически упорядочен
func (s *Service) Resolve(ctx context.Context, barberID int64, date time.Time) (*domain.DayAvailability, error) {
	if barberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	barber, err := s.getBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	return s.resolveForBarber(ctx, barber, normalizeDate(date))
}

// ResolveBatch вычисляет сводку доступности на набор дат
// Каждая дата обрабатывается тем же кодом, что и Resolve: результаты пакетного
// и одиночного путей не могут разойтись по построению
func (s *Service) ResolveBatch(ctx context.Context, barberID int64, dates []time.Time) (*models.BatchResult, error) {
	if barberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("%w: at least one date is required", ErrInvalidInput)
	}
	if len(dates) > domain.MaxBatchDates {
		return nil, fmt.Errorf("%w: at most %d dates per request", ErrTooManyDates, domain.MaxBatchDates)
	}

	barber, err := s.getBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	result := &models.BatchResult{
		BarberID: barberID,
		Days:     make(map[string]models.DaySummary, len(dates)),
	}

	for _, date := range dates {
		if date.IsZero() {
			return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
		}

		day, err := s.resolveForBarber(ctx, barber, normalizeDate(date))
		if err != nil {
			return nil, err
		}

		result.Days[day.Date.Format(domain.DateFormat)] = models.FromDayAvailability(day)
	}

	s.logger.Info("ResolveBatch: barber=%d, dates=%d", barberID, len(dates))
	return result, nil
}

// resolveForBarber общий путь разрешения доступности для одной даты
func (s *Service) resolveForBarber(ctx context.Context, barber *domain.Barber, date time.Time) (*domain.DayAvailability, error) {
	// 1. Материализованное расписание; при отсутствии - живой расчет из паттерна
	// Материализатор гарантирует наличие строк внутри скользящего окна,
	// но резолвер обязан отвечать и на даты за его пределами
	day, err := s.scheduleRepo.GetByBarberAndDate(ctx, barber.ID, date)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleDayNotFound) {
			s.logger.Error("Resolve: failed to get schedule day for barber=%d date=%s: %v",
				barber.ID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to get schedule day: %v", ErrInternal, err)
		}

		s.logger.Debug("Resolve: no schedule day for barber=%d date=%s, computing base slots live",
			barber.ID, date.Format(domain.DateFormat))
		day = &domain.ScheduleDay{
			BarberID:       barber.ID,
			Date:           date,
			AvailableSlots: barber.Pattern.BaseSlots(date.Weekday()),
		}
	}

	baseSlots := sortedSlots(day.AvailableSlots)

	// 2. Выходной день перекрывает всё
	if day.DayOff {
		return allUnavailable(barber.ID, date, baseSlots), nil
	}

	// 3. Решение по правилам закрытий
	// Непустые слоты на дне, который паттерн обычно закрывает, без явного флага -
	// унаследованное неявное состояние "исключительное открытие"; распознаем защитно
	isException := day.IsException ||
		(len(baseSlots) > 0 && !barber.Pattern.IsOpen(date.Weekday()))

	decision, err := s.resolveClosure(ctx, barber.ID, date, isException)
	if err != nil {
		return nil, err
	}

	if decision.Closed && decision.Type == domain.ClosureFull {
		return allUnavailable(barber.ID, date, baseSlots), nil
	}

	// 4. Активные бронирования занимают свои слоты
	bookings, err := s.bookingRepo.GetActiveByBarberAndDate(ctx, barber.ID, date)
	if err != nil {
		s.logger.Error("Resolve: failed to get bookings for barber=%d date=%s: %v",
			barber.ID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	booked := make(map[types.TimeString]bool, len(bookings))
	for _, b := range bookings {
		if b.IsActive() {
			booked[b.StartTime] = true
		}
	}

	// 5. Послойная фильтрация каждого слота
	result := &domain.DayAvailability{
		BarberID: barber.ID,
		Date:     date,
		Slots:    make([]domain.SlotAvailability, 0, len(baseSlots)),
	}

	for _, slot := range baseSlots {
		available := true

		if decision.Closed {
			// Частичное закрытие: утреннее убирает слоты с часом < 14,
			// дневное - с часом >= 14; граница фиксированная
			switch decision.Type {
			case domain.ClosureMorning:
				if domain.IsMorningSlot(slot) {
					available = false
				}
			case domain.ClosureAfternoon:
				if domain.IsAfternoonSlot(slot) {
					available = false
				}
			}
		}

		if available && day.IsSlotBlocked(slot) {
			available = false
		}

		if available && booked[slot] {
			available = false
		}

		result.Slots = append(result.Slots, domain.SlotAvailability{
			Time:      slot,
			Available: available,
		})
	}

	return result, nil
}

// resolveClosure загружает правила закрытий и вычисляет решение
// Противоречия данных логируются как предупреждения целостности
func (s *Service) resolveClosure(
	ctx context.Context,
	barberID int64,
	date time.Time,
	isException bool,
) (domain.ClosureDecision, error) {
	specifics, err := s.closureRepo.GetSpecificByBarberAndDate(ctx, barberID, date)
	if err != nil {
		s.logger.Error("Resolve: failed to get specific closures for barber=%d date=%s: %v",
			barberID, date.Format(domain.DateFormat), err)
		return domain.ClosureDecision{}, fmt.Errorf("%w: failed to get specific closures: %v", ErrInternal, err)
	}

	recurring, err := s.closureRepo.GetRecurringByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("Resolve: failed to get recurring closures for barber=%d: %v", barberID, err)
		return domain.ClosureDecision{}, fmt.Errorf("%w: failed to get recurring closures: %v", ErrInternal, err)
	}

	removed, err := s.closureRepo.GetRemovedAutoByBarberAndDate(ctx, barberID, date)
	if err != nil {
		s.logger.Error("Resolve: failed to get removed auto closures for barber=%d date=%s: %v",
			barberID, date.Format(domain.DateFormat), err)
		return domain.ClosureDecision{}, fmt.Errorf("%w: failed to get removed auto closures: %v", ErrInternal, err)
	}

	decision := domain.ResolveClosure(specifics, recurring, removed, date, isException)

	for _, warning := range decision.IntegrityWarnings {
		s.logger.Warn("Resolve: data integrity: barber=%d date=%s: %s",
			barberID, date.Format(domain.DateFormat), warning)
	}

	return decision, nil
}

// getBarber загружает барбера и проверяет его активность
func (s *Service) getBarber(ctx context.Context, barberID int64) (*domain.Barber, error) {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("Resolve: barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("Resolve: failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}

	if !barber.IsBookable() {
		s.logger.Warn("Resolve: barber id=%d is not active", barberID)
		return nil, ErrBarberInactive
	}

	return barber, nil
}

// allUnavailable возвращает день, где все базовые слоты недоступны
func allUnavailable(barberID int64, date time.Time, slots []types.TimeString) *domain.DayAvailability {
	result := &domain.DayAvailability{
		BarberID: barberID,
		Date:     date,
		Slots:    make([]domain.SlotAvailability, 0, len(slots)),
	}
	for _, slot := range slots {
		result.Slots = append(result.Slots, domain.SlotAvailability{Time: slot, Available: false})
	}
	return result
}

// sortedSlots возвращает хронологически упорядоченную копию слотов
func sortedSlots(slots []types.TimeString) []types.TimeString {
	result := make([]types.TimeString, len(slots))
	copy(result, slots)
	sort.Slice(result, func(i, j int) bool {
		return result[i].IsBefore(result[j])
	})
	return result
}

// normalizeDate обнуляет время, оставляя только дату
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
