package materialize_schedules

import (
	"context"
	"fmt"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// autoClosureReason причина, проставляемая автоматическим закрытиям
const autoClosureReason = "generated from weekly pattern"

// UseCase use case материализации расписаний на скользящее окно дат
// Прогон идемпотентен: все записи создаются через ON CONFLICT DO NOTHING,
// повторный запуск на том же окне не создает ни строк, ни дублей закрытий
type UseCase struct {
	barberRepo   BarberRepository
	scheduleRepo ScheduleRepository
	closureRepo  ClosureRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	barberRepo BarberRepository,
	scheduleRepo ScheduleRepository,
	closureRepo ClosureRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		barberRepo:   barberRepo,
		scheduleRepo: scheduleRepo,
		closureRepo:  closureRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет материализацию расписаний
// Ошибка одной пары (барбер, дата) логируется и не прерывает прогон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	windowDays := req.WindowDays
	if windowDays == 0 {
		windowDays = domain.DefaultMaterializeWindowDays
	}
	if windowDays < 0 || windowDays > domain.MaxMaterializeWindowDays {
		return nil, fmt.Errorf("%w: windowDays must be between 1 and %d",
			ErrInvalidInput, domain.MaxMaterializeWindowDays)
	}

	now := uc.timeProvider.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, windowDays-1)

	uc.logger.Info("MaterializeSchedules: window %s .. %s (%d days)",
		from.Format(domain.DateFormat), to.Format(domain.DateFormat), windowDays)

	barbers, err := uc.barberRepo.GetActive(ctx)
	if err != nil {
		uc.logger.Error("MaterializeSchedules: failed to get active barbers: %v", err)
		return nil, fmt.Errorf("%w: failed to get active barbers: %v", ErrInternal, err)
	}

	resp := &Response{
		From:       from,
		To:         to,
		WindowDays: windowDays,
		Barbers:    len(barbers),
	}

	for _, barber := range barbers {
		for offset := 0; offset < windowDays; offset++ {
			date := from.AddDate(0, 0, offset)
			if date.Weekday() == domain.GloballyClosedWeekday {
				continue
			}

			if err := uc.materializeDay(ctx, barber, date, resp); err != nil {
				uc.logger.Error("MaterializeSchedules: barber=%d date=%s: %v",
					barber.ID, date.Format(domain.DateFormat), err)
				resp.Failed++
			}
		}
	}

	uc.logger.Info("MaterializeSchedules: done, barbers=%d created=%d skipped=%d closures=%d failed=%d",
		resp.Barbers, resp.DaysCreated, resp.DaysSkipped, resp.ClosuresCreated, resp.Failed)
	return resp, nil
}

// materializeDay материализует одну пару (барбер, дата)
func (uc *UseCase) materializeDay(ctx context.Context, barber *domain.Barber, date time.Time, resp *Response) error {
	weekday := date.Weekday()

	day := &domain.ScheduleDay{
		BarberID:       barber.ID,
		Date:           date,
		AvailableSlots: barber.Pattern.BaseSlots(weekday),
	}

	created, err := uc.scheduleRepo.CreateIfAbsent(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to create schedule day: %v", err)
	}
	if created {
		resp.DaysCreated++
	} else {
		resp.DaysSkipped++
	}

	autoType := barber.Pattern.AutoClosureType(weekday)
	if autoType == nil {
		return nil
	}

	// Исключительное открытие запрещает пересоздание автоматического закрытия
	if !created {
		existing, err := uc.scheduleRepo.GetByBarberAndDate(ctx, barber.ID, date)
		if err != nil {
			return fmt.Errorf("failed to get schedule day: %v", err)
		}
		if existing.IsException {
			uc.logger.Debug("MaterializeSchedules: barber=%d date=%s is an exceptional opening, skipping auto closure",
				barber.ID, date.Format(domain.DateFormat))
			return nil
		}
	}

	// Журнал удалений тоже подавляет пересоздание
	removed, err := uc.closureRepo.HasRemovedAuto(ctx, barber.ID, date, *autoType)
	if err != nil {
		return fmt.Errorf("failed to check removed auto closures: %v", err)
	}
	if removed {
		uc.logger.Debug("MaterializeSchedules: barber=%d date=%s has a removed %s auto closure, skipping",
			barber.ID, date.Format(domain.DateFormat), *autoType)
		return nil
	}

	closureCreated, err := uc.closureRepo.CreateSpecificIfAbsent(ctx, &domain.SpecificClosure{
		BarberID:  barber.ID,
		Date:      date,
		Type:      *autoType,
		Reason:    autoClosureReason,
		CreatedBy: domain.CreatorSystemAuto,
	})
	if err != nil {
		return fmt.Errorf("failed to create auto closure: %v", err)
	}
	if closureCreated {
		resp.ClosuresCreated++
	}

	return nil
}
