package availability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	scheduleRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/schedule"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// --- фейки репозиториев ---

type fakeBarberRepo struct {
	barbers map[int64]*domain.Barber
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	barber, ok := f.barbers[id]
	if !ok {
		return nil, barberRepo.ErrBarberNotFound
	}
	return barber, nil
}

type fakeScheduleRepo struct {
	days map[string]*domain.ScheduleDay
}

func scheduleKey(barberID int64, date time.Time) string {
	return fmt.Sprintf("%d#%s", barberID, date.Format(domain.DateFormat))
}

func (f *fakeScheduleRepo) GetByBarberAndDate(_ context.Context, barberID int64, date time.Time) (*domain.ScheduleDay, error) {
	day, ok := f.days[scheduleKey(barberID, date)]
	if !ok {
		return nil, scheduleRepo.ErrScheduleDayNotFound
	}
	return day, nil
}

type fakeClosureRepo struct {
	specifics []*domain.SpecificClosure
	recurring []*domain.RecurringClosure
	removed   []*domain.RemovedAutoClosure
}

func (f *fakeClosureRepo) GetSpecificByBarberAndDate(_ context.Context, barberID int64, date time.Time) ([]*domain.SpecificClosure, error) {
	result := make([]*domain.SpecificClosure, 0)
	for _, c := range f.specifics {
		if c.BarberID == barberID && c.Date.Equal(date) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeClosureRepo) GetRecurringByBarber(_ context.Context, barberID int64) ([]*domain.RecurringClosure, error) {
	result := make([]*domain.RecurringClosure, 0)
	for _, c := range f.recurring {
		if c.BarberID == barberID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeClosureRepo) GetRemovedAutoByBarberAndDate(_ context.Context, barberID int64, date time.Time) ([]*domain.RemovedAutoClosure, error) {
	result := make([]*domain.RemovedAutoClosure, 0)
	for _, r := range f.removed {
		if r.BarberID == barberID && r.Date.Equal(date) {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByBarberAndDate(_ context.Context, barberID int64, date time.Time) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BarberID == barberID && b.Date.Equal(date) && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- вспомогательные конструкторы ---

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return d
}

func activeBarber(id int64) *domain.Barber {
	return &domain.Barber{
		ID:      id,
		Name:    "Fabio",
		Active:  true,
		Pattern: domain.StandardWeeklyPattern(),
	}
}

func newTestService(
	barbers *fakeBarberRepo,
	schedules *fakeScheduleRepo,
	closures *fakeClosureRepo,
	bookings *fakeBookingRepo,
) *Service {
	if schedules == nil {
		schedules = &fakeScheduleRepo{days: map[string]*domain.ScheduleDay{}}
	}
	if closures == nil {
		closures = &fakeClosureRepo{}
	}
	if bookings == nil {
		bookings = &fakeBookingRepo{}
	}
	return NewService(barbers, schedules, closures, bookings, nopLogger{})
}

func availableTimes(day *domain.DayAvailability) []types.TimeString {
	return day.AvailableTimes()
}

// --- тесты ---

func TestResolve_BarberValidation(t *testing.T) {
	svc := newTestService(&fakeBarberRepo{barbers: map[int64]*domain.Barber{}}, nil, nil, nil)
	tuesday := mustDate(t, "2026-09-01")

	t.Run("unknown barber", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), 99, tuesday)
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})

	t.Run("non-positive barber id", func(t *testing.T) {
		_, err := svc.Resolve(context.Background(), 0, tuesday)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inactive barber", func(t *testing.T) {
		barber := activeBarber(1)
		barber.Active = false
		svc := newTestService(&fakeBarberRepo{barbers: map[int64]*domain.Barber{1: barber}}, nil, nil, nil)

		_, err := svc.Resolve(context.Background(), 1, tuesday)
		assert.ErrorIs(t, err, ErrBarberInactive)
	})
}

func TestResolve_LiveFallbackWithoutScheduleDay(t *testing.T) {
	// Даты за пределами окна материализации считаются вживую из паттерна
	svc := newTestService(&fakeBarberRepo{barbers: map[int64]*domain.Barber{1: activeBarber(1)}}, nil, nil, nil)

	day, err := svc.Resolve(context.Background(), 1, mustDate(t, "2026-09-01"))
	require.NoError(t, err)

	require.Len(t, day.Slots, 14)
	assert.Equal(t, 14, day.AvailableCount())
	assert.Equal(t, types.TimeString("09:00"), day.Slots[0].Time)
	assert.Equal(t, types.TimeString("17:30"), day.Slots[13].Time)
}

func TestResolve_FullClosureBlocksEverything(t *testing.T) {
	tuesday := mustDate(t, "2026-09-01")
	closures := &fakeClosureRepo{specifics: []*domain.SpecificClosure{
		{BarberID: 1, Date: tuesday, Type: domain.ClosureFull},
	}}
	svc := newTestService(&fakeBarberRepo{barbers: map[int64]*domain.Barber{1: activeBarber(1)}}, nil, closures, nil)

	day, err := svc.Resolve(context.Background(), 1, tuesday)
	require.NoError(t, err)

	assert.Len(t, day.Slots, 14)
	assert.Equal(t, 0, day.AvailableCount())
}

func TestResolve_PartialClosures(t *testing.T) {
	tuesday := mustDate(t, "2026-09-01")
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{1: activeBarber(1)}}

	t.Run("morning closure removes only slots before 14:00", func(t *testing.T) {
		closures := &fakeClosureRepo{specifics: []*domain.SpecificClosure{
			{BarberID: 1, Date: tuesday, Type: domain.ClosureMorning},
		}}
		svc := newTestService(barbers, nil, closures, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)

		assert.Equal(t,
			[]types.TimeString{"15:00", "15:30", "16:00", "16:30", "17:00", "17:30"},
			availableTimes(day))
	})

	t.Run("afternoon closure removes slots from 14:00 on", func(t *testing.T) {
		closures := &fakeClosureRepo{specifics: []*domain.SpecificClosure{
			{BarberID: 1, Date: tuesday, Type: domain.ClosureAfternoon},
		}}
		svc := newTestService(barbers, nil, closures, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)

		assert.Equal(t,
			[]types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"},
			availableTimes(day))
	})

	t.Run("morning plus afternoon closures fold to full", func(t *testing.T) {
		closures := &fakeClosureRepo{specifics: []*domain.SpecificClosure{
			{BarberID: 1, Date: tuesday, Type: domain.ClosureMorning},
			{BarberID: 1, Date: tuesday, Type: domain.ClosureAfternoon},
		}}
		svc := newTestService(barbers, nil, closures, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)
		assert.Equal(t, 0, day.AvailableCount())
	})

	t.Run("14:30 saturday slot falls under afternoon closure", func(t *testing.T) {
		saturday := mustDate(t, "2026-09-05")
		closures := &fakeClosureRepo{specifics: []*domain.SpecificClosure{
			{BarberID: 1, Date: saturday, Type: domain.ClosureAfternoon},
		}}
		svc := newTestService(barbers, nil, closures, nil)

		day, err := svc.Resolve(context.Background(), 1, saturday)
		require.NoError(t, err)

		times := availableTimes(day)
		assert.NotContains(t, times, types.TimeString("14:30"))
		assert.Contains(t, times, types.TimeString("12:30"))
	})
}

func TestResolve_RecurringClosure(t *testing.T) {
	tuesday := mustDate(t, "2026-09-01")
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{1: activeBarber(1)}}

	t.Run("recurring weekday rule closes the whole day", func(t *testing.T) {
		closures := &fakeClosureRepo{recurring: []*domain.RecurringClosure{
			{BarberID: 1, Weekdays: []time.Weekday{time.Tuesday}},
		}}
		svc := newTestService(barbers, nil, closures, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)
		assert.Equal(t, 0, day.AvailableCount())
	})

	t.Run("exception flag on schedule day suppresses the rule", func(t *testing.T) {
		closures := &fakeClosureRepo{recurring: []*domain.RecurringClosure{
			{BarberID: 1, Weekdays: []time.Weekday{time.Tuesday}},
		}}
		schedules := &fakeScheduleRepo{days: map[string]*domain.ScheduleDay{
			scheduleKey(1, tuesday): {
				BarberID:       1,
				Date:           tuesday,
				IsException:    true,
				AvailableSlots: []types.TimeString{"09:00", "09:30", "10:00"},
			},
		}}
		svc := newTestService(barbers, schedules, closures, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)
		assert.Equal(t, 3, day.AvailableCount())
	})

	t.Run("removed auto closure ledger entry suppresses the rule", func(t *testing.T) {
		closures := &fakeClosureRepo{
			recurring: []*domain.RecurringClosure{
				{BarberID: 1, Weekdays: []time.Weekday{time.Tuesday}},
			},
			removed: []*domain.RemovedAutoClosure{
				{BarberID: 1, Date: tuesday, Type: domain.ClosureFull},
			},
		}
		svc := newTestService(barbers, nil, closures, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)
		assert.Equal(t, 14, day.AvailableCount())
	})
}

func TestResolve_ManualBlocksAndBookings(t *testing.T) {
	tuesday := mustDate(t, "2026-09-01")
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{1: activeBarber(1)}}

	t.Run("manually blocked slots are subtracted", func(t *testing.T) {
		schedules := &fakeScheduleRepo{days: map[string]*domain.ScheduleDay{
			scheduleKey(1, tuesday): {
				BarberID:         1,
				Date:             tuesday,
				AvailableSlots:   []types.TimeString{"09:00", "09:30", "10:00"},
				UnavailableSlots: []types.TimeString{"09:30"},
			},
		}}
		svc := newTestService(barbers, schedules, nil, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)
		assert.Equal(t, []types.TimeString{"09:00", "10:00"}, availableTimes(day))
	})

	t.Run("active bookings occupy their slots", func(t *testing.T) {
		bookings := &fakeBookingRepo{bookings: []*domain.Booking{
			{BarberID: 1, Date: tuesday, StartTime: "09:00", Status: domain.StatusConfirmed},
			{BarberID: 1, Date: tuesday, StartTime: "15:00", Status: domain.StatusCancelled},
		}}
		svc := newTestService(barbers, nil, nil, bookings)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)

		times := availableTimes(day)
		assert.NotContains(t, times, types.TimeString("09:00"))
		// Отмененное бронирование слот не занимает
		assert.Contains(t, times, types.TimeString("15:00"))
	})

	t.Run("day off overrides everything", func(t *testing.T) {
		schedules := &fakeScheduleRepo{days: map[string]*domain.ScheduleDay{
			scheduleKey(1, tuesday): {
				BarberID:       1,
				Date:           tuesday,
				DayOff:         true,
				AvailableSlots: []types.TimeString{"09:00", "09:30"},
			},
		}}
		svc := newTestService(barbers, schedules, nil, nil)

		day, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)
		assert.Equal(t, 0, day.AvailableCount())
	})
}

func TestResolve_SlotsAlwaysOrdered(t *testing.T) {
	tuesday := mustDate(t, "2026-09-01")
	schedules := &fakeScheduleRepo{days: map[string]*domain.ScheduleDay{
		scheduleKey(1, tuesday): {
			BarberID:       1,
			Date:           tuesday,
			AvailableSlots: []types.TimeString{"15:00", "09:00", "12:30", "10:00"},
		},
	}}
	svc := newTestService(&fakeBarberRepo{barbers: map[int64]*domain.Barber{1: activeBarber(1)}}, schedules, nil, nil)

	day, err := svc.Resolve(context.Background(), 1, tuesday)
	require.NoError(t, err)

	require.Len(t, day.Slots, 4)
	for i := 1; i < len(day.Slots); i++ {
		assert.True(t, day.Slots[i-1].Time.IsBefore(day.Slots[i].Time))
	}
}

func TestResolveBatch(t *testing.T) {
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{1: activeBarber(1)}}
	tuesday := mustDate(t, "2026-09-01")
	sunday := mustDate(t, "2026-09-06")

	t.Run("batch result matches single resolves", func(t *testing.T) {
		closures := &fakeClosureRepo{specifics: []*domain.SpecificClosure{
			{BarberID: 1, Date: tuesday, Type: domain.ClosureMorning},
		}}
		svc := newTestService(barbers, nil, closures, nil)

		batch, err := svc.ResolveBatch(context.Background(), 1, []time.Time{tuesday, sunday})
		require.NoError(t, err)
		require.Len(t, batch.Days, 2)

		single, err := svc.Resolve(context.Background(), 1, tuesday)
		require.NoError(t, err)

		summary := batch.Days["2026-09-01"]
		assert.Equal(t, single.AvailableCount(), summary.AvailableCount)
		assert.Equal(t, single.HasSlots(), summary.HasSlots)

		// Воскресенье глобально закрыто
		assert.False(t, batch.Days["2026-09-06"].HasSlots)
	})

	t.Run("too many dates rejected", func(t *testing.T) {
		svc := newTestService(barbers, nil, nil, nil)

		dates := make([]time.Time, domain.MaxBatchDates+1)
		for i := range dates {
			dates[i] = tuesday.AddDate(0, 0, i)
		}

		_, err := svc.ResolveBatch(context.Background(), 1, dates)
		assert.ErrorIs(t, err, ErrTooManyDates)
	})

	t.Run("empty date list rejected", func(t *testing.T) {
		svc := newTestService(barbers, nil, nil, nil)
		_, err := svc.ResolveBatch(context.Background(), 1, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
