package schedule

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
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule/models"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// --- фейки ---

type fakeBarberRepo struct {
	barbers  map[int64]*domain.Barber
	patterns map[int64]domain.WeeklyPattern
}

func (f *fakeBarberRepo) GetByID(_ context.Context, id int64) (*domain.Barber, error) {
	barber, ok := f.barbers[id]
	if !ok {
		return nil, barberRepo.ErrBarberNotFound
	}
	return barber, nil
}

func (f *fakeBarberRepo) UpdatePattern(_ context.Context, id int64, pattern domain.WeeklyPattern) error {
	if _, ok := f.barbers[id]; !ok {
		return barberRepo.ErrBarberNotFound
	}
	if f.patterns == nil {
		f.patterns = make(map[int64]domain.WeeklyPattern)
	}
	f.patterns[id] = pattern
	return nil
}

type fakeScheduleRepo struct {
	days    map[string]*domain.ScheduleDay
	updated []*domain.ScheduleDay
}

func dayKey(barberID int64, date time.Time) string {
	return fmt.Sprintf("%d#%s", barberID, date.Format(domain.DateFormat))
}

func (f *fakeScheduleRepo) GetByBarberAndDate(_ context.Context, barberID int64, date time.Time) (*domain.ScheduleDay, error) {
	day, ok := f.days[dayKey(barberID, date)]
	if !ok {
		return nil, scheduleRepo.ErrScheduleDayNotFound
	}
	snapshot := *day
	return &snapshot, nil
}

func (f *fakeScheduleRepo) UpdateSlots(_ context.Context, day *domain.ScheduleDay) error {
	if _, ok := f.days[dayKey(day.BarberID, day.Date)]; !ok {
		return scheduleRepo.ErrScheduleDayNotFound
	}
	f.days[dayKey(day.BarberID, day.Date)] = day
	f.updated = append(f.updated, day)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- вспомогательное ---

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func newTestEnv() (*Service, *fakeBarberRepo, *fakeScheduleRepo) {
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{
		1: {ID: 1, Name: "Michele", Active: true, Pattern: domain.StandardWeeklyPattern()},
	}}
	schedules := &fakeScheduleRepo{days: map[string]*domain.ScheduleDay{
		dayKey(1, testDate): {
			ID:             10,
			BarberID:       1,
			Date:           testDate,
			AvailableSlots: []types.TimeString{"09:00", "09:30", "10:00"},
		},
	}}
	return NewService(barbers, schedules, nopLogger{}), barbers, schedules
}

// --- тесты ---

func TestUpdateDay(t *testing.T) {
	t.Run("replaces the slot sets and pins the day as exception", func(t *testing.T) {
		svc, _, schedules := newTestEnv()

		resp, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID:         1,
			Date:             testDate,
			AvailableSlots:   []types.TimeString{"09:00", "10:00"},
			UnavailableSlots: []types.TimeString{"09:30"},
		})
		require.NoError(t, err)

		assert.True(t, resp.IsException)
		assert.Equal(t, []types.TimeString{"09:00", "10:00"}, resp.AvailableSlots)
		assert.Equal(t, []types.TimeString{"09:30"}, resp.UnavailableSlots)

		require.Len(t, schedules.updated, 1)
		stored := schedules.updated[0]
		assert.True(t, stored.IsException)
		assert.True(t, stored.IsSlotBlocked("09:30"))
	})

	t.Run("day off clears the available slots", func(t *testing.T) {
		svc, _, schedules := newTestEnv()

		resp, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID: 1,
			Date:     testDate,
			DayOff:   true,
		})
		require.NoError(t, err)

		assert.True(t, resp.DayOff)
		assert.Empty(t, resp.AvailableSlots)
		require.Len(t, schedules.updated, 1)
		assert.True(t, schedules.updated[0].DayOff)
	})

	t.Run("day off with slots is rejected", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID:       1,
			Date:           testDate,
			AvailableSlots: []types.TimeString{"09:00"},
			DayOff:         true,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("slot in both sets is rejected", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID:         1,
			Date:             testDate,
			AvailableSlots:   []types.TimeString{"09:00", "09:30"},
			UnavailableSlots: []types.TimeString{"09:30"},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed slot is rejected", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID:       1,
			Date:           testDate,
			AvailableSlots: []types.TimeString{"9am"},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate slot is rejected", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID:       1,
			Date:           testDate,
			AvailableSlots: []types.TimeString{"09:00", "09:00"},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown barber", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID: 99,
			Date:     testDate,
		})
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})

	t.Run("day not materialized yet", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdateDay(context.Background(), &models.UpdateDayRequest{
			BarberID: 1,
			Date:     testDate.AddDate(0, 1, 0),
		})
		assert.ErrorIs(t, err, ErrScheduleDayNotFound)
	})
}

func TestUpdatePattern(t *testing.T) {
	t.Run("replaces the barber pattern", func(t *testing.T) {
		svc, barbers, _ := newTestEnv()

		pattern := domain.ExtendedWeeklyPattern()
		resp, err := svc.UpdatePattern(context.Background(), &models.UpdatePatternRequest{
			BarberID: 1,
			Pattern:  pattern,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.BarberID)

		stored, ok := barbers.patterns[1]
		require.True(t, ok)
		// Дополнительный завершающий слот 18:00 попал в сетку понедельника
		slots := stored.BaseSlots(time.Monday)
		require.NotEmpty(t, slots)
		assert.Equal(t, types.TimeString("18:00"), slots[len(slots)-1])
	})

	t.Run("empty pattern is rejected", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdatePattern(context.Background(), &models.UpdatePatternRequest{
			BarberID: 1,
			Pattern:  domain.WeeklyPattern{},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("window ending before it starts is rejected", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdatePattern(context.Background(), &models.UpdatePatternRequest{
			BarberID: 1,
			Pattern: domain.WeeklyPattern{
				Windows: map[time.Weekday][]domain.SlotWindow{
					time.Monday: {{Start: "17:00", End: "09:00"}},
				},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed window boundary is rejected", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdatePattern(context.Background(), &models.UpdatePatternRequest{
			BarberID: 1,
			Pattern: domain.WeeklyPattern{
				Windows: map[time.Weekday][]domain.SlotWindow{
					time.Monday: {{Start: "morning", End: "12:00"}},
				},
			},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown barber", func(t *testing.T) {
		svc, _, _ := newTestEnv()

		_, err := svc.UpdatePattern(context.Background(), &models.UpdatePatternRequest{
			BarberID: 99,
			Pattern:  domain.StandardWeeklyPattern(),
		})
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})
}
