package materialize_schedules

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
)

// --- фейки с состоянием: нужны для проверки идемпотентности повторных прогонов ---

type fakeBarberRepo struct {
	barbers []*domain.Barber
}

func (f *fakeBarberRepo) GetActive(context.Context) ([]*domain.Barber, error) {
	return f.barbers, nil
}

type fakeScheduleRepo struct {
	days       map[string]*domain.ScheduleDay
	failOnDate string
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{days: make(map[string]*domain.ScheduleDay)}
}

func dayKey(barberID int64, date time.Time) string {
	return fmt.Sprintf("%d#%s", barberID, date.Format(domain.DateFormat))
}

func (f *fakeScheduleRepo) CreateIfAbsent(_ context.Context, day *domain.ScheduleDay) (bool, error) {
	if f.failOnDate != "" && day.Date.Format(domain.DateFormat) == f.failOnDate {
		return false, errors.New("storage unavailable")
	}
	key := dayKey(day.BarberID, day.Date)
	if _, ok := f.days[key]; ok {
		return false, nil
	}
	f.days[key] = day
	return true, nil
}

func (f *fakeScheduleRepo) GetByBarberAndDate(_ context.Context, barberID int64, date time.Time) (*domain.ScheduleDay, error) {
	day, ok := f.days[dayKey(barberID, date)]
	if !ok {
		return nil, errors.New("not found")
	}
	return day, nil
}

type fakeClosureRepo struct {
	closures map[string]*domain.SpecificClosure
	removed  map[string]bool
}

func newFakeClosureRepo() *fakeClosureRepo {
	return &fakeClosureRepo{
		closures: make(map[string]*domain.SpecificClosure),
		removed:  make(map[string]bool),
	}
}

func closureKey(barberID int64, date time.Time, t domain.ClosureType) string {
	return fmt.Sprintf("%d#%s#%s", barberID, date.Format(domain.DateFormat), t)
}

func (f *fakeClosureRepo) CreateSpecificIfAbsent(_ context.Context, closure *domain.SpecificClosure) (bool, error) {
	key := closureKey(closure.BarberID, closure.Date, closure.Type)
	if _, ok := f.closures[key]; ok {
		return false, nil
	}
	f.closures[key] = closure
	return true, nil
}

func (f *fakeClosureRepo) HasRemovedAuto(_ context.Context, barberID int64, date time.Time, t domain.ClosureType) (bool, error) {
	return f.removed[closureKey(barberID, date, t)], nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func standardBarber(id int64) *domain.Barber {
	return &domain.Barber{ID: id, Name: "Fabio", Active: true, Pattern: domain.StandardWeeklyPattern()}
}

func newTestUseCase(barbers *fakeBarberRepo, schedules *fakeScheduleRepo, closures *fakeClosureRepo, now time.Time) *UseCase {
	uc := NewUseCase(barbers, schedules, closures, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

// --- тесты ---

// Понедельник 2026-08-31: окно в 7 дней накрывает все дни недели ровно по разу
var mondayStart = time.Date(2026, 8, 31, 10, 15, 0, 0, time.UTC)

func TestExecute_CreatesWeekOfSchedules(t *testing.T) {
	schedules := newFakeScheduleRepo()
	closures := newFakeClosureRepo()
	uc := newTestUseCase(&fakeBarberRepo{barbers: []*domain.Barber{standardBarber(1)}}, schedules, closures, mondayStart)

	resp, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
	require.NoError(t, err)

	// Воскресенье пропускается целиком: 6 строк на 7 дней окна
	assert.Equal(t, 6, resp.DaysCreated)
	assert.Equal(t, 0, resp.DaysSkipped)
	assert.Equal(t, 0, resp.Failed)
	assert.Equal(t, 1, resp.Barbers)

	// Понедельник работает только после обеда: одно автозакрытие morning
	assert.Equal(t, 1, resp.ClosuresCreated)

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	closure, ok := closures.closures[closureKey(1, monday, domain.ClosureMorning)]
	require.True(t, ok)
	assert.Equal(t, domain.CreatorSystemAuto, closure.CreatedBy)
}

func TestExecute_SecondRunIsIdempotent(t *testing.T) {
	schedules := newFakeScheduleRepo()
	closures := newFakeClosureRepo()
	uc := newTestUseCase(&fakeBarberRepo{barbers: []*domain.Barber{standardBarber(1)}}, schedules, closures, mondayStart)

	_, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.DaysCreated)
	assert.Equal(t, 6, resp.DaysSkipped)
	assert.Equal(t, 0, resp.ClosuresCreated)
	assert.Len(t, closures.closures, 1)
}

func TestExecute_RemovedAutoClosureNeverRecreated(t *testing.T) {
	schedules := newFakeScheduleRepo()
	closures := newFakeClosureRepo()

	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	closures.removed[closureKey(1, monday, domain.ClosureMorning)] = true

	uc := newTestUseCase(&fakeBarberRepo{barbers: []*domain.Barber{standardBarber(1)}}, schedules, closures, mondayStart)

	resp, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.ClosuresCreated)
	assert.Empty(t, closures.closures)
}

func TestExecute_ExceptionalOpeningSkipsAutoClosure(t *testing.T) {
	schedules := newFakeScheduleRepo()
	closures := newFakeClosureRepo()

	// Строка уже существует и помечена исключительным открытием
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	schedules.days[dayKey(1, monday)] = &domain.ScheduleDay{
		BarberID:    1,
		Date:        monday,
		IsException: true,
	}

	uc := newTestUseCase(&fakeBarberRepo{barbers: []*domain.Barber{standardBarber(1)}}, schedules, closures, mondayStart)

	resp, err := uc.Execute(context.Background(), &Request{WindowDays: 1})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.DaysCreated)
	assert.Equal(t, 1, resp.DaysSkipped)
	assert.Equal(t, 0, resp.ClosuresCreated)
}

func TestExecute_OneFailureDoesNotAbortRun(t *testing.T) {
	schedules := newFakeScheduleRepo()
	schedules.failOnDate = "2026-09-02"
	closures := newFakeClosureRepo()

	uc := newTestUseCase(&fakeBarberRepo{barbers: []*domain.Barber{standardBarber(1)}}, schedules, closures, mondayStart)

	resp, err := uc.Execute(context.Background(), &Request{WindowDays: 7})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Failed)
	assert.Equal(t, 5, resp.DaysCreated)
}

func TestExecute_WindowValidation(t *testing.T) {
	uc := newTestUseCase(&fakeBarberRepo{}, newFakeScheduleRepo(), newFakeClosureRepo(), mondayStart)

	t.Run("zero picks the default window", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{WindowDays: 0})
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultMaterializeWindowDays, resp.WindowDays)
	})

	t.Run("negative window rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{WindowDays: -1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("window over the cap rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{WindowDays: domain.MaxMaterializeWindowDays + 1})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
