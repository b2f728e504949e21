package closures

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	closureRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/closure"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures/models"
)

// --- фейки ---

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

type fakeClosureRepo struct {
	specifics map[string]*domain.SpecificClosure
	recurring []*domain.RecurringClosure
	removed   map[string]*domain.RemovedAutoClosure
	nextID    int64
}

func newFakeClosureRepo() *fakeClosureRepo {
	return &fakeClosureRepo{
		specifics: make(map[string]*domain.SpecificClosure),
		removed:   make(map[string]*domain.RemovedAutoClosure),
	}
}

func key(barberID int64, date time.Time, t domain.ClosureType) string {
	return fmt.Sprintf("%d#%s#%s", barberID, date.Format(domain.DateFormat), t)
}

func (f *fakeClosureRepo) CreateSpecific(_ context.Context, closure *domain.SpecificClosure) (*domain.SpecificClosure, error) {
	k := key(closure.BarberID, closure.Date, closure.Type)
	if _, ok := f.specifics[k]; ok {
		return nil, closureRepo.ErrClosureExists
	}
	f.nextID++
	closure.ID = f.nextID
	f.specifics[k] = closure
	return closure, nil
}

func (f *fakeClosureRepo) GetSpecific(_ context.Context, barberID int64, date time.Time, t domain.ClosureType) (*domain.SpecificClosure, error) {
	closure, ok := f.specifics[key(barberID, date, t)]
	if !ok {
		return nil, closureRepo.ErrClosureNotFound
	}
	return closure, nil
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

func (f *fakeClosureRepo) DeleteSpecific(_ context.Context, barberID int64, date time.Time, t domain.ClosureType) error {
	k := key(barberID, date, t)
	if _, ok := f.specifics[k]; !ok {
		return closureRepo.ErrClosureNotFound
	}
	delete(f.specifics, k)
	return nil
}

func (f *fakeClosureRepo) CreateRemovedAuto(_ context.Context, entry *domain.RemovedAutoClosure) error {
	f.removed[key(entry.BarberID, entry.Date, entry.Type)] = entry
	return nil
}

type fakeScheduleRepo struct {
	exceptions map[string]bool
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{exceptions: make(map[string]bool)}
}

func (f *fakeScheduleRepo) MarkException(_ context.Context, barberID int64, date time.Time) error {
	f.exceptions[fmt.Sprintf("%d#%s", barberID, date.Format(domain.DateFormat))] = true
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- вспомогательное ---

var testDate = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

type testEnv struct {
	svc       *Service
	closures  *fakeClosureRepo
	schedules *fakeScheduleRepo
}

func newTestEnv() *testEnv {
	closures := newFakeClosureRepo()
	schedules := newFakeScheduleRepo()
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{
		1: {ID: 1, Name: "Fabio", Active: true},
	}}

	svc := NewService(barbers, closures, schedules, fakeTxManager{}, nopLogger{})
	return &testEnv{svc: svc, closures: closures, schedules: schedules}
}

func createRequest(t domain.ClosureType) *models.CreateClosureRequest {
	return &models.CreateClosureRequest{
		BarberID:  1,
		Date:      testDate,
		Type:      t,
		Reason:    "ferie",
		CreatedBy: "42",
	}
}

// --- тесты ---

func TestCreate(t *testing.T) {
	t.Run("creates a manual closure", func(t *testing.T) {
		env := newTestEnv()

		resp, err := env.svc.Create(context.Background(), createRequest(domain.ClosureFull))
		require.NoError(t, err)

		assert.Equal(t, "full", resp.Type)
		assert.Equal(t, "42", resp.CreatedBy)
		assert.Len(t, env.closures.specifics, 1)
	})

	t.Run("duplicate closure rejected", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.Create(context.Background(), createRequest(domain.ClosureMorning))
		require.NoError(t, err)

		_, err = env.svc.Create(context.Background(), createRequest(domain.ClosureMorning))
		assert.ErrorIs(t, err, ErrClosureExists)
	})

	t.Run("different types on the same date coexist", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.Create(context.Background(), createRequest(domain.ClosureMorning))
		require.NoError(t, err)

		_, err = env.svc.Create(context.Background(), createRequest(domain.ClosureAfternoon))
		assert.NoError(t, err)
	})

	t.Run("unknown barber", func(t *testing.T) {
		env := newTestEnv()

		req := createRequest(domain.ClosureFull)
		req.BarberID = 99

		_, err := env.svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})

	t.Run("invalid closure type", func(t *testing.T) {
		env := newTestEnv()

		req := createRequest("lunch")
		_, err := env.svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRemove(t *testing.T) {
	t.Run("manual closure is removed without side effects", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.Create(context.Background(), createRequest(domain.ClosureFull))
		require.NoError(t, err)

		resp, err := env.svc.Remove(context.Background(), &models.RemoveClosureRequest{
			BarberID: 1,
			Date:     testDate,
			Type:     domain.ClosureFull,
		})
		require.NoError(t, err)

		assert.False(t, resp.ExceptionalOpening)
		assert.Empty(t, env.closures.specifics)
		assert.Empty(t, env.closures.removed)
		assert.Empty(t, env.schedules.exceptions)
	})

	t.Run("removing a system-auto closure is an exceptional opening", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.closures.CreateSpecific(context.Background(), &domain.SpecificClosure{
			BarberID:  1,
			Date:      testDate,
			Type:      domain.ClosureMorning,
			CreatedBy: domain.CreatorSystemAuto,
		})
		require.NoError(t, err)

		resp, err := env.svc.Remove(context.Background(), &models.RemoveClosureRequest{
			BarberID: 1,
			Date:     testDate,
			Type:     domain.ClosureMorning,
		})
		require.NoError(t, err)

		assert.True(t, resp.ExceptionalOpening)
		assert.Empty(t, env.closures.specifics)

		// Журнал и флаг исключения записаны в той же операции
		_, ok := env.closures.removed[key(1, testDate, domain.ClosureMorning)]
		assert.True(t, ok)
		assert.True(t, env.schedules.exceptions[fmt.Sprintf("1#%s", testDate.Format(domain.DateFormat))])
	})

	t.Run("missing closure", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.svc.Remove(context.Background(), &models.RemoveClosureRequest{
			BarberID: 1,
			Date:     testDate,
			Type:     domain.ClosureFull,
		})
		assert.ErrorIs(t, err, ErrClosureNotFound)
	})
}

func TestList(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Create(context.Background(), createRequest(domain.ClosureMorning))
	require.NoError(t, err)
	env.closures.recurring = append(env.closures.recurring, &domain.RecurringClosure{
		ID:       1,
		BarberID: 1,
		Weekdays: []time.Weekday{time.Monday},
	})

	resp, err := env.svc.List(context.Background(), 1, testDate)
	require.NoError(t, err)

	assert.Len(t, resp.Specific, 1)
	assert.Len(t, resp.Recurring, 1)
}
