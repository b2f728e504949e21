package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	bookingRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/booking"
	availabilitySvc "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// --- фейки ---

// fakeBookingRepo хранит бронирования и повторяет семантику частичного
// уникального индекса: второй активный владелец слота получает ErrSlotTaken
type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.BarberID == booking.BarberID && b.Date.Equal(booking.Date) &&
			b.StartTime == booking.StartTime && b.IsActive() {
			return nil, bookingRepo.ErrSlotTaken
		}
	}

	f.nextID++
	booking.ID = f.nextID
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

// fakeResolver выдает заранее заданную доступность и вычитает бронирования фейкового репозитория
type fakeResolver struct {
	repo      *fakeBookingRepo
	baseSlots []types.TimeString
	err       error
}

func (f *fakeResolver) Resolve(_ context.Context, barberID int64, date time.Time) (*domain.DayAvailability, error) {
	if f.err != nil {
		return nil, f.err
	}

	booked := make(map[types.TimeString]bool)
	for _, b := range f.repo.bookings {
		if b.BarberID == barberID && b.Date.Equal(date) && b.IsActive() {
			booked[b.StartTime] = true
		}
	}

	day := &domain.DayAvailability{BarberID: barberID, Date: date}
	for _, slot := range f.baseSlots {
		day.Slots = append(day.Slots, domain.SlotAvailability{Time: slot, Available: !booked[slot]})
	}
	return day, nil
}

// fakeTxManager выполняет функцию без транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// --- вспомогательное ---

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo *fakeBookingRepo, resolver *fakeResolver) *UseCase {
	uc := NewUseCase(repo, resolver, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		ActorUserID:   7,
		ActingRole:    domain.RoleCustomer,
		BarberID:      1,
		Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		CustomerName:  "Mario Rossi",
		CustomerPhone: "+39 333 1234567",
	}
}

// --- тесты ---

func TestExecute_CreatesBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	resolver := &fakeResolver{repo: repo, baseSlots: []types.TimeString{"09:00", "10:00", "10:30"}}
	uc := newTestUseCase(repo, resolver)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, int64(7), *resp.UserID)
}

func TestExecute_DuplicateSlotRejected(t *testing.T) {
	repo := &fakeBookingRepo{}
	resolver := &fakeResolver{repo: repo, baseSlots: []types.TimeString{"10:00", "10:30"}}
	uc := newTestUseCase(repo, resolver)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второй запрос на тот же слот отклоняется резолвером
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Соседний слот остается доступным
	req := validRequest()
	req.StartTime = "10:30"
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_RaceLoserGetsSlotTaken(t *testing.T) {
	// Резолвер видит слот свободным, но индекс в БД уже занят:
	// проигравшая гонку транзакция получает ErrSlotTaken
	repo := &fakeBookingRepo{}
	repo.bookings = append(repo.bookings, &domain.Booking{
		BarberID:  1,
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		Status:    domain.StatusConfirmed,
	})
	// Резолвер намеренно не вычитает существующее бронирование
	resolver := &fakeResolver{repo: &fakeBookingRepo{}, baseSlots: []types.TimeString{"10:00"}}
	uc := newTestUseCase(repo, resolver)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_CancelledSlotCanBeRebooked(t *testing.T) {
	repo := &fakeBookingRepo{}
	repo.bookings = append(repo.bookings, &domain.Booking{
		BarberID:  1,
		Date:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		Status:    domain.StatusCancelled,
	})
	resolver := &fakeResolver{repo: repo, baseSlots: []types.TimeString{"10:00"}}
	uc := newTestUseCase(repo, resolver)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_StaffWalkInHasNoOwner(t *testing.T) {
	repo := &fakeBookingRepo{}
	resolver := &fakeResolver{repo: repo, baseSlots: []types.TimeString{"10:00", "10:30"}}
	uc := newTestUseCase(repo, resolver)

	req := validRequest()
	req.ActingRole = domain.RoleBarber

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.UserID)

	// Второй walk-in того же сотрудника в тот же день проходит
	req2 := validRequest()
	req2.ActingRole = domain.RoleBarber
	req2.StartTime = "10:30"
	req2.CustomerName = "Luca Bianchi"

	_, err = uc.Execute(context.Background(), req2)
	assert.NoError(t, err)
}

func TestExecute_UnknownSlotRejected(t *testing.T) {
	repo := &fakeBookingRepo{}
	resolver := &fakeResolver{repo: repo, baseSlots: []types.TimeString{"09:00"}}
	uc := newTestUseCase(repo, resolver)

	req := validRequest()
	req.StartTime = "13:00"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PastDateRejected(t *testing.T) {
	repo := &fakeBookingRepo{}
	resolver := &fakeResolver{repo: repo, baseSlots: []types.TimeString{"10:00"}}
	uc := newTestUseCase(repo, resolver)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ResolverErrorsMapped(t *testing.T) {
	tests := []struct {
		name        string
		resolverErr error
		expected    error
	}{
		{name: "unknown barber", resolverErr: availabilitySvc.ErrBarberNotFound, expected: ErrBarberNotFound},
		{name: "inactive barber", resolverErr: availabilitySvc.ErrBarberInactive, expected: ErrBarberInactive},
		{name: "invalid input", resolverErr: availabilitySvc.ErrInvalidInput, expected: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBookingRepo{}
			resolver := &fakeResolver{repo: repo, err: tt.resolverErr}
			uc := newTestUseCase(repo, resolver)

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExecute_InputValidation(t *testing.T) {
	repo := &fakeBookingRepo{}
	resolver := &fakeResolver{repo: repo, baseSlots: []types.TimeString{"10:00"}}
	uc := newTestUseCase(repo, resolver)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing customer name", mutate: func(r *Request) { r.CustomerName = "" }},
		{name: "missing phone", mutate: func(r *Request) { r.CustomerPhone = "" }},
		{name: "bad time format", mutate: func(r *Request) { r.StartTime = "25:99" }},
		{name: "non-positive barber", mutate: func(r *Request) { r.BarberID = 0 }},
		{name: "non-positive actor", mutate: func(r *Request) { r.ActorUserID = 0 }},
		{name: "oversized name", mutate: func(r *Request) {
			name := ""
			for i := 0; i <= domain.MaxCustomerNameLength; i++ {
				name += "a"
			}
			r.CustomerName = name
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput, fmt.Sprintf("case %q", tt.name))
		})
	}
}
