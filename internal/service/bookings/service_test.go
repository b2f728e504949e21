package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	bookingRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/booking"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/bookings/models"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/ptr"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// --- фейки ---

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.UserID == nil || *b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) GetByBarberWithFilter(_ context.Context, filter domain.BarberBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BarberID != filter.BarberID {
			continue
		}
		if !filter.IncludeInactive && b.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && b.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.Date.After(*filter.EndDate) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- вспомогательное ---

var (
	customer = models.Actor{UserID: 7, Role: domain.RoleCustomer}
	staff    = models.Actor{UserID: 100, Role: domain.RoleBarber}
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := time.Parse(domain.DateFormat, value)
	require.NoError(t, err)
	return date
}

func newTestService(t *testing.T) (*Service, *fakeBookingRepo) {
	t.Helper()

	bookings := &fakeBookingRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:            1,
			BarberID:      1,
			Date:          mustDate(t, "2026-09-01"),
			StartTime:     types.TimeString("10:00"),
			CustomerName:  "Mario Rossi",
			CustomerPhone: "+393331234567",
			UserID:        ptr.Ptr(int64(7)),
			Status:        domain.StatusConfirmed,
		},
		2: {
			ID:            2,
			BarberID:      1,
			Date:          mustDate(t, "2026-09-02"),
			StartTime:     types.TimeString("11:00"),
			CustomerName:  "Luca Bianchi",
			CustomerPhone: "+393337654321",
			UserID:        ptr.Ptr(int64(8)),
			Status:        domain.StatusCancelled,
		},
		3: {
			// Walk-in, создано персоналом без привязки к пользователю
			ID:            3,
			BarberID:      1,
			Date:          mustDate(t, "2026-09-02"),
			StartTime:     types.TimeString("15:00"),
			CustomerName:  "Cliente di passaggio",
			CustomerPhone: "+393330000000",
			Status:        domain.StatusConfirmed,
		},
	}}
	barbers := &fakeBarberRepo{barbers: map[int64]*domain.Barber{
		1: {ID: 1, Name: "Fabio", Active: true},
	}}

	return NewService(bookings, barbers, nopLogger{}), bookings
}

// --- тесты ---

func TestGetByID(t *testing.T) {
	t.Run("owner sees own booking", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetByID(context.Background(), 1, customer)
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2026-09-01", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("customer cannot see foreign booking", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetByID(context.Background(), 2, customer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("customer cannot see walk-in booking", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetByID(context.Background(), 3, customer)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff sees any booking", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetByID(context.Background(), 3, staff)
		require.NoError(t, err)
		assert.Nil(t, resp.UserID)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetByID(context.Background(), 99, staff)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetByID(context.Background(), 0, staff)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetUserBookings(t *testing.T) {
	t.Run("customer gets own bookings", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:  customer,
			UserID: 7,
		})
		require.NoError(t, err)

		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, int64(1), resp.Bookings[0].ID)
	})

	t.Run("customer cannot list foreign bookings", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:  customer,
			UserID: 8,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staff lists any user", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:  staff,
			UserID: 8,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("status filter", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:  staff,
			UserID: 8,
			Status: ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Bookings)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			Actor:  customer,
			UserID: 7,
			Status: ptr.Ptr("finished"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetBarberBookings(t *testing.T) {
	t.Run("staff gets active bookings for period", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetBarberBookings(context.Background(), &models.GetBarberBookingsRequest{
			Actor:     staff,
			BarberID:  1,
			StartDate: ptr.Ptr(mustDate(t, "2026-09-01")),
			EndDate:   ptr.Ptr(mustDate(t, "2026-09-07")),
		})
		require.NoError(t, err)

		// Отмененное бронирование не попадает в выдачу по умолчанию
		require.Len(t, resp.Bookings, 2)
	})

	t.Run("include inactive returns cancelled too", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetBarberBookings(context.Background(), &models.GetBarberBookingsRequest{
			Actor:           staff,
			BarberID:        1,
			IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 3)
	})

	t.Run("customer is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetBarberBookings(context.Background(), &models.GetBarberBookingsRequest{
			Actor:    customer,
			BarberID: 1,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown barber", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetBarberBookings(context.Background(), &models.GetBarberBookingsRequest{
			Actor:    staff,
			BarberID: 99,
		})
		assert.ErrorIs(t, err, ErrBarberNotFound)
	})

	t.Run("inverted date range", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetBarberBookings(context.Background(), &models.GetBarberBookingsRequest{
			Actor:     staff,
			BarberID:  1,
			StartDate: ptr.Ptr(mustDate(t, "2026-09-07")),
			EndDate:   ptr.Ptr(mustDate(t, "2026-09-01")),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
