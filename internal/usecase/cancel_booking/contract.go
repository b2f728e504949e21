package cancel_booking

import (
	"context"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	waitlistModels "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// WaitlistService интерфейс сервиса листа ожидания
// Получает событие освобождения слота после успешной отмены
type WaitlistService interface {
	HandleSlotFreed(ctx context.Context, event domain.SlotFreedEvent) (*waitlistModels.SlotFreedReport, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
