package cancel_booking

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID   int64             // ID бронирования
	ActorUserID int64             // ID инициатора запроса
	ActingRole  domain.ActingRole // Роль инициатора (customer, barber, admin)
	Reason      string            // Причина отмены (опционально)
}

// Response модель ответа на отмену бронирования
type Response struct {
	ID          int64            // ID бронирования
	BarberID    int64            // ID барбера
	Date        time.Time        // Дата бронирования
	StartTime   types.TimeString // Освободившийся слот
	Status      string           // Новый статус (cancelled)
	CancelledAt time.Time        // Время отмены

	// WaitlistNotified количество уведомленных записей листа ожидания
	// (0, если очередь пуста или рассылка не удалась)
	WaitlistNotified int
}
