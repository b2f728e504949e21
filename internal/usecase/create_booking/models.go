package create_booking

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Request модель запроса на создание бронирования
// ActingRole различает клиента и персонал: запись, созданная персоналом от имени
// клиента (walk-in), не привязывается к учетной записи сотрудника
type Request struct {
	ActorUserID int64             // ID инициатора запроса
	ActingRole  domain.ActingRole // Роль инициатора (customer, barber, admin)

	BarberID  int64            // ID барбера
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")

	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента
	CustomerEmail *string // Email клиента (опционально, только контакт)
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64            // ID созданного бронирования
	BarberID  int64            // ID барбера
	Date      time.Time        // Дата бронирования
	StartTime types.TimeString // Время начала
	Status    string           // Статус бронирования

	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента
	CustomerEmail *string // Email клиента
	UserID        *int64  // Владелец бронирования (nil для walk-in)
	Notes         *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
