package domain

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid проверяет, что статус входит в допустимый словарь
func (s BookingStatus) IsValid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}

// ActingRole роль инициатора операции с бронированием
type ActingRole string

const (
	RoleCustomer ActingRole = "customer"
	RoleBarber   ActingRole = "barber"
	RoleAdmin    ActingRole = "admin"
)

// IsStaff возвращает true для ролей персонала салона
func (r ActingRole) IsStaff() bool {
	return r == RoleBarber || r == RoleAdmin
}

// Booking represents an appointment booking in the system
// Инвариант: для фиксированной тройки (барбер, дата, время) может существовать
// не более одного неотмененного бронирования - это авторитетно обеспечивает
// частичный уникальный индекс в БД
type Booking struct {
	ID        int64
	BarberID  int64
	Date      time.Time
	StartTime types.TimeString

	CustomerName  string
	CustomerPhone string
	CustomerEmail *string

	// UserID владелец бронирования - всегда реальный клиент либо nil для walk-in,
	// никогда не сотрудник, создавший запись от имени клиента
	// Иначе сотрудник ошибочно блокируется от второй записи в тот же день
	UserID *int64

	Status BookingStatus
	Notes  *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// BarberBookingsFilter фильтр для получения бронирований барбера
type BarberBookingsFilter struct {
	BarberID        int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
