package domain

import "time"

// Barber represents a barber in the system
// Все связи (расписания, закрытия, бронирования) ключуются по ID
// Email - исключительно контактный атрибут, не ключ для join'ов
type Barber struct {
	ID        int64
	Name      string
	Email     string
	Active    bool
	Pattern   WeeklyPattern
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the barber can accept bookings
func (b *Barber) IsBookable() bool {
	return b.Active
}
