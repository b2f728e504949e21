package domain

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// ScheduleDay материализованное расписание барбера на конкретную дату
// Создается и продлевается материализатором, читается резолвером доступности
// Одна строка на пару (барбер, дата), запись через upsert
type ScheduleDay struct {
	ID       int64
	BarberID int64
	Date     time.Time

	// AvailableSlots упорядоченный набор базовых слотов дня
	AvailableSlots []types.TimeString

	// UnavailableSlots слоты, заблокированные вручную без записи о закрытии
	UnavailableSlots []types.TimeString

	// DayOff день полностью нерабочий
	DayOff bool

	// IsException явный флаг исключительного открытия: день открыт, несмотря на то,
	// что недельный паттерн его обычно закрывает
	// Материализатор не пересоздает автоматические закрытия для таких дней
	IsException bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSlot проверяет, входит ли время в базовый набор слотов дня
func (d *ScheduleDay) HasSlot(t types.TimeString) bool {
	for _, slot := range d.AvailableSlots {
		if slot == t {
			return true
		}
	}
	return false
}

// IsSlotBlocked проверяет, заблокирован ли слот вручную
func (d *ScheduleDay) IsSlotBlocked(t types.TimeString) bool {
	for _, slot := range d.UnavailableSlots {
		if slot == t {
			return true
		}
	}
	return false
}
