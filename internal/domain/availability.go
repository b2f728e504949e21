package domain

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// SlotAvailability итоговое состояние одного слота после применения всех правил
type SlotAvailability struct {
	Time      types.TimeString
	Available bool
}

// DayAvailability результат разрешения доступности барбера на одну дату
// Список слотов всегда хронологически упорядочен
type DayAvailability struct {
	BarberID int64
	Date     time.Time
	Slots    []SlotAvailability
}

// AvailableCount возвращает количество доступных слотов дня
func (d *DayAvailability) AvailableCount() int {
	count := 0
	for _, slot := range d.Slots {
		if slot.Available {
			count++
		}
	}
	return count
}

// HasSlots returns true if at least one slot of the day is available
func (d *DayAvailability) HasSlots() bool {
	return d.AvailableCount() > 0
}

// IsAvailable проверяет, что время входит в слоты дня и слот доступен
// Время вне сетки слотов считается недоступным
func (d *DayAvailability) IsAvailable(t types.TimeString) bool {
	for _, slot := range d.Slots {
		if slot.Time == t {
			return slot.Available
		}
	}
	return false
}

// AvailableTimes возвращает только доступные времена в хронологическом порядке
func (d *DayAvailability) AvailableTimes() []types.TimeString {
	times := make([]types.TimeString, 0, len(d.Slots))
	for _, slot := range d.Slots {
		if slot.Available {
			times = append(times, slot.Time)
		}
	}
	return times
}

// IsMorningSlot проверяет, что слот утренний (час < 14)
func IsMorningSlot(t types.TimeString) bool {
	return t.Hour() < AfternoonBoundaryHour
}

// IsAfternoonSlot проверяет, что слот дневной (час >= 14)
func IsAfternoonSlot(t types.TimeString) bool {
	return t.Hour() >= AfternoonBoundaryHour
}
