package domain

import (
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// SlotWindow окно рабочего времени внутри дня
// Генерирует слоты от Start до End включительно с шагом StepMinutes
type SlotWindow struct {
	Start       types.TimeString `json:"start"`
	End         types.TimeString `json:"end"`
	StepMinutes int              `json:"step_minutes,omitempty"`
}

// Slots генерирует упорядоченный список слотов окна
// Закрывающая граница окна включается всегда, даже если шаг сетки её перескакивает
func (w SlotWindow) Slots() []types.TimeString {
	step := w.StepMinutes
	if step <= 0 {
		step = SlotStepMinutes
	}

	if w.End.IsBefore(w.Start) {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)
	current := w.Start

	for current.IsBefore(w.End) {
		slots = append(slots, current)
		next, err := current.AddMinutes(step)
		if err != nil {
			return slots
		}
		// Шаг через полночь заворачивается на "00:00" и зациклил бы обход
		if !current.IsBefore(next) {
			break
		}
		current = next
	}

	slots = append(slots, w.End)
	return slots
}

// WeeklyPattern декларативное недельное расписание барбера: день недели -> окна работы
// Особенности конкретного барбера (полдня в понедельник, дополнительный слот 18:00)
// выражаются данными паттерна, а не ветвлениями в коде
type WeeklyPattern struct {
	Windows map[time.Weekday][]SlotWindow `json:"windows"`
}

// BaseSlots возвращает упорядоченный список базовых слотов на день недели
// Чистая функция: без I/O, детерминированная, определена для всех семи дней
// Для глобально закрытого дня и дней без окон возвращает пустой список
func (p WeeklyPattern) BaseSlots(weekday time.Weekday) []types.TimeString {
	if weekday == GloballyClosedWeekday {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0)
	for _, window := range p.Windows[weekday] {
		slots = append(slots, window.Slots()...)
	}
	return slots
}

// IsOpen проверяет, открыт ли барбер в указанный день недели по базовому паттерну
func (p WeeklyPattern) IsOpen(weekday time.Weekday) bool {
	return len(p.BaseSlots(weekday)) > 0
}

// AutoClosureType вычисляет стоячее автоматическое закрытие, вытекающее из паттерна
// Возвращает nil, если закрытие не требуется (обе половины дня рабочие)
// Для глобально закрытого дня возвращает nil - материализатор такие дни пропускает целиком
func (p WeeklyPattern) AutoClosureType(weekday time.Weekday) *ClosureType {
	if weekday == GloballyClosedWeekday {
		return nil
	}

	slots := p.BaseSlots(weekday)
	if len(slots) == 0 {
		t := ClosureFull
		return &t
	}

	hasMorning := false
	hasAfternoon := false
	for _, slot := range slots {
		if slot.Hour() < AfternoonBoundaryHour {
			hasMorning = true
		} else {
			hasAfternoon = true
		}
	}

	switch {
	case !hasMorning:
		t := ClosureMorning
		return &t
	case !hasAfternoon:
		t := ClosureAfternoon
		return &t
	default:
		return nil
	}
}

// StandardWeeklyPattern типовой недельный паттерн салона:
// понедельник - только вторая половина дня, вторник-пятница - полный день,
// суббота - утро и смещенное дневное окно, воскресенье - выходной
func StandardWeeklyPattern() WeeklyPattern {
	return WeeklyPattern{
		Windows: map[time.Weekday][]SlotWindow{
			time.Monday: {
				{Start: "15:00", End: "17:30"},
			},
			time.Tuesday: {
				{Start: "09:00", End: "12:30"},
				{Start: "15:00", End: "17:30"},
			},
			time.Wednesday: {
				{Start: "09:00", End: "12:30"},
				{Start: "15:00", End: "17:30"},
			},
			time.Thursday: {
				{Start: "09:00", End: "12:30"},
				{Start: "15:00", End: "17:30"},
			},
			time.Friday: {
				{Start: "09:00", End: "12:30"},
				{Start: "15:00", End: "17:30"},
			},
			time.Saturday: {
				{Start: "09:00", End: "12:30"},
				{Start: "14:30", End: "17:00"},
			},
		},
	}
}

// ExtendedWeeklyPattern вариант стандартного паттерна с дополнительным
// завершающим слотом 18:00 во все рабочие дни
func ExtendedWeeklyPattern() WeeklyPattern {
	pattern := StandardWeeklyPattern()

	extended := make(map[time.Weekday][]SlotWindow, len(pattern.Windows))
	for weekday, windows := range pattern.Windows {
		updated := make([]SlotWindow, len(windows))
		copy(updated, windows)
		extended[weekday] = append(updated, SlotWindow{Start: "18:00", End: "18:00"})
	}

	return WeeklyPattern{Windows: extended}
}
