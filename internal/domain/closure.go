package domain

import "time"

// ClosureType represents the kind of closure for a date
type ClosureType string

const (
	ClosureFull      ClosureType = "full"
	ClosureMorning   ClosureType = "morning"
	ClosureAfternoon ClosureType = "afternoon"
)

// IsValid проверяет, что тип закрытия входит в закрытый словарь
func (t ClosureType) IsValid() bool {
	return t == ClosureFull || t == ClosureMorning || t == ClosureAfternoon
}

// RecurringClosure еженедельное закрытие барбера на целые дни недели
// Применяется ко всем будущим датам на этих днях недели, пока не переопределено
type RecurringClosure struct {
	ID        int64
	BarberID  int64
	Weekdays  []time.Weekday
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo проверяет, покрывает ли правило указанный день недели
func (rc *RecurringClosure) AppliesTo(weekday time.Weekday) bool {
	for _, wd := range rc.Weekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// SpecificClosure закрытие барбера на конкретную дату
// Имеет приоритет над RecurringClosure и над материализованными слотами ScheduleDay
type SpecificClosure struct {
	ID        int64
	BarberID  int64
	Date      time.Time
	Type      ClosureType
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// IsSystemAuto возвращает true для закрытий, созданных материализатором
// Только такие закрытия допускают семантику "удаление = исключительное открытие"
func (c *SpecificClosure) IsSystemAuto() bool {
	return c.CreatedBy == CreatorSystemAuto
}

// RemovedAutoClosure запись журнала об удалении автоматического закрытия барбером
// Сигнализирует исключительное открытие: материализатор не должен пересоздавать
// закрытие этого типа для этой даты
type RemovedAutoClosure struct {
	ID        int64
	BarberID  int64
	Date      time.Time
	Type      ClosureType
	CreatedAt time.Time
}

// ClosureSource источник решения о закрытии
type ClosureSource string

const (
	SourceNone      ClosureSource = ""
	SourceSpecific  ClosureSource = "specific"
	SourceRecurring ClosureSource = "recurring"
)

// ClosureDecision результат разрешения правил закрытия для пары (барбер, дата)
type ClosureDecision struct {
	Closed bool
	Type   ClosureType
	Source ClosureSource

	// IntegrityWarnings предупреждения о противоречивых данных
	// (например, одновременно есть запись журнала удаления и конфликтующее закрытие)
	// Явное побеждает выведенное, поэтому это предупреждение оператору, а не ошибка
	IntegrityWarnings []string
}

// ResolveClosure вычисляет решение о закрытии по строгому порядку приоритетов:
//  1. SpecificClosure на точную дату (full > совместно morning+afternoon > частичное)
//  2. RecurringClosure по дню недели - только если нет SpecificClosure
//     и нет переопределения (запись журнала удаления или исключительное открытие)
//  3. Иначе - открыто
func ResolveClosure(
	specifics []*SpecificClosure,
	recurring []*RecurringClosure,
	removed []*RemovedAutoClosure,
	date time.Time,
	isException bool,
) ClosureDecision {
	decision := ClosureDecision{}

	// 1. Закрытия на точную дату - высший приоритет
	if len(specifics) > 0 {
		hasFull := false
		hasMorning := false
		hasAfternoon := false

		for _, c := range specifics {
			switch c.Type {
			case ClosureFull:
				hasFull = true
			case ClosureMorning:
				hasMorning = true
			case ClosureAfternoon:
				hasAfternoon = true
			}

			// Явное закрытие при наличии записи журнала удаления того же типа -
			// противоречие данных, явное побеждает
			for _, r := range removed {
				if r.Type == c.Type {
					decision.IntegrityWarnings = append(decision.IntegrityWarnings,
						"specific closure of type "+string(c.Type)+" coexists with a removed-auto-closure ledger entry")
				}
			}
		}

		decision.Closed = true
		decision.Source = SourceSpecific

		switch {
		case hasFull:
			decision.Type = ClosureFull
		case hasMorning && hasAfternoon:
			// Утреннее и дневное закрытия вместе эквивалентны полному
			decision.Type = ClosureFull
		case hasMorning:
			decision.Type = ClosureMorning
		default:
			decision.Type = ClosureAfternoon
		}

		return decision
	}

	// 2. Еженедельные закрытия по дню недели
	weekday := date.Weekday()
	for _, rc := range recurring {
		if !rc.AppliesTo(weekday) {
			continue
		}

		// Исключительное открытие подавляет еженедельное правило на эту дату
		if isException {
			return decision
		}
		for _, r := range removed {
			if r.Type == ClosureFull {
				return decision
			}
		}

		decision.Closed = true
		decision.Type = ClosureFull
		decision.Source = SourceRecurring
		return decision
	}

	// 3. Открыто
	return decision
}
