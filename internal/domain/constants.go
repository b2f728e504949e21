package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot grid constants
const (
	// SlotStepMinutes шаг сетки слотов
	SlotStepMinutes = 30

	// AfternoonBoundaryHour граница утро/день
	// Слоты с часом < 14 считаются утренними, с часом >= 14 - дневными
	// Граница фиксированная и не зависит от фактических окон работы барбера
	AfternoonBoundaryHour = 14
)

// GloballyClosedWeekday день недели, когда закрыт весь салон
const GloballyClosedWeekday = time.Sunday

// Schedule materializer defaults
const (
	// DefaultMaterializeWindowDays длина скользящего окна материализации расписаний
	DefaultMaterializeWindowDays = 60

	// MaxMaterializeWindowDays верхняя граница окна для ручного запуска
	MaxMaterializeWindowDays = 365
)

// CreatorSystemAuto метка создателя для автоматических закрытий, порожденных материализатором
// Только такие закрытия допустимо удалять с записью в журнал removed_auto_closures
const CreatorSystemAuto = "system-auto"

// Business validation constants
const (
	MaxClosureReasonLength      = 500
	MaxCancellationReasonLength = 500
	MaxNotesLength              = 500
	MaxCustomerNameLength       = 200
	MaxBatchDates               = 90
)
