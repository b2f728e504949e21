package materialize_schedules

import "time"

// Request модель запроса на материализацию расписаний
// WindowDays = 0 означает окно по умолчанию
type Request struct {
	WindowDays int
}

// Response итог прогона материализатора
type Response struct {
	From       time.Time // Первая дата окна
	To         time.Time // Последняя дата окна (включительно)
	WindowDays int       // Фактическая длина окна

	Barbers         int // Количество обработанных барберов
	DaysCreated     int // Создано новых строк расписания
	DaysSkipped     int // Строки уже существовали
	ClosuresCreated int // Создано автоматических закрытий
	Failed          int // Пар (барбер, дата), завершившихся ошибкой
}
