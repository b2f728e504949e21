package schedule

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrScheduleDayNotFound возвращается, когда день расписания не материализован
	ErrScheduleDayNotFound = errors.New("schedule day not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule.service: internal error")
)
