package availability

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrBarberInactive возвращается, когда барбер деактивирован
	ErrBarberInactive = errors.New("barber is not active")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTooManyDates возвращается, когда пакетный запрос превышает лимит дат
	ErrTooManyDates = errors.New("too many dates requested")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability service: internal error")
)
