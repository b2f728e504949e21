package create_booking

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("create_booking: barber not found")

	// ErrBarberInactive возвращается, когда барбер не принимает бронирования
	ErrBarberInactive = errors.New("create_booking: barber is not active")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен
	// (закрытие, ручная блокировка или слот вне сетки дня)
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
