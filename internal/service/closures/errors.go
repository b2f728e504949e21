package closures

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrClosureNotFound возвращается, когда закрытие не найдено
	ErrClosureNotFound = errors.New("closure not found")

	// ErrClosureExists возвращается при попытке создать дублирующее закрытие
	ErrClosureExists = errors.New("closure already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("closures.service: internal error")
)
