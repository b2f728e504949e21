package waitlist

import "errors"

var (
	// ErrBarberNotFound возвращается, когда барбер не найден
	ErrBarberNotFound = errors.New("barber not found")

	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist entry not found")

	// ErrDayNotFull возвращается при попытке встать в очередь на день со свободными слотами
	ErrDayNotFull = errors.New("day still has available slots")

	// ErrNoOffer возвращается, когда у записи нет активного предложения или уведомления
	ErrNoOffer = errors.New("entry has no pending offer")

	// ErrOfferExpired возвращается, когда срок предложения истек
	ErrOfferExpired = errors.New("offer has expired")

	// ErrInvalidToken возвращается при несовпадении токена предложения
	ErrInvalidToken = errors.New("invalid offer token")

	// ErrSlotTaken возвращается, когда предложенный слот уже занят
	ErrSlotTaken = errors.New("slot already taken")

	// ErrSlotNotAvailable возвращается, когда выбранное время не входит
	// в доступные слоты дня
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("waitlist.service: internal error")
)
