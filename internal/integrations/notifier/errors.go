package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от диспетчера
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrServiceDegraded возвращается при недоступности диспетчера
	// Вызывающий код логирует и продолжает: доставка уведомлений best-effort
	ErrServiceDegraded = errors.New("notifier unavailable: graceful degradation applied")
)
