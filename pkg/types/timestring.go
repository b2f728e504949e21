package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeFormat формат времени слота (HH:MM)
const TimeFormat = "15:04"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")
)

// TimeString строковое представление времени слота в формате "HH:MM"
// Используется вместо time.Time для слотов, так как слот привязан к дате отдельно
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(TimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return TimeString(t.Format(TimeFormat)), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата времени
func (t TimeString) Validate() error {
	_, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

// parse парсит время, паникует быть не должно - вызывающий обязан валидировать заранее
func (t TimeString) parse() (time.Time, error) {
	return time.Parse(TimeFormat, string(t))
}

// Hour возвращает час (0-23), -1 при некорректном формате
func (t TimeString) Hour() int {
	parsed, err := t.parse()
	if err != nil {
		return -1
	}
	return parsed.Hour()
}

// Minute возвращает минуты (0-59), -1 при некорректном формате
func (t TimeString) Minute() int {
	parsed, err := t.parse()
	if err != nil {
		return -1
	}
	return parsed.Minute()
}

// IsBefore проверяет, что время строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter проверяет, что время строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
// Возвращает ошибку при некорректном исходном формате
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := t.parse()
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(TimeFormat)), nil
}
