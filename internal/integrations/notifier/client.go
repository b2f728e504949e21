package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего диспетчера уведомлений
// Доставка best-effort: любая ошибка сворачивается в ErrServiceDegraded,
// бизнес-операции никогда не откатываются из-за недоставленного уведомления
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента диспетчера уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NotifySlotFreed уведомляет запись листа ожидания об освободившемся слоте
func (c *Client) NotifySlotFreed(ctx context.Context, entry *domain.WaitlistEntry, slot types.TimeString) error {
	notification := c.baseNotification(TypeSlotFreed, entry, slot)

	if err := c.send(ctx, notification); err != nil {
		c.log.Error("NotifySlotFreed: dispatcher unavailable for entry id=%d: %v", entry.ID, err)
		return fmt.Errorf("%w: entry=%d, error=%v", ErrServiceDegraded, entry.ID, err)
	}

	c.log.Info("NotifySlotFreed: delivered to entry id=%d (barber=%d, %s %s)",
		entry.ID, entry.BarberID, entry.Date.Format(domain.DateFormat), slot)
	return nil
}

// NotifyOffer уведомляет голову очереди о персональном предложении слота
func (c *Client) NotifyOffer(ctx context.Context, entry *domain.WaitlistEntry, slot types.TimeString, token string, expiresAt time.Time) error {
	notification := c.baseNotification(TypeSlotOffer, entry, slot)
	notification.OfferToken = token
	notification.OfferExpiresAt = &expiresAt

	if err := c.send(ctx, notification); err != nil {
		c.log.Error("NotifyOffer: dispatcher unavailable for entry id=%d: %v", entry.ID, err)
		return fmt.Errorf("%w: entry=%d, error=%v", ErrServiceDegraded, entry.ID, err)
	}

	c.log.Info("NotifyOffer: delivered to entry id=%d (barber=%d, %s %s, expires %s)",
		entry.ID, entry.BarberID, entry.Date.Format(domain.DateFormat), slot, expiresAt.Format(time.RFC3339))
	return nil
}

// send отправляет уведомление диспетчеру
func (c *Client) send(ctx context.Context, notification *Notification) error {
	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// baseNotification собирает общую часть уведомления из записи листа ожидания
func (c *Client) baseNotification(notificationType string, entry *domain.WaitlistEntry, slot types.TimeString) *Notification {
	notification := &Notification{
		Type:          notificationType,
		CustomerName:  entry.CustomerName,
		CustomerPhone: entry.CustomerPhone,
		BarberID:      entry.BarberID,
		Date:          entry.Date.Format(domain.DateFormat),
		Time:          slot.String(),
	}
	if entry.CustomerEmail != nil {
		notification.CustomerEmail = *entry.CustomerEmail
	}
	return notification
}
