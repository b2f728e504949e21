package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	bookingRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/booking"
	waitlistRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/waitlist"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist/models"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/types"
)

// Service сервис листа ожидания
// Ведет FIFO очередь на полностью занятые дни и реагирует на освобождение
// слотов в одном из двух режимов: broadcast или single_offer
type Service struct {
	waitlistRepo WaitlistRepository
	barberRepo   BarberRepository
	bookingRepo  BookingRepository
	resolver     AvailabilityResolver
	notifier     Notifier
	txManager    TxManager
	logger       Logger

	mode     models.Mode
	offerTTL time.Duration
}

// pendingOffer уведомление о выданном предложении, отправляется после коммита
type pendingOffer struct {
	entry     *domain.WaitlistEntry
	slot      types.TimeString
	token     string
	expiresAt time.Time
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	waitlist WaitlistRepository,
	barbers BarberRepository,
	bookings BookingRepository,
	resolver AvailabilityResolver,
	notifier Notifier,
	txManager TxManager,
	logger Logger,
	mode models.Mode,
	offerTTL time.Duration,
) *Service {
	return &Service{
		waitlistRepo: waitlist,
		barberRepo:   barbers,
		bookingRepo:  bookings,
		resolver:     resolver,
		notifier:     notifier,
		txManager:    txManager,
		logger:       logger,
		mode:         mode,
		offerTTL:     offerTTL,
	}
}

// Join ставит клиента в лист ожидания на полностью занятый день
// День со свободными слотами отклоняется: клиент может забронировать напрямую
func (s *Service) Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error) {
	s.logger.Info("Join: barber=%d date=%s customer=%q",
		req.BarberID, req.Date.Format(domain.DateFormat), req.CustomerName)

	if err := s.validateJoin(req); err != nil {
		s.logger.Warn("Join: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.getBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	availability, err := s.resolver.Resolve(ctx, req.BarberID, req.Date)
	if err != nil {
		s.logger.Error("Join: failed to resolve availability for barber=%d date=%s: %v",
			req.BarberID, req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Join - failed to resolve availability: %v", ErrInternal, err)
	}
	if availability.HasSlots() {
		s.logger.Warn("Join: day %s for barber=%d still has available slots",
			req.Date.Format(domain.DateFormat), req.BarberID)
		return nil, ErrDayNotFull
	}

	entry, err := s.waitlistRepo.Create(ctx, req.ToDomainEntry())
	if err != nil {
		s.logger.Error("Join: repository error: %v", err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Join: created entry id=%d at position=%d", entry.ID, entry.Position)
	return models.FromDomainEntry(entry), nil
}

// HandleSlotFreed обрабатывает событие освобождения слота после отмены бронирования
// Единственный триггер рассылки по листу ожидания
// Ошибки доставки уведомлений логируются и не прерывают обработку
func (s *Service) HandleSlotFreed(ctx context.Context, event domain.SlotFreedEvent) (*models.SlotFreedReport, error) {
	s.logger.Info("HandleSlotFreed: barber=%d date=%s time=%s (mode=%s)",
		event.BarberID, event.Date.Format(domain.DateFormat), event.Time, s.mode)

	report := &models.SlotFreedReport{Mode: s.mode}

	entries, err := s.waitlistRepo.GetWaitingByBarberAndDate(ctx, event.BarberID, event.Date)
	if err != nil {
		s.logger.Error("HandleSlotFreed: failed to get waiting entries: %v", err)
		return nil, fmt.Errorf("%w: HandleSlotFreed - failed to get waiting entries: %v", ErrInternal, err)
	}
	if len(entries) == 0 {
		s.logger.Debug("HandleSlotFreed: no waiting entries for barber=%d date=%s",
			event.BarberID, event.Date.Format(domain.DateFormat))
		return report, nil
	}

	switch s.mode {
	case models.ModeSingleOffer:
		var offer *pendingOffer
		err = s.txManager.Do(ctx, func(ctx context.Context) error {
			offer, err = s.issueOffer(ctx, entries[0], event.Time)
			return err
		})
		if err != nil {
			s.logger.Error("HandleSlotFreed: failed to issue offer: %v", err)
			return nil, fmt.Errorf("%w: HandleSlotFreed - failed to issue offer: %v", ErrInternal, err)
		}

		s.sendOffer(ctx, offer)
		report.Offered = 1

	default:
		err = s.txManager.Do(ctx, func(ctx context.Context) error {
			for _, entry := range entries {
				if err := s.waitlistRepo.UpdateStatus(ctx, entry.ID, domain.WaitlistNotified); err != nil {
					return err
				}
			}
			return s.waitlistRepo.CompactPositions(ctx, event.BarberID, event.Date)
		})
		if err != nil {
			s.logger.Error("HandleSlotFreed: failed to mark entries notified: %v", err)
			return nil, fmt.Errorf("%w: HandleSlotFreed - failed to mark entries notified: %v", ErrInternal, err)
		}

		for _, entry := range entries {
			if err := s.notifier.NotifySlotFreed(ctx, entry, event.Time); err != nil {
				s.logger.Warn("HandleSlotFreed: failed to notify entry id=%d: %v", entry.ID, err)
			}
		}
		report.Notified = len(entries)
	}

	s.logger.Info("HandleSlotFreed: notified=%d offered=%d for barber=%d date=%s",
		report.Notified, report.Offered, event.BarberID, event.Date.Format(domain.DateFormat))
	return report, nil
}

// ResolveOffer разрешает предложение или уведомление по записи листа ожидания
// Одобрение создает бронирование через страж конфликтов; отказ или истечение
// продвигает предложение к следующей записи в режиме single_offer
func (s *Service) ResolveOffer(ctx context.Context, req *models.ResolveOfferRequest) (*models.ResolveOfferResponse, error) {
	s.logger.Info("ResolveOffer: entry=%d approve=%v", req.EntryID, req.Approve)

	if req.EntryID <= 0 {
		return nil, fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	var (
		resp      *models.ResolveOfferResponse
		nextOffer *pendingOffer
	)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		entry, err := s.waitlistRepo.GetByID(ctx, req.EntryID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: ResolveOffer - failed to get entry: %v", ErrInternal, err)
		}

		slot, err := s.checkResolvable(entry, req)
		if err != nil {
			return err
		}

		resp = &models.ResolveOfferResponse{EntryID: entry.ID}

		if req.Approve {
			// Время бронирования проверяется через резолвер: слот должен входить
			// в базовую сетку дня и быть доступным с учетом закрытий и блокировок
			availability, err := s.resolver.Resolve(ctx, entry.BarberID, entry.Date)
			if err != nil {
				return fmt.Errorf("%w: ResolveOffer - failed to resolve availability: %v", ErrInternal, err)
			}
			if !availability.IsAvailable(slot) {
				return ErrSlotNotAvailable
			}

			booking, err := s.bookingRepo.Create(ctx, bookingFromEntry(entry, slot))
			if err != nil {
				if errors.Is(err, bookingRepo.ErrSlotTaken) {
					return ErrSlotTaken
				}
				return fmt.Errorf("%w: ResolveOffer - failed to create booking: %v", ErrInternal, err)
			}
			if err := s.waitlistRepo.UpdateStatus(ctx, entry.ID, domain.WaitlistApproved); err != nil {
				return fmt.Errorf("%w: ResolveOffer - failed to update status: %v", ErrInternal, err)
			}

			resp.Status = string(domain.WaitlistApproved)
			resp.BookingID = &booking.ID
			return nil
		}

		if err := s.waitlistRepo.UpdateStatus(ctx, entry.ID, domain.WaitlistDeclined); err != nil {
			return fmt.Errorf("%w: ResolveOffer - failed to update status: %v", ErrInternal, err)
		}
		if err := s.waitlistRepo.CompactPositions(ctx, entry.BarberID, entry.Date); err != nil {
			return fmt.Errorf("%w: ResolveOffer - failed to compact positions: %v", ErrInternal, err)
		}
		resp.Status = string(domain.WaitlistDeclined)

		// Отказ в режиме single_offer продвигает предложение дальше по очереди
		if s.mode == models.ModeSingleOffer && entry.Status == domain.WaitlistOffered {
			nextOffer, err = s.advanceOffer(ctx, entry.BarberID, entry.Date, slot)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEntryNotFound),
			errors.Is(err, ErrNoOffer),
			errors.Is(err, ErrOfferExpired),
			errors.Is(err, ErrInvalidToken),
			errors.Is(err, ErrSlotTaken),
			errors.Is(err, ErrSlotNotAvailable),
			errors.Is(err, ErrInvalidInput):
			s.logger.Warn("ResolveOffer: entry=%d rejected: %v", req.EntryID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("ResolveOffer: entry=%d failed: %v", req.EntryID, err)
			return nil, err
		default:
			s.logger.Error("ResolveOffer: entry=%d transaction failed: %v", req.EntryID, err)
			return nil, fmt.Errorf("%w: ResolveOffer - transaction failed: %v", ErrInternal, err)
		}
	}

	if nextOffer != nil {
		s.sendOffer(ctx, nextOffer)
	}

	s.logger.Info("ResolveOffer: entry=%d resolved to %s", req.EntryID, resp.Status)
	return resp, nil
}

// ExpireOffers переводит просроченные предложения в expired и продвигает
// предложение к следующей записи; запускается фоновой задачей
func (s *Service) ExpireOffers(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.waitlistRepo.GetExpiredOffers(ctx, now)
	if err != nil {
		s.logger.Error("ExpireOffers: failed to get expired offers: %v", err)
		return 0, fmt.Errorf("%w: ExpireOffers - failed to get expired offers: %v", ErrInternal, err)
	}
	if len(expired) == 0 {
		return 0, nil
	}

	processed := 0
	var offers []*pendingOffer

	for _, entry := range expired {
		entry := entry
		err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
			if err := s.waitlistRepo.UpdateStatus(ctx, entry.ID, domain.WaitlistExpired); err != nil {
				return err
			}
			if err := s.waitlistRepo.CompactPositions(ctx, entry.BarberID, entry.Date); err != nil {
				return err
			}

			if entry.OfferTime != nil {
				offer, err := s.advanceOffer(ctx, entry.BarberID, entry.Date, *entry.OfferTime)
				if err != nil {
					return err
				}
				if offer != nil {
					offers = append(offers, offer)
				}
			}
			return nil
		})
		if err != nil {
			// Одна неудачная запись не останавливает обработку остальных
			s.logger.Error("ExpireOffers: failed to expire entry id=%d: %v", entry.ID, err)
			continue
		}
		processed++
	}

	for _, offer := range offers {
		s.sendOffer(ctx, offer)
	}

	s.logger.Info("ExpireOffers: expired %d of %d offers", processed, len(expired))
	return processed, nil
}

// Вспомогательные методы

// issueOffer выдает предложение записи: uuid токен, время слота, срок действия
func (s *Service) issueOffer(ctx context.Context, entry *domain.WaitlistEntry, slot types.TimeString) (*pendingOffer, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.offerTTL)

	if err := s.waitlistRepo.SetOffer(ctx, entry.ID, token, slot, expiresAt); err != nil {
		return nil, err
	}

	return &pendingOffer{
		entry:     entry,
		slot:      slot,
		token:     token,
		expiresAt: expiresAt,
	}, nil
}

// advanceOffer выдает предложение голове очереди, если она есть
func (s *Service) advanceOffer(ctx context.Context, barberID int64, date time.Time, slot types.TimeString) (*pendingOffer, error) {
	waiting, err := s.waitlistRepo.GetWaitingByBarberAndDate(ctx, barberID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get waiting entries: %v", ErrInternal, err)
	}
	if len(waiting) == 0 {
		return nil, nil
	}

	offer, err := s.issueOffer(ctx, waiting[0], slot)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to issue offer: %v", ErrInternal, err)
	}
	return offer, nil
}

// sendOffer отправляет уведомление о предложении после коммита транзакции
func (s *Service) sendOffer(ctx context.Context, offer *pendingOffer) {
	if offer == nil {
		return
	}
	if err := s.notifier.NotifyOffer(ctx, offer.entry, offer.slot, offer.token, offer.expiresAt); err != nil {
		s.logger.Warn("failed to notify offer for entry id=%d: %v", offer.entry.ID, err)
	}
}

// checkResolvable проверяет, что запись допускает разрешение, и возвращает слот бронирования
func (s *Service) checkResolvable(entry *domain.WaitlistEntry, req *models.ResolveOfferRequest) (types.TimeString, error) {
	switch entry.Status {
	case domain.WaitlistOffered:
		if entry.OfferToken == nil || req.Token == nil || *req.Token != *entry.OfferToken {
			return "", ErrInvalidToken
		}
		if entry.OfferExpiresAt != nil && !entry.OfferExpiresAt.After(time.Now()) {
			return "", ErrOfferExpired
		}
		if entry.OfferTime == nil {
			return "", fmt.Errorf("%w: offered entry id=%d has no offer time", ErrInternal, entry.ID)
		}
		return *entry.OfferTime, nil

	case domain.WaitlistNotified:
		// В режиме broadcast время слота выбирает клиент
		if req.Approve && req.Time == nil {
			return "", fmt.Errorf("%w: time is required to approve a notified entry", ErrInvalidInput)
		}
		if req.Time != nil {
			if err := req.Time.Validate(); err != nil {
				return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return *req.Time, nil
		}
		return "", nil

	default:
		return "", ErrNoOffer
	}
}

func (s *Service) getBarber(ctx context.Context, barberID int64) (*domain.Barber, error) {
	barber, err := s.barberRepo.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barberRepo.ErrBarberNotFound) {
			s.logger.Warn("barber id=%d not found", barberID)
			return nil, ErrBarberNotFound
		}
		s.logger.Error("failed to get barber id=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
	}
	return barber, nil
}

// bookingFromEntry собирает бронирование из записи листа ожидания
func bookingFromEntry(entry *domain.WaitlistEntry, slot types.TimeString) *domain.Booking {
	return &domain.Booking{
		BarberID:      entry.BarberID,
		Date:          entry.Date,
		StartTime:     slot,
		CustomerName:  entry.CustomerName,
		CustomerPhone: entry.CustomerPhone,
		CustomerEmail: entry.CustomerEmail,
		UserID:        entry.UserID,
		Status:        domain.StatusConfirmed,
	}
}

func (s *Service) validateJoin(req *models.JoinRequest) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName must be at most %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if req.CustomerPhone == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	return nil
}
