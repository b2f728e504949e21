package closures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dambystudio/maskio-barber-booking-sub003/internal/domain"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	closureRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/closure"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures/models"
)

// Service сервис управления закрытиями барберов
// Создание и удаление закрытий на конкретные даты, включая семантику
// исключительного открытия при удалении автоматического закрытия
type Service struct {
	barberRepo   BarberRepository
	closureRepo  ClosureRepository
	scheduleRepo ScheduleRepository
	txManager    TxManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса закрытий
func NewService(
	barbers BarberRepository,
	closures ClosureRepository,
	schedules ScheduleRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		barberRepo:   barbers,
		closureRepo:  closures,
		scheduleRepo: schedules,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает закрытие барбера на конкретную дату
// Дубликат по ключу (барбер, дата, тип) отклоняется
func (s *Service) Create(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error) {
	s.logger.Info("Create: creating %s closure for barber=%d date=%s",
		req.Type, req.BarberID, req.Date.Format(domain.DateFormat))

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.getBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	created, err := s.closureRepo.CreateSpecific(ctx, req.ToDomainClosure())
	if err != nil {
		if errors.Is(err, closureRepo.ErrClosureExists) {
			s.logger.Warn("Create: %s closure already exists for barber=%d date=%s",
				req.Type, req.BarberID, req.Date.Format(domain.DateFormat))
			return nil, ErrClosureExists
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created closure id=%d", created.ID)
	return models.FromDomainClosure(created), nil
}

// Remove удаляет закрытие на конкретную дату
// Удаление автоматического закрытия (created_by = system-auto) трактуется как
// исключительное открытие: в той же сериализуемой транзакции пишется запись
// журнала removed_auto_closures и день помечается исключением, чтобы ни
// материализатор, ни еженедельные правила не закрыли дату заново.
// Голое удаление автоматического закрытия невозможно.
func (s *Service) Remove(ctx context.Context, req *models.RemoveClosureRequest) (*models.RemoveClosureResponse, error) {
	s.logger.Info("Remove: removing %s closure for barber=%d date=%s",
		req.Type, req.BarberID, req.Date.Format(domain.DateFormat))

	if req.BarberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: closure type must be one of full, morning, afternoon", ErrInvalidInput)
	}

	if _, err := s.getBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	resp := &models.RemoveClosureResponse{
		BarberID: req.BarberID,
		Date:     req.Date.Format(domain.DateFormat),
		Type:     string(req.Type),
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		closure, err := s.closureRepo.GetSpecific(ctx, req.BarberID, req.Date, req.Type)
		if err != nil {
			if errors.Is(err, closureRepo.ErrClosureNotFound) {
				return ErrClosureNotFound
			}
			return fmt.Errorf("%w: Remove - failed to get closure: %v", ErrInternal, err)
		}

		if closure.IsSystemAuto() {
			entry := &domain.RemovedAutoClosure{
				BarberID: req.BarberID,
				Date:     req.Date,
				Type:     req.Type,
			}
			if err := s.closureRepo.CreateRemovedAuto(ctx, entry); err != nil {
				return fmt.Errorf("%w: Remove - failed to record removed auto closure: %v", ErrInternal, err)
			}
			if err := s.scheduleRepo.MarkException(ctx, req.BarberID, req.Date); err != nil {
				return fmt.Errorf("%w: Remove - failed to mark schedule exception: %v", ErrInternal, err)
			}
			resp.ExceptionalOpening = true
		}

		if err := s.closureRepo.DeleteSpecific(ctx, req.BarberID, req.Date, req.Type); err != nil {
			if errors.Is(err, closureRepo.ErrClosureNotFound) {
				return ErrClosureNotFound
			}
			return fmt.Errorf("%w: Remove - failed to delete closure: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrClosureNotFound) {
			s.logger.Warn("Remove: %s closure not found for barber=%d date=%s",
				req.Type, req.BarberID, req.Date.Format(domain.DateFormat))
			return nil, ErrClosureNotFound
		}
		s.logger.Error("Remove: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Remove - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: successfully removed closure for barber=%d date=%s (exceptional opening: %v)",
		req.BarberID, req.Date.Format(domain.DateFormat), resp.ExceptionalOpening)
	return resp, nil
}

// List возвращает закрытия барбера: точечные на указанную дату
// и все еженедельные правила
func (s *Service) List(ctx context.Context, barberID int64, date time.Time) (*models.ClosureListResponse, error) {
	s.logger.Info("List: fetching closures for barber=%d date=%s", barberID, date.Format(domain.DateFormat))

	if barberID <= 0 {
		return nil, fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := s.getBarber(ctx, barberID); err != nil {
		return nil, err
	}

	specific, err := s.closureRepo.GetSpecificByBarberAndDate(ctx, barberID, date)
	if err != nil {
		s.logger.Error("List: failed to get specific closures for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: List - failed to get specific closures: %v", ErrInternal, err)
	}

	recurring, err := s.closureRepo.GetRecurringByBarber(ctx, barberID)
	if err != nil {
		s.logger.Error("List: failed to get recurring closures for barber=%d: %v", barberID, err)
		return nil, fmt.Errorf("%w: List - failed to get recurring closures: %v", ErrInternal, err)
	}

	return models.FromDomainClosures(specific, recurring), nil
}

// Вспомогательные методы

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

func (s *Service) validateCreate(req *models.CreateClosureRequest) error {
	if req.BarberID <= 0 {
		return fmt.Errorf("%w: barberID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !req.Type.IsValid() {
		return fmt.Errorf("%w: closure type must be one of full, morning, afternoon", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxClosureReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxClosureReasonLength)
	}
	if req.CreatedBy == "" {
		return fmt.Errorf("%w: createdBy is required", ErrInvalidInput)
	}

	return nil
}
