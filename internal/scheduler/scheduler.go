package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	materializeSchedules "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/materialize_schedules"
)

const jobTimeout = 5 * time.Minute

type MaterializeSchedulesUseCase interface {
	Execute(ctx context.Context, req *materializeSchedules.Request) (*materializeSchedules.Response, error)
}

type WaitlistService interface {
	ExpireOffers(ctx context.Context, now time.Time) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает фоновые задачи по cron расписанию:
// материализацию расписаний и снятие просроченных предложений листа ожидания
type Scheduler struct {
	cron         *cron.Cron
	materializer MaterializeSchedulesUseCase
	waitlist     WaitlistService
	logger       Logger
	windowDays   int
}

func NewScheduler(
	materializer MaterializeSchedulesUseCase,
	waitlist WaitlistService,
	logger Logger,
	windowDays int,
) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		materializer: materializer,
		waitlist:     waitlist,
		logger:       logger,
		windowDays:   windowDays,
	}
}

// Register добавляет задачи по заданным cron выражениям (стандартный 5-польный формат)
func (s *Scheduler) Register(materializeSpec, expireSpec string) error {
	if _, err := s.cron.AddFunc(materializeSpec, s.runMaterializer); err != nil {
		return fmt.Errorf("scheduler: invalid materialize spec %q: %w", materializeSpec, err)
	}

	if _, err := s.cron.AddFunc(expireSpec, s.runExpireOffers); err != nil {
		return fmt.Errorf("scheduler: invalid expire spec %q: %w", expireSpec, err)
	}

	return nil
}

// Start запускает планировщик в фоне
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler - Started")
}

// Stop останавливает планировщик и дожидается завершения текущих задач
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler - Stopped")
}

func (s *Scheduler) runMaterializer() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := s.materializer.Execute(ctx, &materializeSchedules.Request{
		WindowDays: s.windowDays,
	})
	if err != nil {
		s.logger.Error("Scheduler - Materialization run failed: %v", err)
		return
	}

	s.logger.Info("Scheduler - Materialization run completed: barbers=%d, created=%d, skipped=%d, closures=%d, failed=%d",
		result.Barbers, result.DaysCreated, result.DaysSkipped, result.ClosuresCreated, result.Failed)
}

func (s *Scheduler) runExpireOffers() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	expired, err := s.waitlist.ExpireOffers(ctx, time.Now())
	if err != nil {
		s.logger.Error("Scheduler - Offer expiry run failed: %v", err)
		return
	}

	if expired > 0 {
		s.logger.Info("Scheduler - Expired waitlist offers: count=%d", expired)
	}
}
