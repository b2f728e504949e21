package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/create_booking"
	createClosureHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/create_closure"
	getAvailabilityHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/get_availability"
	getAvailabilityBatchHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/get_availability_batch"
	getBarberBookingsHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/get_barber_bookings"
	getBookingHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/get_user_bookings"
	joinWaitlistHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/join_waitlist"
	removeClosureHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/remove_closure"
	resolveOfferHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/resolve_waitlist_offer"
	runMaterializerHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/run_materializer"
	updateBarberPatternHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/update_barber_pattern"
	updateScheduleDayHandler "github.com/dambystudio/maskio-barber-booking-sub003/internal/api/handlers/update_schedule_day"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/api/middleware"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/config"
	barberRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/barber"
	bookingRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/booking"
	closureRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/closure"
	scheduleRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/schedule"
	waitlistRepo "github.com/dambystudio/maskio-barber-booking-sub003/internal/infra/storage/waitlist"
	notifierClient "github.com/dambystudio/maskio-barber-booking-sub003/internal/integrations/notifier"
	"github.com/dambystudio/maskio-barber-booking-sub003/internal/scheduler"
	availabilityService "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/availability"
	bookingsService "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/bookings"
	closuresService "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/closures"
	scheduleService "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/schedule"
	waitlistService "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist"
	waitlistModels "github.com/dambystudio/maskio-barber-booking-sub003/internal/service/waitlist/models"
	cancelBookingUC "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/cancel_booking"
	createBookingUC "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/create_booking"
	materializeSchedulesUC "github.com/dambystudio/maskio-barber-booking-sub003/internal/usecase/materialize_schedules"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/dbmetrics"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/logger"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/metrics"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/simpletxmanager"
	"github.com/dambystudio/maskio-barber-booking-sub003/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting barbershop scheduling service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Подключаемся к Redis (используется ограничителем частоты запросов)
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		log.Info("Redis client initialized (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	}

	// Инициализируем клиента диспетчера уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		barberRepository   *barberRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		closureRepository  *closureRepo.Repository
		bookingRepository  *bookingRepo.Repository
		waitlistRepository *waitlistRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		barberRepository = barberRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		closureRepository = closureRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		waitlistRepository = waitlistRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		barberRepository = barberRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		closureRepository = closureRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		waitlistRepository = waitlistRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		barberRepository,
		scheduleRepository,
		closureRepository,
		bookingRepository,
		log,
	)
	closuresSvc := closuresService.NewService(
		barberRepository,
		closureRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		barberRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		barberRepository,
		scheduleRepository,
		log,
	)

	waitlistMode := waitlistModels.Mode(cfg.Waitlist.Mode)
	if waitlistMode == "" {
		waitlistMode = waitlistModels.ModeBroadcast
	}
	waitlistSvc := waitlistService.NewService(
		waitlistRepository,
		barberRepository,
		bookingRepository,
		availabilitySvc,
		notifier,
		txMgr,
		log,
		waitlistMode,
		time.Duration(cfg.Waitlist.OfferTTLMinutes)*time.Minute,
	)
	log.Info("Waitlist service initialized (mode=%s, offer_ttl=%dm)",
		waitlistMode, cfg.Waitlist.OfferTTLMinutes)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		txMgr,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		waitlistSvc,
		log,
	)
	materializeUseCase := materializeSchedulesUC.NewUseCase(
		barberRepository,
		scheduleRepository,
		closureRepository,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailabilityBatch := getAvailabilityBatchHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getBarberBookings := getBarberBookingsHandler.NewHandler(bookingsSvc, log)
	createClosure := createClosureHandler.NewHandler(closuresSvc, log)
	removeClosure := removeClosureHandler.NewHandler(closuresSvc, log)
	joinWaitlist := joinWaitlistHandler.NewHandler(waitlistSvc, log)
	resolveOffer := resolveOfferHandler.NewHandler(waitlistSvc, log)
	runMaterializer := runMaterializerHandler.NewHandler(materializeUseCase, log)
	updateScheduleDay := updateScheduleDayHandler.NewHandler(scheduleSvc, log)
	updateBarberPattern := updateBarberPatternHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Ограничитель частоты запросов поверх всех маршрутов
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRedisRateLimiter(
			redisClient,
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowMS)*time.Millisecond,
			cfg.RateLimit.Prefix,
			cfg.RateLimit.FailOpen,
			log,
		)
		r.Use(rateLimiter.Middleware())
		log.Info("Rate limiting enabled (limit=%d, window=%dms, fail_open=%t)",
			cfg.RateLimit.Limit, cfg.RateLimit.WindowMS, cfg.RateLimit.FailOpen)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность слотов барбера на дату
	api.HandleFunc("/barbers/{barberId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Сводка доступности на несколько дат
	api.HandleFunc("/barbers/{barberId}/availability/batch",
		getAvailabilityBatch.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	// Постановка в очередь на полностью занятый день
	protected.HandleFunc("/waitlist", joinWaitlist.Handle).Methods(http.MethodPost)

	// Принятие или отклонение предложения освободившегося слота
	protected.HandleFunc("/waitlist/{entryId}/resolve", resolveOffer.Handle).Methods(http.MethodPost)

	// ============================================================
	// STAFF ROUTES (требуют роль barber или admin)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireStaff)

	// Журнал бронирований барбера
	staff.HandleFunc("/barbers/{barberId}/bookings", getBarberBookings.Handle).Methods(http.MethodGet)

	// Закрытие дня (полное или частичное)
	staff.HandleFunc("/barbers/{barberId}/closures", createClosure.Handle).Methods(http.MethodPost)

	// Снятие закрытия (удаление автозакрытия = исключительное открытие)
	staff.HandleFunc("/barbers/{barberId}/closures", removeClosure.Handle).Methods(http.MethodDelete)

	// Ручное редактирование материализованного дня
	staff.HandleFunc("/barbers/{barberId}/schedule/{date}", updateScheduleDay.Handle).Methods(http.MethodPut)

	// Замена недельного паттерна барбера
	staff.HandleFunc("/barbers/{barberId}/pattern", updateBarberPattern.Handle).Methods(http.MethodPut)

	// Ручной запуск материализатора расписаний
	staff.HandleFunc("/admin/materialize", runMaterializer.Handle).Methods(http.MethodPost)

	// Фоновые задачи: материализация по расписанию и сметание просроченных предложений
	var cronScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		cronScheduler = scheduler.NewScheduler(materializeUseCase, waitlistSvc, log, cfg.Scheduler.WindowDays)
		if err := cronScheduler.Register(cfg.Scheduler.MaterializeCron, cfg.Scheduler.ExpireCron); err != nil {
			log.Fatal("Failed to register scheduled jobs: %v", err)
		}
		cronScheduler.Start()
		log.Info("Scheduled jobs registered (materialize=%q, expire=%q, window_days=%d)",
			cfg.Scheduler.MaterializeCron, cfg.Scheduler.ExpireCron, cfg.Scheduler.WindowDays)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	if cronScheduler != nil {
		cronScheduler.Stop()
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
