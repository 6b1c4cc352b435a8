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
	"github.com/robfig/cron/v3"

	cancelBookingHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/create_booking"
	createScheduleExceptionHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/create_schedule_exception"
	deleteScheduleExceptionHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/delete_schedule_exception"
	getBookingHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/get_client_bookings"
	getDaySlotsHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/get_day_slots"
	getMonthAvailabilityHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/get_month_availability"
	getStaffBookingsHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/get_staff_bookings"
	getWeeklyScheduleHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/get_weekly_schedule"
	listScheduleExceptionsHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/list_schedule_exceptions"
	replaceWeeklyScheduleHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/replace_weekly_schedule"
	runAutoCompletionHandler "github.com/dkarlovs/SBM-ScheduleService/internal/api/handlers/run_auto_completion"
	"github.com/dkarlovs/SBM-ScheduleService/internal/api/middleware"
	"github.com/dkarlovs/SBM-ScheduleService/internal/config"
	auditRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/audit"
	bookingRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/booking"
	scheduleRepo "github.com/dkarlovs/SBM-ScheduleService/internal/infra/storage/schedule"
	notifyServiceClient "github.com/dkarlovs/SBM-ScheduleService/internal/integrations/notifyservice"
	bookingsService "github.com/dkarlovs/SBM-ScheduleService/internal/service/bookings"
	scheduleService "github.com/dkarlovs/SBM-ScheduleService/internal/service/schedule"
	applyScheduleExceptionUC "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/apply_schedule_exception"
	createBookingUC "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/create_booking"
	getDaySlotsUC "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/get_day_slots"
	getMonthAvailabilityUC "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/get_month_availability"
	runAutoCompletionUC "github.com/dkarlovs/SBM-ScheduleService/internal/usecase/run_auto_completion"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/dbmetrics"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/logger"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/metrics"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/simpletxmanager"
	"github.com/dkarlovs/SBM-ScheduleService/pkg/txmanager"
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

	log.Info("Starting SBM-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Все гражданские даты и времена сервиса живут в Europe/Riga
	timeProvider, err := getDaySlotsUC.NewRigaTimeProvider()
	if err != nil {
		log.Fatal("Failed to load service timezone: %v", err)
	}

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

	// Инициализируем клиент сервиса уведомлений
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Notify service client initialized (url=%s, timeout=%ds)",
		cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		auditRepository    *auditRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Интерфейсы метрик use case'ов: передаем коллектор только когда он есть
	var (
		daySlotsMetrics     getDaySlotsUC.Metrics
		cascadeMetrics      applyScheduleExceptionUC.Metrics
		autoCompleteMetrics runAutoCompletionUC.Metrics
	)
	if cfg.Metrics.Enabled {
		daySlotsMetrics = metricsCollector
		cascadeMetrics = metricsCollector
		autoCompleteMetrics = metricsCollector
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		auditRepository,
		timeProvider,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		timeProvider,
		daySlotsMetrics,
		log,
	)

	getMonthAvailabilityUseCase := getMonthAvailabilityUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		timeProvider,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		timeProvider,
		log,
	)

	applyScheduleExceptionUseCase := applyScheduleExceptionUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		auditRepository,
		notifyClient,
		txMgr,
		timeProvider,
		cascadeMetrics,
		log,
	)

	runAutoCompletionUseCase := runAutoCompletionUC.NewUseCase(
		bookingRepository,
		auditRepository,
		timeProvider,
		autoCompleteMetrics,
		log,
		runAutoCompletionUC.Config{
			WindowDays:    cfg.AutoComplete.WindowDays,
			BatchSize:     cfg.AutoComplete.BatchSize,
			BufferSeconds: cfg.AutoComplete.BufferSeconds,
		},
	)

	// Инициализируем handlers
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	getMonthAvailability := getMonthAvailabilityHandler.NewHandler(getMonthAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getWeeklySchedule := getWeeklyScheduleHandler.NewHandler(scheduleSvc, log)
	replaceWeeklySchedule := replaceWeeklyScheduleHandler.NewHandler(scheduleSvc, log)
	createScheduleException := createScheduleExceptionHandler.NewHandler(applyScheduleExceptionUseCase, log)
	listScheduleExceptions := listScheduleExceptionsHandler.NewHandler(scheduleSvc, log)
	deleteScheduleException := deleteScheduleExceptionHandler.NewHandler(scheduleSvc, log)
	runAutoCompletion := runAutoCompletionHandler.NewHandler(runAutoCompletionUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждому запросу присваивается идентификатор для трассировки
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Служебный запуск авто-завершения (вне /api/v1, закрыт на уровне сети)
	r.HandleFunc("/internal/auto-completion/run", runAutoCompletion.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты профессионала на день
	api.HandleFunc("/professionals/{professionalId}/day-slots",
		getDaySlots.Handle).Methods(http.MethodGet)

	// Доступность профессионала по дням месяца
	api.HandleFunc("/professionals/{professionalId}/month-availability",
		getMonthAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Жизненный цикл бронирования
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)

	// --- Кабинет профессионала ---
	// Бронирования профессионала с фильтрацией
	protected.HandleFunc("/professionals/{professionalId}/bookings", getStaffBookings.Handle).Methods(http.MethodGet)

	// Недельное расписание сотрудника
	protected.HandleFunc("/staff/{staffId}/weekly-schedule", getWeeklySchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/weekly-schedule", replaceWeeklySchedule.Handle).Methods(http.MethodPut)

	// Исключения расписания
	protected.HandleFunc("/professionals/{professionalId}/schedule-exceptions",
		createScheduleException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/professionals/{professionalId}/schedule-exceptions",
		listScheduleExceptions.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/schedule-exceptions/{exceptionId}",
		deleteScheduleException.Handle).Methods(http.MethodDelete)

	// Запускаем джобу авто-завершения (если включена)
	var cronRunner *cron.Cron
	if cfg.AutoComplete.Enabled {
		cronRunner = cron.New()
		_, err := cronRunner.AddFunc(cfg.AutoComplete.Schedule, func() {
			result, err := runAutoCompletionUseCase.Execute(context.Background())
			if err != nil {
				log.Error("Auto-completion run failed: %v", err)
				return
			}
			if result.ProcessedCount > 0 || len(result.FailedIDs) > 0 {
				log.Info("Auto-completion run finished: completed=%d, failed=%d",
					result.ProcessedCount, len(result.FailedIDs))
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule auto-completion job: %v", err)
		}
		cronRunner.Start()
		log.Info("Auto-completion job scheduled (%s)", cfg.AutoComplete.Schedule)
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

	// Останавливаем джобу авто-завершения, дожидаясь текущего прохода
	if cronRunner != nil {
		cronCtx := cronRunner.Stop()
		<-cronCtx.Done()
		log.Info("Auto-completion job stopped")
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
