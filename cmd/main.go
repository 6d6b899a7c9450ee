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

	appendRemarkHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/append_remark"
	approveBookingHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/create_booking"
	deleteCalendarConfigHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/delete_calendar_config"
	getActivityFeedHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/get_activity_feed"
	getBookingHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/get_booking"
	getCalendarDayHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/get_calendar_day"
	getCalendarDefaultsHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/get_calendar_defaults"
	getOverbookedHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/get_overbooked"
	listBookingsHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/list_bookings"
	markActivityReadHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/mark_activity_read"
	overrideStatusHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/override_status"
	rejectBookingHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/reject_booking"
	resetBookingHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/reset_booking"
	updateCalendarDefaultsHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/update_calendar_defaults"
	upsertCalendarConfigHandler "github.com/m04kA/Trek-AdmissionService/internal/api/handlers/upsert_calendar_config"
	"github.com/m04kA/Trek-AdmissionService/internal/api/middleware"
	"github.com/m04kA/Trek-AdmissionService/internal/config"
	activityReadRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/activityread"
	bookingRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/calendar"
	defaultsRepo "github.com/m04kA/Trek-AdmissionService/internal/infra/storage/defaults"
	activityService "github.com/m04kA/Trek-AdmissionService/internal/service/activity"
	bookingsService "github.com/m04kA/Trek-AdmissionService/internal/service/bookings"
	calendarService "github.com/m04kA/Trek-AdmissionService/internal/service/calendar"
	appendRemarkUC "github.com/m04kA/Trek-AdmissionService/internal/usecase/append_remark"
	approveBookingUC "github.com/m04kA/Trek-AdmissionService/internal/usecase/approve_booking"
	"github.com/m04kA/Trek-AdmissionService/pkg/dbmetrics"
	"github.com/m04kA/Trek-AdmissionService/pkg/logger"
	"github.com/m04kA/Trek-AdmissionService/pkg/metrics"
	"github.com/m04kA/Trek-AdmissionService/pkg/simpletxmanager"
	"github.com/m04kA/Trek-AdmissionService/pkg/txmanager"
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

	log.Info("Starting Trek-AdmissionService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		calendarRepository     *calendarRepo.Repository
		defaultsRepository     *defaultsRepo.Repository
		activityReadRepository *activityReadRepo.Repository
	)

	// Интерфейс transaction manager для usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		calendarRepository = calendarRepo.NewRepository(wrappedDB)
		defaultsRepository = defaultsRepo.NewRepository(wrappedDB)
		activityReadRepository = activityReadRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		calendarRepository = calendarRepo.NewRepository(db)
		defaultsRepository = defaultsRepo.NewRepository(db)
		activityReadRepository = activityReadRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	calendarSvc := calendarService.NewService(
		calendarRepository,
		defaultsRepository,
		bookingRepository,
		log,
	)
	activitySvc := activityService.NewService(
		bookingRepository,
		activityReadRepository,
		activityService.Policy{
			RecentWindow: time.Duration(cfg.Activity.RecentWindowDays) * 24 * time.Hour,
			UpdateDelta:  time.Duration(cfg.Activity.UpdateDeltaSeconds) * time.Second,
		},
		log,
	)

	// Инициализируем use cases
	var approvalRecorder approveBookingUC.OutcomeRecorder = approveBookingUC.NopRecorder{}
	var overbookedRecorder getOverbookedHandler.OverbookedRecorder = getOverbookedHandler.NopRecorder{}
	if cfg.Metrics.Enabled {
		approvalRecorder = metricsCollector
		overbookedRecorder = metricsCollector
	}

	approveBookingUseCase := approveBookingUC.NewUseCase(
		bookingRepository,
		defaultsRepository,
		calendarSvc.Resolver(),
		txMgr,
		approvalRecorder,
		cfg.Admission.SerializeApprovals,
		time.Duration(cfg.Admission.CapacityCheckTimeout)*time.Second,
		log,
	)

	appendRemarkUseCase := appendRemarkUC.NewUseCase(bookingRepository, txMgr, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(approveBookingUseCase, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	resetBooking := resetBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	overrideStatus := overrideStatusHandler.NewHandler(bookingSvc, log)
	appendRemark := appendRemarkHandler.NewHandler(appendRemarkUseCase, log)
	getCalendarDay := getCalendarDayHandler.NewHandler(calendarSvc, log)
	upsertCalendarConfig := upsertCalendarConfigHandler.NewHandler(calendarSvc, log)
	deleteCalendarConfig := deleteCalendarConfigHandler.NewHandler(calendarSvc, log)
	getCalendarDefaults := getCalendarDefaultsHandler.NewHandler(calendarSvc, log)
	updateCalendarDefaults := updateCalendarDefaultsHandler.NewHandler(calendarSvc, log)
	getOverbooked := getOverbookedHandler.NewHandler(calendarSvc, overbookedRecorder, log)
	getActivityFeed := getActivityFeedHandler.NewHandler(activitySvc, log)
	markActivityRead := markActivityReadHandler.NewHandler(activitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание заявки на трек (со стороны заявителя)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена заявки (со стороны заявителя)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заявки ---
	// Список заявок с фильтрами
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Заявка по ID с замечаниями
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Одобрение заявки с проверкой ёмкости
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPatch)

	// Отклонение заявки
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)

	// Возврат заявки в очередь на рассмотрение
	protected.HandleFunc("/bookings/{bookingId}/reset", resetBooking.Handle).Methods(http.MethodPatch)

	// Административный override статуса (разблокировка approved)
	protected.HandleFunc("/bookings/{bookingId}/status", overrideStatus.Handle).Methods(http.MethodPatch)

	// Добавление замечания к заявке
	protected.HandleFunc("/bookings/{bookingId}/remarks", appendRemark.Handle).Methods(http.MethodPost)

	// --- Календарь ёмкости ---
	// Глобальные настройки ёмкости (регистрируем раньше /{date})
	protected.HandleFunc("/calendar/defaults", getCalendarDefaults.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/calendar/defaults", updateCalendarDefaults.Handle).Methods(http.MethodPut)

	// Сверка одобренной загрузки с ёмкостью
	protected.HandleFunc("/calendar/overbooked", getOverbooked.Handle).Methods(http.MethodGet)

	// Сводка по дате
	protected.HandleFunc("/calendar/{date}", getCalendarDay.Handle).Methods(http.MethodGet)

	// Переопределение даты
	protected.HandleFunc("/calendar/{date}", upsertCalendarConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/calendar/{date}", deleteCalendarConfig.Handle).Methods(http.MethodDelete)

	// --- Лента активности ---
	protected.HandleFunc("/activity", getActivityFeed.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/activity/read", markActivityRead.Handle).Methods(http.MethodPost)

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
