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

	cancelSessionHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/cancel_session"
	checkAvailabilityHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/check_availability"
	createSessionHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/create_session"
	getDaySlotsHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/get_day_slots"
	getMemberSessionsHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/get_member_sessions"
	getScheduleConfigHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/get_schedule_config"
	getSessionHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/get_session"
	getStudioSessionsHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/get_studio_sessions"
	rescheduleSessionHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/reschedule_session"
	updateScheduleConfigHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/update_schedule_config"
	updateSessionStatusHandler "github.com/m04kA/GMS-SessionService/internal/api/handlers/update_session_status"
	"github.com/m04kA/GMS-SessionService/internal/api/middleware"
	"github.com/m04kA/GMS-SessionService/internal/config"
	configRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/scheduleconfig"
	sessionRepo "github.com/m04kA/GMS-SessionService/internal/infra/storage/session"
	memberServiceClient "github.com/m04kA/GMS-SessionService/internal/integrations/memberservice"
	studioServiceClient "github.com/m04kA/GMS-SessionService/internal/integrations/studioservice"
	scheduleConfigService "github.com/m04kA/GMS-SessionService/internal/service/scheduleconfig"
	sessionsService "github.com/m04kA/GMS-SessionService/internal/service/sessions"
	checkAvailabilityUC "github.com/m04kA/GMS-SessionService/internal/usecase/check_availability"
	createSessionUC "github.com/m04kA/GMS-SessionService/internal/usecase/create_session"
	getDaySlotsUC "github.com/m04kA/GMS-SessionService/internal/usecase/get_day_slots"
	rescheduleSessionUC "github.com/m04kA/GMS-SessionService/internal/usecase/reschedule_session"
	"github.com/m04kA/GMS-SessionService/pkg/dbmetrics"
	"github.com/m04kA/GMS-SessionService/pkg/logger"
	"github.com/m04kA/GMS-SessionService/pkg/metrics"
	"github.com/m04kA/GMS-SessionService/pkg/simpletxmanager"
	"github.com/m04kA/GMS-SessionService/pkg/txmanager"
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

	log.Info("Starting GMS-SessionService...")
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

	// Инициализируем интеграционных клиентов
	studioClient := studioServiceClient.NewClient(
		cfg.StudioService.URL,
		time.Duration(cfg.StudioService.Timeout)*time.Second,
		log,
	)
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StudioService=%s timeout=%ds, MemberService=%s timeout=%ds)",
		cfg.StudioService.URL, cfg.StudioService.Timeout, cfg.MemberService.URL, cfg.MemberService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		sessionRepository *sessionRepo.Repository
		configRepository  *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		studioClient,
		log,
	)
	scheduleConfigSvc := scheduleConfigService.NewService(
		configRepository,
		studioClient,
		log,
	)

	// Инициализируем use cases
	createSessionUseCase := createSessionUC.NewUseCase(
		sessionRepository,
		configRepository,
		studioClient,
		memberClient,
		txMgr,
		log,
	)

	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		sessionRepository,
		configRepository,
		studioClient,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		sessionRepository,
		studioClient,
		log,
	)

	rescheduleSessionUseCase := rescheduleSessionUC.NewUseCase(
		sessionRepository,
		configRepository,
		studioClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(createSessionUseCase, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	rescheduleSession := rescheduleSessionHandler.NewHandler(rescheduleSessionUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	cancelSession := cancelSessionHandler.NewHandler(sessionSvc, log)
	updateSessionStatus := updateSessionStatusHandler.NewHandler(sessionSvc, log)
	getMemberSessions := getMemberSessionsHandler.NewHandler(sessionSvc, log)
	getStudioSessions := getStudioSessionsHandler.NewHandler(sessionSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Сетка слотов студии на день
	api.HandleFunc("/studios/{studioId}/day-slots", getDaySlots.Handle).Methods(http.MethodGet)

	// Проверка доступности интервала на тренажёре
	api.HandleFunc("/studios/{studioId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Эффективная конфигурация расписания
	api.HandleFunc("/studios/{studioId}/schedule-config", getScheduleConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Занятия ---
	// Запись на занятие
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	// Получение занятия по ID
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)

	// Отмена занятия
	protected.HandleFunc("/sessions/{sessionId}/cancel", cancelSession.Handle).Methods(http.MethodPatch)

	// Перенос занятия
	protected.HandleFunc("/sessions/{sessionId}/reschedule", rescheduleSession.Handle).Methods(http.MethodPatch)

	// Изменение статуса занятия (для менеджеров)
	protected.HandleFunc("/sessions/{sessionId}/status", updateSessionStatus.Handle).Methods(http.MethodPatch)

	// История занятий участника
	protected.HandleFunc("/members/{memberId}/sessions", getMemberSessions.Handle).Methods(http.MethodGet)

	// --- Управление студией (для менеджеров) ---
	// Список занятий студии
	protected.HandleFunc("/studios/{studioId}/sessions", getStudioSessions.Handle).Methods(http.MethodGet)

	// Все конфигурации расписания студии
	protected.HandleFunc("/studios/{studioId}/schedule-configs", getScheduleConfig.HandleList).Methods(http.MethodGet)

	// Создание/обновление конфигурации расписания
	protected.HandleFunc("/studios/{studioId}/schedule-config", updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Удаление конфигурации расписания
	protected.HandleFunc("/studios/{studioId}/schedule-config/{configId}", updateScheduleConfig.HandleDelete).Methods(http.MethodDelete)

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
