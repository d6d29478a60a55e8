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

	bookSessionHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/book_session"
	cancelSessionHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/cancel_session"
	extendSessionHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/extend_session"
	getSessionHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/get_session"
	getVehicleSessionsHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/get_vehicle_sessions"
	getZonesHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/get_zones"
	recordPaymentHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/record_payment"
	scanEntryHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/scan_entry"
	scanExitHandler "github.com/parkwise/PW-SessionService/internal/api/handlers/scan_exit"
	"github.com/parkwise/PW-SessionService/internal/api/middleware"
	"github.com/parkwise/PW-SessionService/internal/config"
	paymentRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/payment"
	sessionRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/session"
	slotRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/slot"
	vehicleRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/vehicle"
	zoneRepo "github.com/parkwise/PW-SessionService/internal/infra/storage/zone"
	payGatewayClient "github.com/parkwise/PW-SessionService/internal/integrations/paygateway"
	smsGatewayClient "github.com/parkwise/PW-SessionService/internal/integrations/smsgateway"
	sessionsService "github.com/parkwise/PW-SessionService/internal/service/sessions"
	zonesService "github.com/parkwise/PW-SessionService/internal/service/zones"
	bookSessionUC "github.com/parkwise/PW-SessionService/internal/usecase/book_session"
	cancelSessionUC "github.com/parkwise/PW-SessionService/internal/usecase/cancel_session"
	expireSessionsUC "github.com/parkwise/PW-SessionService/internal/usecase/expire_sessions"
	expiryWarningUC "github.com/parkwise/PW-SessionService/internal/usecase/expiry_warning"
	extendSessionUC "github.com/parkwise/PW-SessionService/internal/usecase/extend_session"
	recordPaymentUC "github.com/parkwise/PW-SessionService/internal/usecase/record_payment"
	scanEntryUC "github.com/parkwise/PW-SessionService/internal/usecase/scan_entry"
	scanExitUC "github.com/parkwise/PW-SessionService/internal/usecase/scan_exit"
	"github.com/parkwise/PW-SessionService/pkg/dbmetrics"
	"github.com/parkwise/PW-SessionService/pkg/logger"
	"github.com/parkwise/PW-SessionService/pkg/metrics"
	"github.com/parkwise/PW-SessionService/pkg/qrtoken"
	"github.com/parkwise/PW-SessionService/pkg/simpletxmanager"
	"github.com/parkwise/PW-SessionService/pkg/txmanager"
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

	log.Info("Starting PW-SessionService...")
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
	payClient := payGatewayClient.NewClient(payGatewayClient.Config{
		BaseURL:    cfg.PaymentGateway.URL,
		Timeout:    time.Duration(cfg.PaymentGateway.Timeout) * time.Second,
		MerchantID: cfg.PaymentGateway.MerchantID,
		Sandbox:    cfg.PaymentGateway.Sandbox,
	}, log)
	smsClient := smsGatewayClient.NewClient(smsGatewayClient.Config{
		BaseURL:  cfg.SMSGateway.URL,
		Timeout:  time.Duration(cfg.SMSGateway.Timeout) * time.Second,
		SenderID: cfg.SMSGateway.SenderID,
		Enabled:  cfg.SMSGateway.Enabled,
	}, log)
	log.Info("Integration clients initialized (PaymentGateway=%s sandbox=%v, SMSGateway=%s enabled=%v)",
		cfg.PaymentGateway.URL, cfg.PaymentGateway.Sandbox, cfg.SMSGateway.URL, cfg.SMSGateway.Enabled)

	// Генератор QR-токенов сессий
	tokenGen := qrtoken.NewGenerator()

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		sessionRepository *sessionRepo.Repository
		slotRepository    *slotRepo.Repository
		zoneRepository    *zoneRepo.Repository
		vehicleRepository *vehicleRepo.Repository
		paymentRepository *paymentRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		zoneRepository = zoneRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		sessionRepository = sessionRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		zoneRepository = zoneRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы чтения
	sessionsSvc := sessionsService.NewService(
		sessionRepository,
		vehicleRepository,
		zoneRepository,
		paymentRepository,
		log,
	)
	zonesSvc := zonesService.NewService(
		zoneRepository,
		slotRepository,
		log,
	)

	// Инициализируем use cases
	bookSessionUseCase := bookSessionUC.NewUseCase(
		sessionRepository,
		slotRepository,
		zoneRepository,
		vehicleRepository,
		paymentRepository,
		payClient,
		smsClient,
		tokenGen,
		txMgr,
		log,
	)
	scanEntryUseCase := scanEntryUC.NewUseCase(
		sessionRepository,
		slotRepository,
		vehicleRepository,
		smsClient,
		txMgr,
		log,
	)
	scanExitUseCase := scanExitUC.NewUseCase(
		sessionRepository,
		slotRepository,
		zoneRepository,
		vehicleRepository,
		paymentRepository,
		payClient,
		smsClient,
		txMgr,
		log,
	)
	cancelSessionUseCase := cancelSessionUC.NewUseCase(
		sessionRepository,
		slotRepository,
		vehicleRepository,
		smsClient,
		txMgr,
		log,
	)
	extendSessionUseCase := extendSessionUC.NewUseCase(
		sessionRepository,
		vehicleRepository,
		smsClient,
		txMgr,
		log,
	)
	recordPaymentUseCase := recordPaymentUC.NewUseCase(
		sessionRepository,
		paymentRepository,
		payClient,
		txMgr,
		log,
	)
	expireSessionsUseCase := expireSessionsUC.NewUseCase(
		sessionRepository,
		slotRepository,
		vehicleRepository,
		smsClient,
		txMgr,
		log,
	)
	expiryWarningUseCase := expiryWarningUC.NewUseCase(
		sessionRepository,
		vehicleRepository,
		smsClient,
		txMgr,
		cfg.Booking.ExpiryWarningMinutes,
		log,
	)

	// Планировщик фоновых задач: sweep просроченных броней и предупреждения
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Booking.SweepSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if resp, err := expireSessionsUseCase.Execute(ctx); err != nil {
			log.Error("Expiry sweep failed: %v", err)
		} else if resp.ExpiredCount > 0 {
			log.Info("Expiry sweep: cancelled %d expired session(s)", resp.ExpiredCount)
		}

		if _, err := expiryWarningUseCase.Execute(ctx); err != nil {
			log.Error("Expiry warning pass failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Failed to schedule expiry sweep: %v", err)
	}
	scheduler.Start()
	log.Info("Expiry sweep scheduled: %q", cfg.Booking.SweepSchedule)

	// Инициализируем handlers
	bookSession := bookSessionHandler.NewHandler(bookSessionUseCase, log)
	scanEntry := scanEntryHandler.NewHandler(scanEntryUseCase, log)
	scanExit := scanExitHandler.NewHandler(scanExitUseCase, log)
	cancelSession := cancelSessionHandler.NewHandler(cancelSessionUseCase, log)
	extendSession := extendSessionHandler.NewHandler(extendSessionUseCase, log)
	recordPayment := recordPaymentHandler.NewHandler(recordPaymentUseCase, log)
	getSession := getSessionHandler.NewHandler(sessionsSvc, log)
	getVehicleSessions := getVehicleSessionsHandler.NewHandler(sessionsSvc, log)
	getZones := getZonesHandler.NewHandler(zonesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Зоны и доступность слотов
	api.HandleFunc("/zones", getZones.Handle).Methods(http.MethodGet)
	api.HandleFunc("/zones/{zoneId}/availability", getZones.HandleAvailability).Methods(http.MethodGet)

	// Чтение сессии и журнала платежей по QR-токену
	api.HandleFunc("/sessions/{token}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{token}/payments", getSession.HandlePayments).Methods(http.MethodGet)

	// Сканирование QR на шлагбауме
	api.HandleFunc("/sessions/{token}/entry", scanEntry.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{token}/exit", scanExit.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Бронирование сессии
	protected.HandleFunc("/sessions", bookSession.Handle).Methods(http.MethodPost)

	// Отмена и продление брони
	protected.HandleFunc("/sessions/{token}/cancel", cancelSession.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sessions/{token}/extend", extendSession.Handle).Methods(http.MethodPatch)

	// Ручная запись платежа (касса оператора)
	protected.HandleFunc("/sessions/{token}/payments", recordPayment.Handle).Methods(http.MethodPost)

	// История сессий автомобиля
	protected.HandleFunc("/vehicles/{plate}/sessions", getVehicleSessions.Handle).Methods(http.MethodGet)

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

	// Останавливаем планировщик: дожидаемся завершения текущего sweep'а
	cronCtx := scheduler.Stop()
	<-cronCtx.Done()
	log.Info("Expiry sweep scheduler stopped")

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
