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

	getAvailabilitiesHandler "github.com/m04kA/TMS-SearchService/internal/api/handlers/get_availabilities"
	getInsurancePayersHandler "github.com/m04kA/TMS-SearchService/internal/api/handlers/get_insurance_payers"
	healthCheckHandler "github.com/m04kA/TMS-SearchService/internal/api/handlers/health_check"
	"github.com/m04kA/TMS-SearchService/internal/api/middleware"
	"github.com/m04kA/TMS-SearchService/internal/config"
	availabilityRepo "github.com/m04kA/TMS-SearchService/internal/infra/storage/availability"
	payerRepo "github.com/m04kA/TMS-SearchService/internal/infra/storage/payer"
	scheduleService "github.com/m04kA/TMS-SearchService/internal/service/schedule"
	"github.com/m04kA/TMS-SearchService/pkg/dbmetrics"
	"github.com/m04kA/TMS-SearchService/pkg/logger"
	"github.com/m04kA/TMS-SearchService/pkg/metrics"
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

	log.Info("Starting TMS-SearchService scheduling API...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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
		availabilityRepository *availabilityRepo.Repository
		payerRepository        *payerRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		payerRepository = payerRepo.NewRepository(wrappedDB)
	} else {
		availabilityRepository = availabilityRepo.NewRepository(db)
		payerRepository = payerRepo.NewRepository(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		availabilityRepository,
		payerRepository,
		log,
	)

	// Инициализируем handlers
	getAvailabilities := getAvailabilitiesHandler.NewHandler(scheduleSvc, log)
	getInsurancePayers := getInsurancePayersHandler.NewHandler(scheduleSvc, log)
	healthCheck := healthCheckHandler.NewHandler()

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// CORS для браузерного фронтенда
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api").Subrouter()

	// Health-проба: клиенты выполняют её перед основным запросом
	api.HandleFunc("/health", healthCheck.Handle).Methods(http.MethodGet)

	// Поиск слотов по страховке (полный список, фильтрация на клиенте)
	api.HandleFunc("/availabilities", getAvailabilities.Handle).Methods(http.MethodGet)

	// Каталог страховых компаний
	api.HandleFunc("/insurance-payers", getInsurancePayers.Handle).Methods(http.MethodGet)

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
