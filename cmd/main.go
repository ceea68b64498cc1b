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

	createReservationHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_reservation"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	slotsCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/slots"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	reservationRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/eventbus"
	notificationServiceClient "github.com/m04kA/SMC-SalonBooking/internal/integrations/notificationservice"
	reservationsService "github.com/m04kA/SMC-SalonBooking/internal/service/reservations"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule"
	createReservationUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load salon timezone %s: %v", cfg.Booking.Timezone, err)
	}

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
	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Booking.DatastoreTimeout())
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш слотов (опционально)
	var cache *slotsCache.Cache
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Booking.DatastoreTimeout())
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, slots cache will degrade to datastore: %v", cfg.Redis.Address, err)
		}
		pingCancel()

		cache = slotsCache.NewCache(redisClient, cfg.Redis.SlotsCacheTTL())
		log.Info("Slots cache enabled (redis=%s, ttl=%s)", cfg.Redis.Address, cfg.Redis.SlotsCacheTTL())
	}

	// Транспорт подтверждений: Kafka, если заданы брокеры, иначе HTTP сервис уведомлений
	var notifier createReservationUC.Notifier
	switch {
	case cfg.Kafka.Enabled():
		publisher := eventbus.NewPublisher(cfg.Kafka.BrokerList(), cfg.Kafka.Topic, log)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("Failed to close event publisher: %v", err)
			}
		}()
		notifier = publisher
		log.Info("Reservation events published to kafka (brokers=%v, topic=%s)", cfg.Kafka.BrokerList(), cfg.Kafka.Topic)

	case cfg.NotificationService.URL != "":
		notifier = notificationServiceClient.NewClient(
			cfg.NotificationService.URL,
			time.Duration(cfg.NotificationService.Timeout)*time.Second,
			log,
		)
		log.Info("Integration client initialized (NotificationService=%s timeout=%ds)",
			cfg.NotificationService.URL, cfg.NotificationService.Timeout)

	default:
		log.Warn("No notification transport configured, confirmations will not be sent")
	}

	// Инициализируем сервисы
	intervalResolver := schedule.NewIntervalResolver(
		catalogRepository,
		scheduleRepository,
		cfg.Booking.FallbackSlotIntervalMin,
		log,
	)
	reservationsSvc := reservationsService.NewService(reservationRepository, location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		reservationRepository,
		intervalResolver,
		getAvailableSlotsUC.Settings{
			Location:         location,
			MinLeadTime:      cfg.Booking.MinLeadTime(),
			DatastoreTimeout: cfg.Booking.DatastoreTimeout(),
		},
		log,
	).WithMetrics(metricsCollector)

	createReservationUseCase := createReservationUC.NewUseCase(
		catalogRepository,
		reservationRepository,
		txMgr,
		createReservationUC.Settings{
			Location:         location,
			MinLeadTime:      cfg.Booking.MinLeadTime(),
			DatastoreTimeout: cfg.Booking.DatastoreTimeout(),
			NotifyTimeout:    time.Duration(cfg.NotificationService.Timeout) * time.Second,
		},
		log,
	).WithMetrics(metricsCollector)

	if notifier != nil {
		createReservationUseCase.WithNotifier(notifier)
	}
	if cache != nil {
		getAvailableSlotsUseCase.WithCache(cache)
		createReservationUseCase.WithCache(cache)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, location, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Получение доступных слотов для бронирования
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по коду
	api.HandleFunc("/reservations/{code}", getReservation.Handle).Methods(http.MethodGet)

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
	close(stopMetricsCh)

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
