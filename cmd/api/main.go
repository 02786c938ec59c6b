package main

// @title ODC Estimate API
// @version 1.0.0
// @description Оценка стоимости перевозки негабаритных (ODC) грузов по каталогу обследованных маршрутов.
// @description
// @description Основные возможности:
// @description - Нормализация мест через Google Maps и подбор маршрута по ключевым словам
// @description - Подбор тарифа по диапазонам высоты, длины, ширины и веса
// @description - Расчёт расстояния по дорогам и стоимости
// @description - Приём заявок и администрирование каталога маршрутов

// @contact.name API Support
// @contact.email support@odc-estimate.local

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/odc-estimate/docs"
	"github.com/odc-estimate/internal/config"
	httpDelivery "github.com/odc-estimate/internal/delivery/http"
	"github.com/odc-estimate/internal/delivery/http/handler"
	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/infrastructure/googlemaps"
	"github.com/odc-estimate/internal/infrastructure/mapbox"
	"github.com/odc-estimate/internal/infrastructure/objectstore"
	"github.com/odc-estimate/internal/pkg/keyword"
	"github.com/odc-estimate/internal/pkg/logger"
	"github.com/odc-estimate/internal/repository/cache"
	kafkaRepo "github.com/odc-estimate/internal/repository/kafka"
	"github.com/odc-estimate/internal/repository/postgres"
	redisRepo "github.com/odc-estimate/internal/repository/redis"
	"github.com/odc-estimate/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.NewWithFile(cfg.Log.Level, logger.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting ODC Estimate API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("distance_provider", cfg.Google.DistanceProvider),
		zap.String("events_broker", cfg.Events.Broker),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	routeRepo := postgres.NewRouteRepository(db)
	enquiryRepo := postgres.NewEnquiryRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)

	// 7. External clients
	googleClient := googlemaps.NewClient(&cfg.Google, log)
	distanceProvider := newDistanceProvider(cfg, googleClient, log)

	var docs repository.DocumentStore
	if cfg.Storage.Endpoint != "" {
		store, err := objectstore.New(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}
		docs = store
	} else {
		log.Warn("STORAGE_ENDPOINT is not set, report uploads are disabled")
	}

	publisher, closePublisher := newEventPublisher(cfg, redisClient, log)
	defer closePublisher()

	log.Info("Repositories initialized")

	// 8. Initialize Use Cases
	normalizer := usecase.NewPlaceNormalizer(
		googleClient,
		cacheRepo,
		log,
		cfg.Google.RequestTimeout,
		cfg.Cache.PlaceCacheTTL,
	)

	estimateUC := usecase.NewEstimateUseCase(
		normalizer,
		keyword.NewBuilder(nil),
		usecase.NewRouteMatcher(routeRepo, log),
		usecase.NewPricingResolver(routeRepo, log),
		usecase.NewDistanceCalculator(distanceProvider, log),
		routeRepo,
		log,
	)

	routeUC := usecase.NewRouteUseCase(routeRepo, docs, log, cfg.Storage.MaxFileBytes)
	enquiryUC := usecase.NewEnquiryUseCase(enquiryRepo, publisher, log)
	authUC := usecase.NewAuthUseCase(
		cfg.Admin.Username,
		cfg.Admin.PasswordHash,
		cfg.Admin.JWTSecret,
		cfg.Admin.TokenTTL,
		log,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP Handlers and Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewEstimateHandler(estimateUC, log),
		handler.NewEnquiryHandler(enquiryUC, log),
		handler.NewRouteHandler(routeUC, log),
		handler.NewAuthHandler(authUC, log),
		authUC,
		map[string]httpDelivery.HealthCheck{
			"postgres": db.Health,
			"redis":    redisClient.Health,
		},
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close database", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

// newDistanceProvider выбирает источник расстояний по MAPS_DISTANCE_PROVIDER
func newDistanceProvider(cfg *config.Config, google *googlemaps.Client, log *zap.Logger) repository.DistanceProvider {
	if cfg.Google.DistanceProvider == "mapbox" {
		if cfg.Mapbox.AccessToken == "" {
			log.Fatal("MAPBOX_ACCESS_TOKEN is required for the mapbox distance provider")
		}
		return mapbox.NewMapboxClient(&cfg.Mapbox, log)
	}
	return google
}

// newEventPublisher выбирает брокер событий по EVENTS_BROKER
func newEventPublisher(cfg *config.Config, redisClient *cache.Redis, log *zap.Logger) (repository.EventPublisher, func()) {
	if cfg.Events.Broker == "kafka" {
		if len(cfg.Events.KafkaBrokers) == 0 {
			log.Fatal("KAFKA_BROKERS is required for the kafka events broker")
		}
		events := kafkaRepo.NewEnquiryStream(&cfg.Events, log)
		return events, func() {
			if err := events.Close(); err != nil {
				log.Error("Failed to close Kafka writer", zap.Error(err))
			}
		}
	}

	return redisRepo.NewEnquiryStream(redisClient.Client(), domain.StreamEnquiryCreated, log), func() {}
}
