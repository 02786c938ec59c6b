package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/odc-estimate/internal/config"
	"github.com/odc-estimate/internal/domain"
	"github.com/odc-estimate/internal/domain/repository"
	"github.com/odc-estimate/internal/infrastructure/mailer"
	"github.com/odc-estimate/internal/pkg/logger"
	"github.com/odc-estimate/internal/repository/cache"
	kafkaRepo "github.com/odc-estimate/internal/repository/kafka"
	redisRepo "github.com/odc-estimate/internal/repository/redis"
	"github.com/odc-estimate/internal/worker"
	"github.com/odc-estimate/internal/worker/notification"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
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

	log.Info("Starting Enquiry Notification Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.String("events_broker", cfg.Events.Broker),
		zap.Int("recipients", len(cfg.Mail.Recipients)))

	// 3. Mailer
	mail, err := mailer.New(&cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	// 4. Event stream
	var events repository.EnquiryStream
	switch cfg.Events.Broker {
	case "kafka":
		kafkaEvents := kafkaRepo.NewEnquiryStream(&cfg.Events, log)
		defer func() {
			if err := kafkaEvents.Close(); err != nil {
				log.Error("Failed to close Kafka writer", zap.Error(err))
			}
		}()
		events = kafkaEvents
	default:
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		events = redisRepo.NewEnquiryStream(redisClient.Client(), domain.StreamEnquiryCreated, log)
	}

	// 5. Initialize workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(notification.NewEnquiryNotificationWorker(
		events,
		mail,
		cfg.Worker.ConsumerGroup,
		log,
	))

	// 6. Run until a signal arrives or every worker has exited
	if err := workerManager.Start(context.Background()); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-workerManager.Done():
		log.Error("All workers exited", zap.Error(workerManager.Err()))
	}

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
