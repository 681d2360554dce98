package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/elearning-service/internal/config"
	"github.com/SAP-F-2025/elearning-service/internal/events"
	"github.com/SAP-F-2025/elearning-service/internal/handlers"
	"github.com/SAP-F-2025/elearning-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/elearning-service/internal/services"
	"github.com/SAP-F-2025/elearning-service/internal/storage"
	"github.com/SAP-F-2025/elearning-service/internal/utils"
	"github.com/SAP-F-2025/elearning-service/internal/validator"
	"github.com/SAP-F-2025/elearning-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Failed to initialize Redis, caching disabled", "error", err)
			redisClient = nil
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	fileStorage, err := newFileStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	var publisher events.EventPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
	}

	// Initialize services
	serviceManager := services.NewDefaultServiceManager(services.Dependencies{
		Repo:      repoManager.GetRepository(),
		DB:        db,
		Logger:    slogLogger,
		Validator: validator.New(),
		Storage:   fileStorage,
		Assets: storage.Assets{
			StudentPhoto: cfg.Storage.StudentPlaceholder,
			FacultyPhoto: cfg.Storage.FacultyPlaceholder,
		},
		Publisher: publisher,
		Cache:     repoManager.CacheManager(),
	})
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger, cfg.CORSOrigins)
	handlers.NewHandlerManager(serviceManager, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Closes the event publisher, database and Redis connections
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown services", "error", err)
	}

	logger.Info("Server exited")
}

func newFileStorage(cfg config.StorageConfig) (storage.FileStorage, error) {
	if cfg.Backend == "oss" {
		ossStorage, err := storage.NewOSSStorage(storage.OSSConfig{
			Endpoint:      cfg.OSS.Endpoint,
			AccessKey:     cfg.OSS.AccessKey,
			SecretKey:     cfg.OSS.SecretKey,
			SecurityToken: cfg.OSS.SecurityToken,
			Bucket:        cfg.OSS.Bucket,
			Prefix:        cfg.OSS.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return ossStorage, nil
	}

	localStorage, err := storage.NewLocalStorage(cfg.Root)
	if err != nil {
		return nil, err
	}
	return localStorage, nil
}
