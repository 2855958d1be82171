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
	"gorm.io/gorm"

	"github.com/masq-social/masq-service/internal/config"
	"github.com/masq-social/masq-service/internal/events"
	"github.com/masq-social/masq-service/internal/handlers"
	"github.com/masq-social/masq-service/internal/moderation"
	"github.com/masq-social/masq-service/internal/repositories"
	"github.com/masq-social/masq-service/internal/repositories/memory"
	"github.com/masq-social/masq-service/internal/repositories/postgres"
	"github.com/masq-social/masq-service/internal/services"
	"github.com/masq-social/masq-service/internal/sessions"
	"github.com/masq-social/masq-service/internal/utils"
	"github.com/masq-social/masq-service/internal/validator"
	"github.com/masq-social/masq-service/pkg"
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

	// Initialize database (optional; without it the in-memory store serves)
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = pkg.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repositories
	var repoManager repositories.RepositoryManager
	if db != nil {
		repoManager = postgres.NewRepositoryManager(postgres.RepositoryConfig{DB: db})
	} else {
		logger.Warn("No DATABASE_URL configured, using the in-memory store")
		repoManager = memory.NewRepositoryManager()
	}
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Session store falls back to process-local storage without Redis
	sessionStore := sessions.NewStore(redisClient, cfg.SessionTTL)

	// Content moderation
	words := moderation.DefaultWords
	if cfg.CensoredWordsFile != "" {
		words, err = moderation.LoadWordsFile(cfg.CensoredWordsFile)
		if err != nil {
			log.Fatalf("Failed to load censored words: %v", err)
		}
	}
	sanitizer, err := moderation.NewSanitizer(words, '*')
	if err != nil {
		log.Fatalf("Failed to build sanitizer: %v", err)
	}

	// Event publisher: Kafka when brokers are configured, in-process channel
	// otherwise. With a database attached every event is journaled as well.
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventsTopic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewGoChannelPublisher(cfg.EventsTopic, slogLogger)
	}
	if db != nil {
		publisher = events.NewJournalingPublisher(publisher, db, slogLogger)
	}

	// Initialize validator
	validator := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(repoManager.GetRepository(), sessionStore, sanitizer, publisher, slogLogger, validator)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, cfg.SessionTTL, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Shutdown services (closes the publisher and the repository)
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
