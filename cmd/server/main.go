package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adotepet/service-adoption/internal/application"
	"github.com/adotepet/service-adoption/internal/auth"
	"github.com/adotepet/service-adoption/internal/config"
	"github.com/adotepet/service-adoption/internal/events"
	"github.com/adotepet/service-adoption/internal/handler"
	"github.com/adotepet/service-adoption/internal/middleware"
	"github.com/adotepet/service-adoption/internal/platform/database"
	"github.com/adotepet/service-adoption/internal/platform/kafka"
	"github.com/adotepet/service-adoption/internal/platform/logger"
	"github.com/adotepet/service-adoption/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-adoption")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-adoption",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.AnimalModel{}, &repository.PictureModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repository, publisher, and application service
	animalRepo := repository.NewGormAnimalRepository(db)
	publisher := events.NewAnimalEventPublisher(kafkaProducer, log)
	animalService := application.NewAnimalService(animalRepo, publisher, log)

	// Start the adoption event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "adoption-service"
	adoptionConsumer := events.NewAdoptionEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		animalService,
		log,
	)
	defer func() { _ = adoptionConsumer.Close() }()

	go func() {
		log.Info("starting adoption event consumer")
		for {
			err := adoptionConsumer.Start(ctx)
			if ctx.Err() != nil {
				return
			}
			log.Error("adoption event consumer error, restarting", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
	}()

	// Initialize HTTP handlers
	animalHandler := handler.NewAnimalHandler(animalService, log, cfg.ServiceTimeout)
	adminHandler := handler.NewAdminAnimalHandler(animalService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, "service-adoption")
	healthHandler.RegisterRoutes(router)

	// Register routes
	animalHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-adoption...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-adoption stopped")
}
