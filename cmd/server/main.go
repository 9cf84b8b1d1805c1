package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"event-manager.backend/internal/config"
	"event-manager.backend/internal/infrastructure/email"
	"event-manager.backend/internal/infrastructure/jobs"
	"event-manager.backend/internal/infrastructure/models"
	"event-manager.backend/internal/infrastructure/repositories"
	"event-manager.backend/internal/interfaces/http/handlers"
	"event-manager.backend/internal/interfaces/http/middleware"
	"event-manager.backend/internal/usecases"
	"event-manager.backend/pkg/jwt"
	"event-manager.backend/pkg/logger"
	"event-manager.backend/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger.Init(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := redis.Init(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dsn := cfg.Database.URL()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Registration{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Separate pgx pool for the job queue; River manages its own tables.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()

	sender := email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.SenderName)

	workers := river.NewWorkers()
	river.AddWorker(workers, jobs.VerificationEmailWorker{Sender: sender})

	riverClient, err := jobs.NewClient(pool, workers)
	if err != nil {
		return fmt.Errorf("failed to create river client: %w", err)
	}
	if err := riverClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start river client: %w", err)
	}
	logger.Info(ctx, "Delivery queue started")

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	userRepo := repositories.NewUserRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	registrationRepo := repositories.NewRegistrationRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository()
	limitRepo := repositories.NewRateLimitRepository()

	deliveryQueue := jobs.NewDeliveryQueue(riverClient)

	verificationUsecase := usecases.NewVerificationUsecase(
		codeRepo, limitRepo, deliveryQueue,
		cfg.Verification.CodeLength, cfg.Verification.CodeTTL,
	)
	authUsecase := usecases.NewAuthUsecase(userRepo, verificationUsecase, jwtService)
	eventUsecase := usecases.NewEventUsecase(eventRepo, userRepo)
	registrationUsecase := usecases.NewRegistrationUsecase(registrationRepo, eventRepo)

	authHandler := handlers.NewAuthHandler(authUsecase)
	eventHandler := handlers.NewEventHandler(eventUsecase)
	registrationHandler := handlers.NewRegistrationHandler(registrationUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:         authHandler,
		eventHandler:        eventHandler,
		registrationHandler: registrationHandler,
		authMiddleware:      authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		if err := riverClient.Stop(context.Background()); err != nil {
			logger.Error(context.Background(), "Failed to stop river client", zap.Error(err))
		}
		cancel()
	}()

	logger.Info(ctx, "Event Manager backend starting", zap.String("port", cfg.Server.Port))

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
