package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/daycarehub/backend/config"
	"github.com/daycarehub/backend/internal/handler"
	"github.com/daycarehub/backend/internal/middleware"
	"github.com/daycarehub/backend/internal/repository"
	"github.com/daycarehub/backend/internal/router"
	"github.com/daycarehub/backend/internal/service"
	"github.com/daycarehub/backend/pkg/database"
	"github.com/daycarehub/backend/pkg/logger"
	"github.com/daycarehub/backend/pkg/mailer"
	"github.com/daycarehub/backend/pkg/redis"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.Init(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Application starting").
		String("app_name", config.App.Name).
		String("environment", config.App.Environment).
		Log()

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: int(config.Database.ConnMaxLifetime.Minutes()),
		ConnMaxIdleTime: int(config.Database.ConnMaxIdleTime.Minutes()),
	})
	if err != nil {
		logger.Error("Failed to connect to database").Err(err).Log()
		os.Exit(1)
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("Failed to run database migrations").Err(err).Log()
		os.Exit(1)
	}
	logger.Info("Database migrated successfully").Log()

	if err := database.CreateSearchIndexes(db); err != nil {
		logger.Warn("Search index creation incomplete").Err(err).Log()
	}

	// Seed data may already exist, so failures are not fatal.
	if err := database.Seed(db); err != nil {
		logger.Error("Failed to seed database").Err(err).Log()
	} else {
		logger.Info("Database seeded successfully").Log()
	}

	var redisClient *redis.Client
	if config.Redis.Enabled {
		redisClient, err = redis.NewClient(config)
		if err != nil {
			logger.Warn("Redis unavailable, caching disabled").Err(err).Log()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	logger.Info("Cache layer initialized").
		Bool("enabled", redisClient != nil).
		Log()

	mail, err := mailer.NewMailer(config.SMTP)
	if err != nil {
		logger.Error("Failed to initialize mail transport").Err(err).Log()
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	daycareRepo := repository.NewDaycareRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	contactLogRepo := repository.NewContactLogRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Services
	jwtService := service.NewJWTService(config.JWT)
	emailService := service.NewEmailService(mail, config)
	authService := service.NewAuthService(userRepo, jwtService, emailService)
	userService := service.NewUserService(userRepo)
	cacheService := service.NewCacheService(redisClient)
	daycareService := service.NewDaycareService(daycareRepo, cacheService)
	favoriteService := service.NewFavoriteService(favoriteRepo, daycareRepo)
	applicationService := service.NewApplicationService(applicationRepo, daycareRepo)
	contactLogService := service.NewContactLogService(contactLogRepo, daycareRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, jwtService, config)
	userHandler := handler.NewUserHandler(userService)
	daycareHandler := handler.NewDaycareHandler(daycareService)
	engagementHandler := handler.NewEngagementHandler(favoriteService, applicationService, contactLogService, messageService, userRepo)
	cacheHandler := handler.NewCacheHandler(cacheService)
	healthHandler := handler.NewHealthHandler(db, redisClient, mail)

	// Middleware
	validationMiddleware := middleware.NewValidationMiddleware()
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	engine := router.NewRouter(
		authHandler,
		userHandler,
		daycareHandler,
		engagementHandler,
		cacheHandler,
		healthHandler,
		validationMiddleware,
		authMiddleware,
		config,
	).SetupRoutes()

	server := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting").
			String("port", config.App.Port).
			Log()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped unexpectedly").Err(err).Log()
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server").Log()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed").Err(err).Log()
	}
}
