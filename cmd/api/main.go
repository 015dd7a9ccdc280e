package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/assignment-calendar-api/internal/config"
	"github.com/noah-isme/assignment-calendar-api/internal/database"
	"github.com/noah-isme/assignment-calendar-api/internal/events"
	"github.com/noah-isme/assignment-calendar-api/internal/handler"
	"github.com/noah-isme/assignment-calendar-api/internal/middleware"
	"github.com/noah-isme/assignment-calendar-api/internal/repository"
	"github.com/noah-isme/assignment-calendar-api/internal/router"
	"github.com/noah-isme/assignment-calendar-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("failed to load timezone: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	redisClient, err := database.ConnectRedis(startupCtx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn, err := events.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Drain()
	}

	var publisher events.Publisher = events.Nop()
	if natsConn != nil || redisClient != nil {
		publisher = events.NewBroker(natsConn, cfg.NATSSubject, redisClient, cfg.RedisEventChannel)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	assignmentRepo := repository.NewAssignmentRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	snapshotService := service.NewSnapshotService(assignmentRepo, redisClient, cfg.SnapshotCacheTTL, logger)
	preferenceService := service.NewPreferenceService(preferenceRepo, cfg.DemoUserID, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, snapshotService, publisher, validate, cfg.DemoUserID, logger)
	viewService := service.NewViewService(snapshotService, assignmentRepo, preferenceService, validate, location, cfg.SubjectItemsPerPage, logger)
	seedService := service.NewSeedService(assignmentRepo, snapshotService, cfg.DemoUserID, cfg.DemoSeed, location, logger)

	if _, err := seedService.SeedDemo(startupCtx); err != nil && !errors.Is(err, service.ErrSeedDisabled) {
		logger.Warn().Err(err).Msg("failed to seed demo calendar")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		ViewHandler:       handler.NewViewHandler(viewService, logger),
		PreferenceHandler: handler.NewPreferenceHandler(preferenceService, logger),
		Health: handler.HealthDependencies{
			DB:    db,
			Redis: redisClient,
			NATS:  natsConn,
		},
		JWTMiddleware: middleware.JWTProtected(cfg.JWTSecret),
		RateLimiter:   middleware.RateLimit("api", cfg.RateLimitMax, cfg.RateLimitWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
