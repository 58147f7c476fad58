package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/skillbridge/mobile-gateway/internal/cache"
	"github.com/skillbridge/mobile-gateway/internal/config"
	"github.com/skillbridge/mobile-gateway/internal/database"
	"github.com/skillbridge/mobile-gateway/internal/events"
	"github.com/skillbridge/mobile-gateway/internal/handler"
	"github.com/skillbridge/mobile-gateway/internal/middleware"
	"github.com/skillbridge/mobile-gateway/internal/observability"
	"github.com/skillbridge/mobile-gateway/internal/router"
	"github.com/skillbridge/mobile-gateway/internal/service"
	"github.com/skillbridge/mobile-gateway/internal/session"
	"github.com/skillbridge/mobile-gateway/internal/status"
	"github.com/skillbridge/mobile-gateway/pkg/platform"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to nats")
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	platformClient, err := platform.New(platform.Config{
		BaseURL: cfg.PlatformBaseURL,
		Timeout: cfg.PlatformTimeout,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create platform client")
	}

	location, err := cfg.DisplayLocation()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid display timezone")
	}

	observability.RegisterMetrics()
	validate := validator.New(validator.WithRequiredStructEnabled())

	sessions := session.NewRedisStore(redisClient, cfg.SessionTTL)
	issuer := session.NewIssuer(cfg.JWTSecret)
	snapshots := cache.NewSnapshotCache(redisClient, cfg.SnapshotCacheTTL, logger)
	feedCache := cache.NewRedisCache("feed", redisClient, logger)
	classifier := status.NewClassifier(status.WithLocation(location))

	bus := events.NewBus(natsConn, cfg.NATSSubject, logger)
	if err := bus.Listen(ctx, events.InvalidateOnChange(snapshots, logger)); err != nil {
		logger.Fatal().Err(err).Msg("failed to start event listener")
	}

	authService := service.NewAuthService(platformClient, sessions, issuer, validate, logger)
	boardService := service.NewAssignmentBoardService(platformClient, snapshots, classifier, bus, logger)
	gradingService := service.NewGradingService(platformClient, snapshots, bus, validate, logger)
	teamService := service.NewTeamService(platformClient, logger)
	feedService := service.NewActivityFeedService(platformClient, feedCache, cfg.FeedCacheTTL, logger)
	chatService := service.NewChatService(platformClient, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.PlatformTimeout + 5*time.Second,
	})

	middleware.Register(app, middleware.Config{
		Logger:    &logger,
		AccessLog: cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:            handler.NewAuthHandler(authService, logger),
		AssignmentBoardHandler: handler.NewAssignmentBoardHandler(boardService, logger),
		GradingHandler:         handler.NewGradingHandler(gradingService, logger),
		TeamHandler:            handler.NewTeamHandler(teamService, logger),
		ChatHandler:            handler.NewChatHandler(chatService, cfg.ChatRateLimit, logger),
		ActivityFeedHandler:    handler.NewActivityFeedHandler(feedService, logger),
		HealthChecks:           healthChecks(redisClient, natsConn),
		SessionMiddleware:      middleware.SessionAuth(issuer, sessions, logger),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Msg("gateway listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(ctx, app, logger)
}

func healthChecks(redisClient *redis.Client, natsConn *nats.Conn) []handler.DependencyCheck {
	checks := []handler.DependencyCheck{{
		Name:  "redis",
		Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}}
	if natsConn != nil {
		checks = append(checks, handler.DependencyCheck{
			Name: "nats",
			Check: func(context.Context) error {
				if !natsConn.IsConnected() {
					return nats.ErrConnectionClosed
				}
				return nil
			},
		})
	}
	return checks
}

func waitForShutdown(ctx context.Context, app *fiber.App, logger zerolog.Logger) {
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
