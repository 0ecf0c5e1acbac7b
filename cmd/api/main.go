package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/planets-api/internal/api/http"
	"github.com/spec-kit/planets-api/internal/api/http/handlers"
	"github.com/spec-kit/planets-api/internal/auth"
	"github.com/spec-kit/planets-api/internal/cache"
	"github.com/spec-kit/planets-api/internal/config"
	"github.com/spec-kit/planets-api/internal/events"
	"github.com/spec-kit/planets-api/internal/observability"
	"github.com/spec-kit/planets-api/internal/persistence"
	"github.com/spec-kit/planets-api/internal/repository"
	"github.com/spec-kit/planets-api/internal/service"
	"github.com/spec-kit/planets-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	var planetRepo repository.PlanetRepository
	if pool := pg.PoolHandle(); pool != nil {
		if cfg.Postgres.BootstrapSchema {
			if err := persistence.EnsureSchema(ctx, pool, logger); err != nil {
				logger.Fatal("failed to bootstrap schema", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pool)
		planetRepo = repository.NewPlanetRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository()
		planetRepo = repository.NewMemoryPlanetRepository()
	}

	if err := persistence.Seed(ctx, userRepo, planetRepo, cfg.Auth.BcryptCost, logger); err != nil {
		logger.Fatal("failed to seed data", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	planetCache := cache.NewPlanetCache(redis.Client, cfg.Cache.PlanetListTTL(), logger)

	authService := service.NewAuthService(cfg.Auth, userRepo, dispatcher)
	planetService := service.NewPlanetService(planetRepo, planetCache, dispatcher, logger)
	authMiddleware := auth.NewMiddleware(authService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Planets:        handlers.NewPlanetsHandler(planetService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
