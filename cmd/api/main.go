package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-analytics/internal/api/http"
	"github.com/spec-kit/ticket-analytics/internal/api/http/handlers"
	"github.com/spec-kit/ticket-analytics/internal/config"
	"github.com/spec-kit/ticket-analytics/internal/dataset"
	"github.com/spec-kit/ticket-analytics/internal/events"
	"github.com/spec-kit/ticket-analytics/internal/observability"
	"github.com/spec-kit/ticket-analytics/internal/persistence"
	"github.com/spec-kit/ticket-analytics/internal/service"
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

	metrics := observability.NewMetrics()

	var pg *persistence.Postgres
	var loader dataset.Loader
	switch cfg.Dataset.Source {
	case config.SourcePostgres:
		pg, err = persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		loader = dataset.NewPostgresLoader(pg.PoolHandle(), cfg.Dataset.PostgresTable, logger)
	default:
		loader = dataset.NewCSVLoader(cfg.Dataset.CSVPath, logger)
	}

	var redis *persistence.Redis
	var cache *service.ResultCache
	if cfg.Cache.Enabled {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		cache = service.NewResultCache(redis.Client, cfg.Cache.TTL(), metrics, logger)
	}

	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventDatasetReloaded, service.NewCacheInvalidator(cache))
	dispatcher.Subscribe(events.EventDatasetExported, func(_ context.Context, event events.Event) error {
		logger.Info("dataset exported", zap.Any("payload", event.Payload))
		return nil
	})

	analyticsService := service.NewAnalyticsService(service.Dependencies{
		Loader:     loader,
		Cache:      cache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	// The dataset load is the one startup I/O; a missing or corrupt source
	// is fatal to the session.
	snap, err := analyticsService.Load(ctx)
	if err != nil {
		logger.Fatal("failed to load dataset", zap.Error(err))
	}
	logger.Info("session ready", zap.String("snapshot", snap.Version), zap.Int("tickets", len(snap.Tickets)))

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, analyticsService, pg, redis),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Tickets:   handlers.NewTicketsHandler(analyticsService),
		Dataset:   handlers.NewDatasetHandler(analyticsService),
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
