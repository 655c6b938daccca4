package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Tanupriya0912/Job-portal/internal/cache"
	"github.com/Tanupriya0912/Job-portal/internal/config"
	"github.com/Tanupriya0912/Job-portal/internal/events"
	"github.com/Tanupriya0912/Job-portal/internal/handlers"
	"github.com/Tanupriya0912/Job-portal/internal/jobs"
	"github.com/Tanupriya0912/Job-portal/internal/log"
	"github.com/Tanupriya0912/Job-portal/internal/server"
	"github.com/Tanupriya0912/Job-portal/internal/storage"
	"github.com/Tanupriya0912/Job-portal/internal/views"
	"github.com/Tanupriya0912/Job-portal/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment, cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect redis")
		}
	}

	var store cache.JSONStore = cache.NewMemory()
	if redisClient != nil {
		store = cache.NewRedis(redisClient, logger)
	}
	details := cache.NewJobDetails(store, cfg.Query.DetailTTL, logger)

	registry := workspace.NewRegistry(cfg.API, logger)

	bus := events.NewBus(redisClient, cfg.Redis.Stream, cfg.Redis.Consumer, logger)
	bus.Subscribe(func(ctx context.Context, inv events.Invalidation) {
		registry.Each(func(ws *workspace.Workspace) {
			ws.Query.Invalidate(inv.Keys...)
		})
		for _, key := range inv.Keys {
			if len(key) == 2 && key[0] == "job" {
				details.Forget(ctx, key[1])
			}
		}
	})

	deps := views.Deps{
		Bus:          bus,
		JobDetails:   details,
		PollInterval: cfg.Query.PollInterval,
		FetchLimit:   cfg.Query.FetchConcurrency,
		Log:          logger,
	}
	if cfg.Storage.Endpoint != "" {
		objectStore, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to init object store")
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			logger.Warn().Err(err).Msg("ensure bucket failed")
		}
		deps.Resumes = objectStore
	}

	handlerSet := handlers.NewHandlerSet(logger, cfg, views.New(deps), registry, redisClient)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	scheduler := jobs.NewScheduler(registry, cfg.Query.Tick, cfg.Session.IdleTimeout, cfg.Query.FetchConcurrency, logger)
	if err := scheduler.Start(); err != nil {
		logger.Error().Err(err).Msg("scheduler start failed")
	}

	if redisClient != nil {
		consumer := events.NewConsumer(redisClient, cfg.Redis.Stream, cfg.Redis.Group, cfg.Redis.Consumer, cfg.Redis.ClaimInterval, logger, bus)
		go func() {
			if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("invalidation consumer stopped")
			}
		}()
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	shutdown(logger, httpServer, scheduler, redisClient)
}

func shutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, redisClient *redis.Client) {
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	<-scheduler.Stop().Done()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("redis close error")
		}
	}

	logger.Info().Msg("portal exited cleanly")
}
