package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/drapehaus/drapehaus/internal/app"
	"github.com/drapehaus/drapehaus/internal/cart"
	"github.com/drapehaus/drapehaus/internal/catalog"
	"github.com/drapehaus/drapehaus/internal/platform/cache"
	"github.com/drapehaus/drapehaus/internal/platform/db"
	"github.com/drapehaus/drapehaus/internal/settings"
	"github.com/drapehaus/drapehaus/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	catalogService := catalog.NewService(catalog.NewRepository(pool))
	settingsService := settings.NewService(logger, settings.NewRepository(pool), redisClient, cfg.SettingsCacheTTL)
	cartService := cart.NewService(logger, cart.NewRepository(pool), catalogService, settingsService)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypePageView, Handler: jobs.NewPageViewHandler(redisClient)},
			{Type: jobs.TaskTypeDraftPrune, Handler: jobs.NewDraftPruneHandler(logger, cartService, cfg.DraftTTL)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: jobs.NewDraftPruneTask(), Options: []asynq.Option{asynq.Queue(jobs.QueueDefault)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
