package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/drapehaus/drapehaus/internal/analytics"
	"github.com/drapehaus/drapehaus/internal/app"
	"github.com/drapehaus/drapehaus/internal/auth"
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

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	asynqClient := asynq.NewClient(redisOpts)
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()

	catalogService := catalog.NewService(catalog.NewRepository(pool))
	settingsService := settings.NewService(logger, settings.NewRepository(pool), redisClient, cfg.SettingsCacheTTL)
	cartService := cart.NewService(logger, cart.NewRepository(pool), catalogService, settingsService)
	authService := auth.NewService(auth.NewRepository(pool), redisClient, cfg.SessionTTL)
	analyticsService := analytics.NewService(logger, asynqClient, redisClient)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthService:      authService,
		AuthHandler:      auth.NewHandler(logger, authService, cfg.IsProduction()),
		CatalogHandler:   catalog.NewHandler(logger, catalogService),
		CartHandler:      cart.NewHandler(logger, cartService),
		SettingsHandler:  settings.NewHandler(logger, settingsService),
		AnalyticsService: analyticsService,
		AnalyticsHandler: analytics.NewHandler(logger, analyticsService),
		JobsHandler:      jobs.NewHandler(asynq.NewInspector(redisOpts), logger),
	})

	srv := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.Any("error", err))
	}
}
