package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/offerkit/offerkit/internal/app"
	"github.com/offerkit/offerkit/internal/doctemplates"
	"github.com/offerkit/offerkit/internal/offers"
	"github.com/offerkit/offerkit/internal/platform/cache"
	"github.com/offerkit/offerkit/internal/platform/db"
	"github.com/offerkit/offerkit/internal/render"
	"github.com/offerkit/offerkit/jobs"
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
		logger.Error("connect database", slog.Any("error", err))
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

	templateRepo := doctemplates.NewRepository(pool)
	templateService := doctemplates.NewService(templateRepo)

	offerRepo := offers.NewRepository(pool)
	offerService := offers.NewService(offerRepo, templateService, logger)

	exporter := &render.PDFExporter{Endpoint: cfg.GotenbergURL}
	renderCache := render.NewCache(redisClient, cfg.RenderCacheTTL)
	renderer := render.NewRenderer(offerService, exporter, renderCache)

	worker := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Warmer:    renderer,
	})

	logger.Info("starting worker", slog.String("redis", cfg.RedisAddr))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker shut down")
}
