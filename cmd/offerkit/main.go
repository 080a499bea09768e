package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/offerkit/offerkit/internal/app"
	"github.com/offerkit/offerkit/internal/customers"
	"github.com/offerkit/offerkit/internal/doctemplates"
	"github.com/offerkit/offerkit/internal/observability"
	"github.com/offerkit/offerkit/internal/offers"
	"github.com/offerkit/offerkit/internal/platform/cache"
	"github.com/offerkit/offerkit/internal/platform/db"
	"github.com/offerkit/offerkit/internal/projects"
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

	customerRepo := customers.NewRepository(pool)
	customerService := customers.NewService(customerRepo)
	customerHandler := customers.NewHandler(logger, customerService)

	projectRepo := projects.NewRepository(pool)
	projectService := projects.NewService(projectRepo)
	projectHandler := projects.NewHandler(logger, projectService)

	templateRepo := doctemplates.NewRepository(pool)
	templateService := doctemplates.NewService(templateRepo)
	templateHandler := doctemplates.NewHandler(logger, templateService)

	queue := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	offerRepo := offers.NewRepository(pool)
	offerService := offers.NewService(offerRepo, templateService, logger).WithRenderQueue(queue)
	offerHandler := offers.NewHandler(logger, offerService)

	metrics := observability.NewMetrics()

	exporter := &render.PDFExporter{Endpoint: cfg.GotenbergURL}
	renderCache := render.NewCache(redisClient, cfg.RenderCacheTTL)
	renderer := render.NewRenderer(offerService, exporter, renderCache).WithMetrics(metrics)
	renderHandler := render.NewHandler(logger, offerService, renderer)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		Metrics:          metrics,
		OffersHandler:    offerHandler,
		RenderHandler:    renderHandler,
		CustomersHandler: customerHandler,
		ProjectsHandler:  projectHandler,
		TemplatesHandler: templateHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
