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

	"github.com/riohost/riohost/internal/app"
	"github.com/riohost/riohost/internal/cleaning"
	"github.com/riohost/riohost/internal/dashboard"
	dashhttp "github.com/riohost/riohost/internal/dashboard/http"
	"github.com/riohost/riohost/internal/expenses"
	"github.com/riohost/riohost/internal/observability"
	"github.com/riohost/riohost/internal/platform/cache"
	"github.com/riohost/riohost/internal/platform/db"
	"github.com/riohost/riohost/internal/properties"
	"github.com/riohost/riohost/internal/reservations"
	"github.com/riohost/riohost/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

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

	metrics := observability.NewMetrics()

	propertyRepo := properties.NewRepository(pool)
	propertyService := properties.NewService(propertyRepo)
	propertyHandler := properties.NewHandler(logger, propertyService)

	reservationRepo := reservations.NewRepository(pool)
	reservationService := reservations.NewService(reservationRepo, propertyRepo)
	reservationHandler := reservations.NewHandler(logger, reservationService)

	expenseRepo := expenses.NewRepository(pool)
	expenseService := expenses.NewService(expenseRepo)
	expenseHandler := expenses.NewHandler(logger, expenseService)

	cleaningRepo := cleaning.NewRepository(pool)
	cleaningService := cleaning.NewService(cleaningRepo)
	cleaningHandler := cleaning.NewHandler(logger, cleaningService)

	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardCacheTTL)
	dashboardService := dashboard.NewService(reservationRepo, expenseRepo, propertyRepo, dashboardCache)
	dashboardHandler := dashhttp.NewHandler(logger, dashboardService)
	if err := dashboardCache.ListenForInvalidation(ctx, ""); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	// Every successful write to the three dashboard sources queues a cache
	// invalidation so the next KPI load recomputes.
	invalidateDashboard := func(ctx context.Context) {
		if _, err := jobsClient.EnqueueDashboardInvalidate(ctx); err != nil {
			logger.Warn("enqueue dashboard invalidate", slog.Any("error", err))
		}
	}
	reservationService.NotifyChanges(invalidateDashboard)
	propertyService.NotifyChanges(invalidateDashboard)
	expenseService.NotifyChanges(invalidateDashboard)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		PropertiesHandler:   propertyHandler,
		ReservationsHandler: reservationHandler,
		ExpensesHandler:     expenseHandler,
		CleaningHandler:     cleaningHandler,
		DashboardHandler:    dashboardHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
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
