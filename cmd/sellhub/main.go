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
	"github.com/joho/godotenv"

	"github.com/sellhub/sellhub/internal/app"
	"github.com/sellhub/sellhub/internal/catalog/categories"
	"github.com/sellhub/sellhub/internal/catalog/products"
	"github.com/sellhub/sellhub/internal/commission"
	"github.com/sellhub/sellhub/internal/observability"
	"github.com/sellhub/sellhub/internal/orders"
	"github.com/sellhub/sellhub/internal/platform/cache"
	"github.com/sellhub/sellhub/internal/platform/db"
	"github.com/sellhub/sellhub/internal/reports"
	reporthttp "github.com/sellhub/sellhub/internal/reports/http"
	"github.com/sellhub/sellhub/internal/staff"
	"github.com/sellhub/sellhub/jobs"
)

// jobInvalidator bumps the report cache through the worker queue so the
// invalidation survives an HTTP process restart.
type jobInvalidator struct {
	client *jobs.Client
	cache  *reports.Cache
}

func (i jobInvalidator) Bump(ctx context.Context) error {
	// Bump synchronously as well so the next read is already fresh.
	if err := i.cache.Bump(ctx); err != nil {
		return err
	}
	if i.client != nil {
		_, _ = i.client.EnqueueReportsWarmup(ctx)
	}
	return nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

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
		logger.Warn("redis unavailable, reports run uncached", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	categoriesRepo := categories.NewRepository(pool)
	categoriesService := categories.NewService(categoriesRepo)
	categoriesHandler := categories.NewHandler(logger, categoriesService)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo)
	productsHandler := products.NewHandler(logger, productsService)

	staffRepo := staff.NewRepository(pool)
	staffService := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler(logger, staffService)

	commissionRepo := commission.NewRepository(pool)
	commissionService := commission.NewService(commissionRepo)
	commissionHandler := commission.NewHandler(logger, commissionService)

	reportsRepo := reports.NewRepository(pool)
	reportsCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportsService := reports.NewService(reportsRepo, reportsCache, logger)
	reportsHandler := reporthttp.NewHandler(logger, reportsService)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Warn("init job client", slog.Any("error", err))
	}
	defer func() {
		if jobClient != nil {
			_ = jobClient.Close()
		}
	}()

	var publisher orders.EventPublisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := orders.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("amqp unavailable, order events disabled", slog.Any("error", err))
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	ordersRepo := orders.NewRepository(pool)
	ordersService := orders.NewService(ordersRepo, publisher, jobInvalidator{client: jobClient, cache: reportsCache}, logger)
	ordersHandler := orders.NewHandler(logger, ordersService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		CategoriesHandler: categoriesHandler,
		ProductsHandler:   productsHandler,
		StaffHandler:      staffHandler,
		CommissionHandler: commissionHandler,
		OrdersHandler:     ordersHandler,
		ReportsHandler:    reportsHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
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
