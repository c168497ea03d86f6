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

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/handler"
	"github.com/planvane/allocation-advisor/internal/health"
	"github.com/planvane/allocation-advisor/internal/infra/repository"
	"github.com/planvane/allocation-advisor/internal/infra/runrecorder"
	"github.com/planvane/allocation-advisor/internal/observability/logging"
	"github.com/planvane/allocation-advisor/internal/observability/metrics"
	"github.com/planvane/allocation-advisor/internal/observability/middleware"
	"github.com/planvane/allocation-advisor/internal/service/confidence"
	"github.com/planvane/allocation-advisor/internal/service/recommend"
	"github.com/planvane/allocation-advisor/internal/service/risk"
	"github.com/planvane/allocation-advisor/internal/service/skills"
	"github.com/planvane/allocation-advisor/internal/service/utilization"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.Cycle.Validate(); err != nil {
		slog.Error("cycle queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	engineMetrics, err := metrics.NewEngineMetrics()
	if err != nil {
		slog.Error("failed to initialize engine metrics", slog.String("error", err.Error()))
		return 1
	}

	// Initialize run analytics recorder (InfluxDB for local, BigQuery for gcloud)
	runRecorderCfg := runrecorder.LoadConfig()
	runRecorder, err := runrecorder.NewRecorder(ctx, runRecorderCfg)
	if err != nil {
		slog.Error("failed to initialize run analytics recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := runRecorder.Close(); err != nil {
			slog.Warn("failed to close run analytics recorder", slog.String("error", err.Error()))
		}
	}()

	// Initialize cycle queue
	cycleQueue, cleanup, err := initCycleQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize cycle queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("cycle queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	outcomeRepo := repository.NewOutcomeRepository(redisClient)

	matcher, err := skills.NewMatcherFromConfig(cfg.Skills)
	if err != nil {
		slog.Error("failed to load skill dictionary", slog.String("error", err.Error()))
		return 1
	}

	engineService := recommend.NewService(
		recommend.NewGenerators(matcher),
		recommend.NewExplorer(cfg.Bandit),
		risk.NewScorer(),
		confidence.NewEstimator(),
		utilization.NewClassifier(cfg.Engine.IdleThresholdPercent),
		outcomeRepo,
		engineMetrics,
		cfg.Engine,
	)

	recommendationHandler := handler.NewRecommendationHandler(engineService, cfg, runRecorder, cycleQueue)
	outcomeHandler := handler.NewOutcomeHandler(outcomeRepo, engineMetrics)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("allocation-advisor"),
		TracerName:  "github.com/planvane/allocation-advisor/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, Version, matcher.DictionarySize())
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/recommendations", recommendationHandler.HandleRecommendations)
		v1.POST("/analyze", recommendationHandler.HandleAnalyze)
		v1.POST("/outcomes", outcomeHandler.HandleRecordOutcome)
		v1.GET("/outcomes/summary", outcomeHandler.HandleOutcomeSummary)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("max_changes_per_cycle", cfg.Engine.MaxChangesPerCycle),
			slog.Float64("burnout_threshold", cfg.Engine.BurnoutThreshold),
			slog.Int("cycle_interval_minutes", cfg.Cycle.IntervalMinutes),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := runRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush run analytics", slog.String("error", err.Error()))
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
