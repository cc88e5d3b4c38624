// Command server runs the marketplace HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	catalogapp "github.com/Wolf09/back-prof-sub000/internal/application/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/application/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/application/rating"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/cache"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/config"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/event"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/telemetry"
	"github.com/Wolf09/back-prof-sub000/internal/interfaces/http/handler"
	"github.com/Wolf09/back-prof-sub000/internal/interfaces/http/middleware"
	"github.com/Wolf09/back-prof-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file (default: ./config.toml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	baseLog, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = baseLog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		return fmt.Errorf("initialize log export: %w", err)
	}
	log := loggerProvider.Bridge(baseLog, zapcore.InfoLevel)

	log.Info("Starting marketplace core",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
	)

	// Storage
	db, err := persistence.NewDatabase(ctx, &cfg.Database, persistence.Options{
		Logger:   log,
		LogLevel: cfg.Log.GormLevel,
		DBTracing: telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        "postgresql",
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	listingCache, err := cache.NewStore(ctx, cfg.Cache, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("initialize listing cache: %w", err)
	}
	defer func() { _ = listingCache.Close() }()

	// Repositories
	jobRepo := persistence.NewGormJobRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	professionalRepo := persistence.NewGormProfessionalRepository(db.DB)
	jobInActionRepo := persistence.NewGormJobInActionRepository(db.DB)
	historyRepo := persistence.NewGormHistoryRepository(db.DB)
	ratingRepo := persistence.NewGormRatingRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Events: cache invalidation first, then the audit trail
	bus := event.NewInMemoryBus(log)
	bus.Subscribe(cache.NewInvalidationHandler(listingCache, log))
	bus.Subscribe(event.NewAuditLogHandler(log))

	// Services
	jobService := catalogapp.NewJobService(jobRepo, professionalRepo, clientRepo, bus, log)
	queryService := catalogapp.NewQueryService(jobRepo, listingCache, log)
	engagementService := engagement.NewService(scope, jobInActionRepo, engagement.NewHistoryRecorder(log), bus, log)
	historyService := engagement.NewHistoryService(historyRepo, log)
	ratingService := rating.NewService(scope, ratingRepo, bus, log)

	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:           meterProvider.Meter("marketplace.business"),
			Logger:          log,
			CatalogProvider: telemetry.NewGormCatalogMetricsProvider(db.DB),
		})
		if err != nil {
			return fmt.Errorf("initialize business metrics: %w", err)
		}
		engagementService.SetMetrics(businessMetrics)
		ratingService.SetMetrics(businessMetrics)
		businessMetrics.StartPeriodicCollection(ctx, cfg.Telemetry.MetricsInterval)
		defer businessMetrics.Stop()
	}

	// HTTP
	mode := gin.ReleaseMode
	if cfg.App.Env == "development" {
		mode = gin.DebugMode
	}
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSOrigins

	engine, err := router.NewEngine(router.EngineConfig{
		Mode:           mode,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tracerProvider.IsEnabled(),
		MeterProvider:  meterProvider,
		CORS:           cors,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
	}, log)
	if err != nil {
		return fmt.Errorf("build http engine: %w", err)
	}

	router.NewRouter(engine).Register(
		handler.NewHealthHandler(db, log),
		handler.NewJobHandler(jobService, queryService),
		handler.NewJobInActionHandler(engagementService),
		handler.NewHistoryHandler(historyService),
		handler.NewRatingHandler(ratingService),
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
	}
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus stop failed", zap.Error(err))
	}
	shutdownTelemetry(shutdownCtx, log, tracerProvider, meterProvider, loggerProvider)

	log.Info("Server exited gracefully")
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(ctx context.Context, log *zap.Logger, providers ...shutdowner) {
	for _, p := range providers {
		if err := p.Shutdown(ctx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}
}
