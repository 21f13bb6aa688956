package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/platinummonkey/contentlint/pkg/api"
	"github.com/platinummonkey/contentlint/pkg/cache"
	"github.com/platinummonkey/contentlint/pkg/config"
	"github.com/platinummonkey/contentlint/pkg/httputil"
	"github.com/platinummonkey/contentlint/pkg/linter"
	"github.com/platinummonkey/contentlint/pkg/linter/rules"
	"github.com/platinummonkey/contentlint/pkg/middleware"
	"github.com/platinummonkey/contentlint/pkg/notify"
	"github.com/platinummonkey/contentlint/pkg/observability"
	"github.com/platinummonkey/contentlint/pkg/reports"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)
	logger.Info("Starting contentlint server")

	ctx := context.Background()

	// OpenTelemetry tracing
	otelProviders, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize OpenTelemetry")
		os.Exit(1)
	}

	// Prometheus metrics
	var (
		registry *prometheus.Registry
		metrics  *observability.Metrics
	)
	if cfg.Observability.MetricsEnabled {
		registry = prometheus.NewRegistry()
		metrics = observability.NewMetrics(registry)
	}

	// Report persistence
	db, store, err := openReportStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize report store")
		os.Exit(1)
	}

	// Redis, shared by the result cache and the distributed rate limiter
	var redisClient *redis.Client
	if cfg.Cache.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisURL,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Redis is an accelerator here, not a dependency.
			logger.WithError(err).Warn("Redis unreachable, continuing without it")
			redisClient.Close()
			redisClient = nil
		}
		cancel()
	}

	var localCache *cache.ResultCache
	if cfg.Cache.Enabled {
		localCache = cache.NewResultCache(cfg.Cache.Size, cfg.Cache.TTL)
	}
	var redisCache *cache.RedisCache
	if redisClient != nil {
		redisCache = cache.NewRedisCacheWithClient(redisClient, cfg.Cache.TTL)
	}

	// Webhook notifications
	var sender *notify.Sender
	if len(cfg.Notify.WebhookURLs) > 0 {
		retryCfg := notify.DefaultRetryConfig()
		retryCfg.MaxAttempts = cfg.Notify.MaxRetries
		sender = notify.NewSender(cfg.Notify.WebhookURLs, cfg.Notify.Secret, cfg.Notify.Timeout, logger,
			notify.WithRetryConfig(retryCfg))
		logger.WithField("endpoints", len(cfg.Notify.WebhookURLs)).Info("Webhook notifications enabled")
	}

	// Lint engine
	engine, err := buildEngine(cfg)
	if err != nil {
		logger.WithError(err).Error("Failed to build lint engine")
		os.Exit(1)
	}

	health := observability.NewHealthChecker(db, redisClient)

	server := api.NewServer(engine, api.Options{
		LocalCache: localCache,
		RedisCache: redisCache,
		Store:      store,
		Sender:     sender,
		Metrics:    metrics,
		Logger:     logger,
		Health:     health,
		Registry:   registry,
		Auth:       middleware.NewAPIKeyAuth(cfg.Auth.APIKeys),
		RateLimit:  buildRateLimit(cfg, redisClient, logger),

		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		Tracing:         cfg.Observability.OTelEnabled,
	})

	var handler http.Handler = server.Router()
	if len(cfg.Server.CORSAllowedOrigins) > 0 {
		handler = httputil.CORSMiddleware(cfg.Server.CORSAllowedOrigins)(handler)
	}

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthServer := startHealthServer(cfg, health, registry, logger)

	sm := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		return healthServer.Shutdown(ctx)
	})
	if store != nil {
		sm.RegisterShutdownFunc(func(ctx context.Context) error {
			return store.Close()
		})
	}
	if redisClient != nil {
		sm.RegisterShutdownFunc(func(ctx context.Context) error {
			return redisClient.Close()
		})
	}
	if otelProviders != nil {
		sm.RegisterShutdownFunc(func(ctx context.Context) error {
			return observability.ShutdownOTel(ctx, otelProviders, logger)
		})
	}

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("Listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("HTTP server failed")
			os.Exit(1)
		}
	}()

	if err := sm.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("Shutdown finished with errors")
		os.Exit(1)
	}
}

// buildEngine loads the lint config and registers the default rule set.
func buildEngine(cfg *config.Config) (*linter.LintEngine, error) {
	var (
		lintCfg *linter.Config
		err     error
	)
	if cfg.Content.LintConfig != "" {
		lintCfg, err = linter.LoadConfig(cfg.Content.LintConfig)
	} else {
		lintCfg, err = linter.LoadConfigFromDir(cfg.Content.Root)
	}
	if err != nil {
		return nil, err
	}

	engine := linter.NewLintEngine(lintCfg)
	if err := rules.RegisterDefaultRules(engine.Registry()); err != nil {
		return nil, err
	}
	return engine, nil
}

// openReportStore wires the configured report backend. The *sql.DB is
// returned separately so the health checker can ping it.
func openReportStore(cfg *config.Config, logger *observability.Logger) (*sql.DB, reports.Store, error) {
	switch cfg.Reports.Backend {
	case "db":
		db, err := sql.Open(cfg.Reports.DatabaseDriver, cfg.Reports.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		store, err := reports.NewDBStore(db)
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("driver", cfg.Reports.DatabaseDriver).Info("Report store: database")
		return db, store, nil
	case "file":
		store, err := reports.NewFileStore(cfg.Reports.Dir, cfg.Reports.MaxFileSize)
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("dir", cfg.Reports.Dir).Info("Report store: file")
		return nil, store, nil
	default:
		logger.Info("Report persistence disabled")
		return nil, nil, nil
	}
}

// buildRateLimit returns the configured rate limit middleware, preferring the
// Redis-backed limiter when Redis is available so limits hold across replicas.
func buildRateLimit(cfg *config.Config, redisClient *redis.Client, logger *observability.Logger) func(http.Handler) http.Handler {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	limitCfg := &middleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
		WindowDuration:    cfg.RateLimit.WindowDuration,
		BurstSize:         cfg.RateLimit.BurstSize,
	}

	if redisClient != nil {
		logger.Info("Rate limiting enabled (distributed)")
		return middleware.NewDistributedRateLimitMiddleware(redisClient, limitCfg).Handler
	}
	logger.Info("Rate limiting enabled (local)")
	return middleware.NewRateLimitMiddleware(limitCfg).Handler
}

// startHealthServer serves probes and metrics on a dedicated port so they
// stay reachable when the API port is saturated.
func startHealthServer(cfg *config.Config, health *observability.HealthChecker, registry *prometheus.Registry, logger *observability.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", health.Liveness)
	mux.HandleFunc("/health/ready", health.Readiness)
	if registry != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Warn("Health server failed")
		}
	}()
	return srv
}
