package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/contentlint/pkg/cache"
	"github.com/platinummonkey/contentlint/pkg/httputil"
	"github.com/platinummonkey/contentlint/pkg/linter"
	"github.com/platinummonkey/contentlint/pkg/middleware"
	"github.com/platinummonkey/contentlint/pkg/notify"
	"github.com/platinummonkey/contentlint/pkg/observability"
	"github.com/platinummonkey/contentlint/pkg/reports"
)

// maxBatchSize bounds one batch lint call
const maxBatchSize = 100

// defaultMaxRequestBytes bounds the request body size (4 MiB)
const defaultMaxRequestBytes = 4 << 20

// Server represents the lint API server
type Server struct {
	engine     *linter.LintEngine
	router     *mux.Router
	localCache *cache.ResultCache
	redisCache *cache.RedisCache
	store      reports.Store
	sender     *notify.Sender
	metrics    *observability.Metrics
	logger     *observability.Logger
	health     *observability.HealthChecker
	registry   *prometheus.Registry
	auth       *middleware.APIKeyAuth
	rateLimit  func(http.Handler) http.Handler
	maxBytes   int64
	tracing    bool
}

// Options configures optional server dependencies. Zero values disable
// the corresponding feature.
type Options struct {
	// LocalCache caches lint results in process
	LocalCache *cache.ResultCache
	// RedisCache caches lint results across instances
	RedisCache *cache.RedisCache
	// Store persists lint reports; nil disables the reports endpoints
	Store reports.Store
	// Sender dispatches webhook events for reports with errors
	Sender *notify.Sender
	// Metrics records Prometheus metrics
	Metrics *observability.Metrics
	// Logger receives request and error logs
	Logger *observability.Logger
	// Health backs the health endpoints
	Health *observability.HealthChecker
	// Registry serves /metrics when set
	Registry *prometheus.Registry
	// Auth guards /api/v1 when API keys are configured
	Auth *middleware.APIKeyAuth
	// RateLimit wraps /api/v1 when set
	RateLimit func(http.Handler) http.Handler
	// MaxRequestBytes caps request body size; zero uses the default
	MaxRequestBytes int64
	// Tracing wraps /api/v1 in OpenTelemetry server spans
	Tracing bool
}

// NewServer creates a new lint API server
func NewServer(engine *linter.LintEngine, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = defaultMaxRequestBytes
	}

	s := &Server{
		engine:     engine,
		router:     mux.NewRouter(),
		localCache: opts.LocalCache,
		redisCache: opts.RedisCache,
		store:      opts.Store,
		sender:     opts.Sender,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		health:     opts.Health,
		registry:   opts.Registry,
		auth:       opts.Auth,
		rateLimit:  opts.RateLimit,
		maxBytes:   opts.MaxRequestBytes,
		tracing:    opts.Tracing,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(httputil.RecoveryMiddleware)
	if s.metrics != nil {
		s.router.Use(observability.HTTPMetricsMiddleware(s.metrics))
	}

	// Health and metrics stay outside auth so probes keep working when
	// keys rotate.
	if s.health != nil {
		s.router.HandleFunc("/health", s.health.Readiness).Methods("GET")
		s.router.HandleFunc("/health/live", s.health.Liveness).Methods("GET")
		s.router.HandleFunc("/health/ready", s.health.Readiness).Methods("GET")
	}
	if s.registry != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	}

	v1 := s.router.PathPrefix("/api/v1").Subrouter()
	if s.tracing {
		v1.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "contentlint.api")
		})
	}
	v1.Use(httputil.MaxBytesMiddleware(s.maxBytes))
	if s.auth != nil && s.auth.Enabled() {
		v1.Use(s.auth.Handler)
	}
	if s.rateLimit != nil {
		v1.Use(s.rateLimit)
	}

	v1.HandleFunc("/lint", s.handleLint).Methods("POST")
	v1.HandleFunc("/lint/batch", s.handleLintBatch).Methods("POST")
	v1.HandleFunc("/rules", s.listRules).Methods("GET")
	v1.HandleFunc("/rules/{id}", s.getRule).Methods("GET")
	v1.HandleFunc("/reports", s.searchReports).Methods("GET")
	v1.HandleFunc("/reports/{id}", s.getReport).Methods("GET")
}

// Router returns the configured HTTP handler
func (s *Server) Router() http.Handler {
	return s.router
}
