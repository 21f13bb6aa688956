package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/contentlint/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Content source configuration
	Content ContentConfig

	// Report persistence configuration
	Reports ReportsConfig

	// Result cache configuration
	Cache CacheConfig

	// Webhook notification configuration
	Notify NotifyConfig

	// Report archive (S3) configuration
	Archive ArchiveConfig

	// API authentication configuration
	Auth AuthConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MaxRequestBytes caps lint request body size
	MaxRequestBytes int64

	// CORSAllowedOrigins lists origins allowed on the API; empty disables CORS
	CORSAllowedOrigins []string

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// ContentConfig holds content source configuration
type ContentConfig struct {
	// Root of the documentation tree to lint
	Root string

	// Path to a lint rule config file; empty means search Root for
	// .contentlint.yaml
	LintConfig string
}

// ReportsConfig holds report persistence configuration
type ReportsConfig struct {
	// Backend is "db", "file", or "none"
	Backend string

	// DB backend
	DatabaseURL    string
	DatabaseDriver string

	// File backend
	Dir         string
	MaxFileSize int64

	// Reports older than this are purged by the aggregator
	Retention time.Duration
}

// CacheConfig holds lint result cache configuration
type CacheConfig struct {
	Enabled bool
	Size    int
	TTL     time.Duration

	// Redis second-level cache; empty URL disables it
	RedisURL      string
	RedisPassword string
	RedisDB       int
}

// NotifyConfig holds webhook notification configuration
type NotifyConfig struct {
	// WebhookURLs receive an event when a lint report carries errors
	WebhookURLs []string
	Secret      string
	MaxRetries  int
	Timeout     time.Duration
}

// ArchiveConfig holds S3 archive configuration for exported reports
type ArchiveConfig struct {
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool
}

// AuthConfig holds API authentication configuration
type AuthConfig struct {
	// APIKeys is the set of accepted keys; empty disables auth
	APIKeys []string
}

// RateLimitConfig holds API rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerWindow int
	WindowDuration    time.Duration
	BurstSize         int
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Content:       loadContentConfig(),
		Reports:       loadReportsConfig(),
		Cache:         loadCacheConfig(),
		Notify:        loadNotifyConfig(),
		Archive:       loadArchiveConfig(),
		Auth:          loadAuthConfig(),
		RateLimit:     loadRateLimitConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("CONTENTLINT_HOST", "0.0.0.0"),
		Port:            getEnv("CONTENTLINT_PORT", "8080"),
		ReadTimeout:     getEnvDuration("CONTENTLINT_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("CONTENTLINT_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("CONTENTLINT_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("CONTENTLINT_SHUTDOWN_TIMEOUT", 30*time.Second),

		MaxRequestBytes:    getEnvInt64("CONTENTLINT_MAX_REQUEST_BYTES", 10<<20),
		CORSAllowedOrigins: splitList(getEnv("CONTENTLINT_CORS_ORIGINS", "")),

		HealthPort: getEnv("CONTENTLINT_HEALTH_PORT", "9090"),
	}
}

// loadContentConfig loads content source configuration from environment
func loadContentConfig() ContentConfig {
	return ContentConfig{
		Root:       getEnv("CONTENTLINT_CONTENT_ROOT", "content"),
		LintConfig: getEnv("CONTENTLINT_LINT_CONFIG", ""),
	}
}

// loadReportsConfig loads report persistence configuration from environment
func loadReportsConfig() ReportsConfig {
	return ReportsConfig{
		Backend:        getEnv("CONTENTLINT_REPORTS_BACKEND", "none"),
		DatabaseURL:    getEnv("CONTENTLINT_DATABASE_URL", ""),
		DatabaseDriver: getEnv("CONTENTLINT_DATABASE_DRIVER", "postgres"),
		Dir:            getEnv("CONTENTLINT_REPORTS_DIR", ""),
		MaxFileSize:    getEnvInt64("CONTENTLINT_REPORTS_MAX_FILE_SIZE", 64<<20),
		Retention:      getEnvDuration("CONTENTLINT_REPORTS_RETENTION", 90*24*time.Hour),
	}
}

// loadCacheConfig loads cache configuration from environment
func loadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:       getEnvBool("CONTENTLINT_CACHE_ENABLED", true),
		Size:          getEnvInt("CONTENTLINT_CACHE_SIZE", 1024),
		TTL:           getEnvDuration("CONTENTLINT_CACHE_TTL", 15*time.Minute),
		RedisURL:      getEnv("CONTENTLINT_REDIS_URL", ""),
		RedisPassword: getEnv("CONTENTLINT_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("CONTENTLINT_REDIS_DB", 0),
	}
}

// loadNotifyConfig loads webhook configuration from environment
func loadNotifyConfig() NotifyConfig {
	return NotifyConfig{
		WebhookURLs: splitList(getEnv("CONTENTLINT_WEBHOOK_URLS", "")),
		Secret:      getEnv("CONTENTLINT_WEBHOOK_SECRET", ""),
		MaxRetries:  getEnvInt("CONTENTLINT_WEBHOOK_MAX_RETRIES", 3),
		Timeout:     getEnvDuration("CONTENTLINT_WEBHOOK_TIMEOUT", 10*time.Second),
	}
}

// loadArchiveConfig loads S3 archive configuration from environment
func loadArchiveConfig() ArchiveConfig {
	return ArchiveConfig{
		S3Endpoint:     getEnv("CONTENTLINT_S3_ENDPOINT", ""),
		S3Region:       getEnv("CONTENTLINT_S3_REGION", "us-east-1"),
		S3Bucket:       getEnv("CONTENTLINT_S3_BUCKET", ""),
		S3AccessKey:    getEnv("CONTENTLINT_S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("CONTENTLINT_S3_SECRET_KEY", ""),
		S3UsePathStyle: getEnvBool("CONTENTLINT_S3_USE_PATH_STYLE", false),
	}
}

// loadAuthConfig loads authentication configuration from environment
func loadAuthConfig() AuthConfig {
	return AuthConfig{
		APIKeys: splitList(getEnv("CONTENTLINT_API_KEYS", "")),
	}
}

// loadRateLimitConfig loads rate limiting configuration from environment
func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           getEnvBool("CONTENTLINT_RATE_LIMIT_ENABLED", false),
		RequestsPerWindow: getEnvInt("CONTENTLINT_RATE_LIMIT_REQUESTS", 100),
		WindowDuration:    getEnvDuration("CONTENTLINT_RATE_LIMIT_WINDOW", time.Minute),
		BurstSize:         getEnvInt("CONTENTLINT_RATE_LIMIT_BURST", 10),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	cfg := ObservabilityConfig{
		LogLevel:           parseLogLevel(getEnv("CONTENTLINT_LOG_LEVEL", "info")),
		MetricsEnabled:     getEnvBool("CONTENTLINT_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("CONTENTLINT_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("CONTENTLINT_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("CONTENTLINT_OTEL_SERVICE_NAME", "contentlint"),
		OTelServiceVersion: getEnv("CONTENTLINT_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("CONTENTLINT_OTEL_INSECURE", true),
	}

	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("max request bytes must be positive")
	}

	// Validate report persistence config based on backend
	switch c.Reports.Backend {
	case "db":
		if c.Reports.DatabaseURL == "" {
			return fmt.Errorf("database URL is required for db report backend")
		}
		if c.Reports.DatabaseDriver != "postgres" && c.Reports.DatabaseDriver != "sqlite3" {
			return fmt.Errorf("invalid database driver: %s (must be postgres or sqlite3)", c.Reports.DatabaseDriver)
		}
	case "file":
		if c.Reports.Dir == "" {
			return fmt.Errorf("reports directory is required for file report backend")
		}
	case "none":
	default:
		return fmt.Errorf("invalid report backend: %s (must be db, file, or none)", c.Reports.Backend)
	}

	// Validate cache config
	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache size must be positive when cache is enabled")
	}

	// Validate webhook config
	if len(c.Notify.WebhookURLs) > 0 && c.Notify.Secret == "" {
		return fmt.Errorf("webhook secret is required when webhook URLs are configured")
	}

	// Validate rate limit config
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerWindow <= 0 {
		return fmt.Errorf("rate limit requests per window must be positive when rate limiting is enabled")
	}

	// Validate OpenTelemetry config
	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// splitList splits a comma-separated env value into trimmed entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return nil
	}
	return items
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
