// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	CONTENTLINT_HOST="0.0.0.0"
//	CONTENTLINT_PORT="8080"
//	CONTENTLINT_HEALTH_PORT="9090"
//	CONTENTLINT_READ_TIMEOUT="15s"
//	CONTENTLINT_WRITE_TIMEOUT="15s"
//
// Content settings:
//
//	CONTENTLINT_CONTENT_ROOT="content"
//	CONTENTLINT_LINT_CONFIG=".contentlint.yaml"
//
// Report persistence settings:
//
//	CONTENTLINT_REPORTS_BACKEND="db"  # db, file, none
//	CONTENTLINT_DATABASE_URL="postgres://localhost/contentlint"
//	CONTENTLINT_DATABASE_DRIVER="postgres"  # postgres, sqlite3
//	CONTENTLINT_REPORTS_DIR="/var/lib/contentlint/reports"
//	CONTENTLINT_REPORTS_RETENTION="2160h"
//
// Cache settings:
//
//	CONTENTLINT_CACHE_ENABLED="true"
//	CONTENTLINT_CACHE_SIZE="1024"
//	CONTENTLINT_CACHE_TTL="15m"
//	CONTENTLINT_REDIS_URL="redis://localhost:6379"
//
// Observability settings:
//
//	CONTENTLINT_LOG_LEVEL="info"  # debug, info, warn, error
//	CONTENTLINT_METRICS_ENABLED="true"
//	CONTENTLINT_OTEL_ENABLED="true"
//	CONTENTLINT_OTEL_ENDPOINT="otel-collector:4317"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//	fmt.Printf("Reports: %s\n", cfg.Reports.Backend)
//	fmt.Printf("Log level: %s\n", cfg.Observability.LogLevel)
//
// # Related Packages
//
//   - pkg/reports: Uses report persistence configuration
//   - pkg/observability: Uses observability configuration
package config
