package config

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/platinummonkey/contentlint/pkg/observability"
)

// TestGetEnv tests the getEnv helper function
func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		want         string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			want:         "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_VAR_NOT_SET",
			defaultValue: "default",
			envValue:     "",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvBool tests the getEnvBool helper function
func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue bool
		envValue     string
		want         bool
	}{
		{
			name:         "returns true for 'true'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "true",
			want:         true,
		},
		{
			name:         "returns true for '1'",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "1",
			want:         true,
		},
		{
			name:         "returns false for 'false'",
			key:          "TEST_BOOL",
			defaultValue: true,
			envValue:     "false",
			want:         false,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_BOOL_NOT_SET",
			defaultValue: true,
			envValue:     "",
			want:         true,
		},
		{
			name:         "returns true for 'TRUE' (case insensitive)",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "TRUE",
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvBool(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvBool() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvInt tests the getEnvInt helper function
func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int
		envValue     string
		want         int
	}{
		{
			name:         "returns parsed int",
			key:          "TEST_INT",
			defaultValue: 10,
			envValue:     "42",
			want:         42,
		},
		{
			name:         "returns default for invalid int",
			key:          "TEST_INT",
			defaultValue: 10,
			envValue:     "invalid",
			want:         10,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_INT_NOT_SET",
			defaultValue: 10,
			envValue:     "",
			want:         10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvInt64 tests the getEnvInt64 helper function
func TestGetEnvInt64(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int64
		envValue     string
		want         int64
	}{
		{
			name:         "returns parsed int64",
			key:          "TEST_INT64",
			defaultValue: 10,
			envValue:     "9223372036854775807",
			want:         9223372036854775807,
		},
		{
			name:         "returns default for invalid int64",
			key:          "TEST_INT64",
			defaultValue: 10,
			envValue:     "invalid",
			want:         10,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_INT64_NOT_SET",
			defaultValue: 10,
			envValue:     "",
			want:         10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvInt64(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvInt64() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGetEnvDuration tests the getEnvDuration helper function
func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue time.Duration
		envValue     string
		want         time.Duration
	}{
		{
			name:         "returns parsed duration",
			key:          "TEST_DURATION",
			defaultValue: 10 * time.Second,
			envValue:     "30s",
			want:         30 * time.Second,
		},
		{
			name:         "returns default for invalid duration",
			key:          "TEST_DURATION",
			defaultValue: 10 * time.Second,
			envValue:     "invalid",
			want:         10 * time.Second,
		},
		{
			name:         "returns default when not set",
			key:          "TEST_DURATION_NOT_SET",
			defaultValue: 10 * time.Second,
			envValue:     "",
			want:         10 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			got := getEnvDuration(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestParseLogLevel tests the parseLogLevel function
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  observability.LogLevel
	}{
		{
			name:  "debug",
			level: "debug",
			want:  observability.DebugLevel,
		},
		{
			name:  "DEBUG uppercase",
			level: "DEBUG",
			want:  observability.DebugLevel,
		},
		{
			name:  "info",
			level: "info",
			want:  observability.InfoLevel,
		},
		{
			name:  "warn",
			level: "warn",
			want:  observability.WarnLevel,
		},
		{
			name:  "warning",
			level: "warning",
			want:  observability.WarnLevel,
		},
		{
			name:  "error",
			level: "error",
			want:  observability.ErrorLevel,
		},
		{
			name:  "invalid defaults to info",
			level: "invalid",
			want:  observability.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLogLevel(tt.level)
			if got != tt.want {
				t.Errorf("parseLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSplitList tests the splitList helper function
func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "empty value",
			value: "",
			want:  nil,
		},
		{
			name:  "single entry",
			value: "https://hooks.example.com/lint",
			want:  []string{"https://hooks.example.com/lint"},
		},
		{
			name:  "multiple entries with whitespace",
			value: "key-1, key-2 ,key-3",
			want:  []string{"key-1", "key-2", "key-3"},
		},
		{
			name:  "only separators",
			value: " , ,",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitList(tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitList() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLoadServerConfig tests the loadServerConfig function
func TestLoadServerConfig(t *testing.T) {
	// Save current env and restore after test
	originalEnv := map[string]string{
		"CONTENTLINT_HOST":              os.Getenv("CONTENTLINT_HOST"),
		"CONTENTLINT_PORT":              os.Getenv("CONTENTLINT_PORT"),
		"CONTENTLINT_READ_TIMEOUT":      os.Getenv("CONTENTLINT_READ_TIMEOUT"),
		"CONTENTLINT_WRITE_TIMEOUT":     os.Getenv("CONTENTLINT_WRITE_TIMEOUT"),
		"CONTENTLINT_IDLE_TIMEOUT":      os.Getenv("CONTENTLINT_IDLE_TIMEOUT"),
		"CONTENTLINT_SHUTDOWN_TIMEOUT":  os.Getenv("CONTENTLINT_SHUTDOWN_TIMEOUT"),
		"CONTENTLINT_MAX_REQUEST_BYTES": os.Getenv("CONTENTLINT_MAX_REQUEST_BYTES"),
		"CONTENTLINT_CORS_ORIGINS":      os.Getenv("CONTENTLINT_CORS_ORIGINS"),
		"CONTENTLINT_HEALTH_PORT":       os.Getenv("CONTENTLINT_HEALTH_PORT"),
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	tests := []struct {
		name string
		env  map[string]string
		want ServerConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: ServerConfig{
				Host:            "0.0.0.0",
				Port:            "8080",
				ReadTimeout:     15 * time.Second,
				WriteTimeout:    15 * time.Second,
				IdleTimeout:     60 * time.Second,
				ShutdownTimeout: 30 * time.Second,
				MaxRequestBytes: 10 << 20,
				HealthPort:      "9090",
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"CONTENTLINT_HOST":              "localhost",
				"CONTENTLINT_PORT":              "3000",
				"CONTENTLINT_READ_TIMEOUT":      "30s",
				"CONTENTLINT_WRITE_TIMEOUT":     "30s",
				"CONTENTLINT_IDLE_TIMEOUT":      "120s",
				"CONTENTLINT_SHUTDOWN_TIMEOUT":  "60s",
				"CONTENTLINT_MAX_REQUEST_BYTES": "1048576",
				"CONTENTLINT_CORS_ORIGINS":      "https://docs.example.com,https://www.example.com",
				"CONTENTLINT_HEALTH_PORT":       "9091",
			},
			want: ServerConfig{
				Host:               "localhost",
				Port:               "3000",
				ReadTimeout:        30 * time.Second,
				WriteTimeout:       30 * time.Second,
				IdleTimeout:        120 * time.Second,
				ShutdownTimeout:    60 * time.Second,
				MaxRequestBytes:    1 << 20,
				CORSAllowedOrigins: []string{"https://docs.example.com", "https://www.example.com"},
				HealthPort:         "9091",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear all env vars
			for k := range originalEnv {
				os.Unsetenv(k)
			}

			// Set test env vars
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			got := loadServerConfig()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("loadServerConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestLoadReportsConfig tests the loadReportsConfig function
func TestLoadReportsConfig(t *testing.T) {
	// Save current env and restore after test
	envVars := []string{
		"CONTENTLINT_REPORTS_BACKEND",
		"CONTENTLINT_DATABASE_URL",
		"CONTENTLINT_DATABASE_DRIVER",
		"CONTENTLINT_REPORTS_DIR",
		"CONTENTLINT_REPORTS_MAX_FILE_SIZE",
		"CONTENTLINT_REPORTS_RETENTION",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads default config", func(t *testing.T) {
		for _, k := range envVars {
			os.Unsetenv(k)
		}

		cfg := loadReportsConfig()
		if cfg.Backend != "none" {
			t.Errorf("Backend = %v, want none", cfg.Backend)
		}
		if cfg.DatabaseDriver != "postgres" {
			t.Errorf("DatabaseDriver = %v, want postgres", cfg.DatabaseDriver)
		}
		if cfg.MaxFileSize != 64<<20 {
			t.Errorf("MaxFileSize = %v, want %v", cfg.MaxFileSize, 64<<20)
		}
		if cfg.Retention != 90*24*time.Hour {
			t.Errorf("Retention = %v, want %v", cfg.Retention, 90*24*time.Hour)
		}
	})

	t.Run("loads db backend from env", func(t *testing.T) {
		for _, k := range envVars {
			os.Unsetenv(k)
		}

		os.Setenv("CONTENTLINT_REPORTS_BACKEND", "db")
		os.Setenv("CONTENTLINT_DATABASE_URL", "postgres://localhost/contentlint")
		os.Setenv("CONTENTLINT_DATABASE_DRIVER", "sqlite3")
		os.Setenv("CONTENTLINT_REPORTS_RETENTION", "720h")

		cfg := loadReportsConfig()
		if cfg.Backend != "db" {
			t.Errorf("Backend = %v, want db", cfg.Backend)
		}
		if cfg.DatabaseURL != "postgres://localhost/contentlint" {
			t.Errorf("DatabaseURL = %v", cfg.DatabaseURL)
		}
		if cfg.DatabaseDriver != "sqlite3" {
			t.Errorf("DatabaseDriver = %v, want sqlite3", cfg.DatabaseDriver)
		}
		if cfg.Retention != 720*time.Hour {
			t.Errorf("Retention = %v, want 720h", cfg.Retention)
		}
	})

	t.Run("loads file backend from env", func(t *testing.T) {
		for _, k := range envVars {
			os.Unsetenv(k)
		}

		os.Setenv("CONTENTLINT_REPORTS_BACKEND", "file")
		os.Setenv("CONTENTLINT_REPORTS_DIR", "/var/lib/contentlint/reports")
		os.Setenv("CONTENTLINT_REPORTS_MAX_FILE_SIZE", "1048576")

		cfg := loadReportsConfig()
		if cfg.Backend != "file" {
			t.Errorf("Backend = %v, want file", cfg.Backend)
		}
		if cfg.Dir != "/var/lib/contentlint/reports" {
			t.Errorf("Dir = %v", cfg.Dir)
		}
		if cfg.MaxFileSize != 1048576 {
			t.Errorf("MaxFileSize = %v, want 1048576", cfg.MaxFileSize)
		}
	})
}

// TestLoadCacheConfig tests the loadCacheConfig function
func TestLoadCacheConfig(t *testing.T) {
	// Save current env and restore after test
	envVars := []string{
		"CONTENTLINT_CACHE_ENABLED",
		"CONTENTLINT_CACHE_SIZE",
		"CONTENTLINT_CACHE_TTL",
		"CONTENTLINT_REDIS_URL",
		"CONTENTLINT_REDIS_PASSWORD",
		"CONTENTLINT_REDIS_DB",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads default config", func(t *testing.T) {
		for _, k := range envVars {
			os.Unsetenv(k)
		}

		cfg := loadCacheConfig()
		if !cfg.Enabled {
			t.Error("Enabled = false, want true")
		}
		if cfg.Size != 1024 {
			t.Errorf("Size = %v, want 1024", cfg.Size)
		}
		if cfg.TTL != 15*time.Minute {
			t.Errorf("TTL = %v, want 15m", cfg.TTL)
		}
		if cfg.RedisURL != "" {
			t.Errorf("RedisURL = %v, want empty", cfg.RedisURL)
		}
	})

	t.Run("loads redis config from env", func(t *testing.T) {
		for _, k := range envVars {
			os.Unsetenv(k)
		}

		os.Setenv("CONTENTLINT_REDIS_URL", "redis://localhost:6379")
		os.Setenv("CONTENTLINT_REDIS_PASSWORD", "password")
		os.Setenv("CONTENTLINT_REDIS_DB", "1")

		cfg := loadCacheConfig()
		if cfg.RedisURL != "redis://localhost:6379" {
			t.Errorf("RedisURL = %v", cfg.RedisURL)
		}
		if cfg.RedisPassword != "password" {
			t.Errorf("RedisPassword = %v", cfg.RedisPassword)
		}
		if cfg.RedisDB != 1 {
			t.Errorf("RedisDB = %v, want 1", cfg.RedisDB)
		}
	})
}

// TestLoadNotifyConfig tests the loadNotifyConfig function
func TestLoadNotifyConfig(t *testing.T) {
	// Save current env and restore after test
	envVars := []string{
		"CONTENTLINT_WEBHOOK_URLS",
		"CONTENTLINT_WEBHOOK_SECRET",
		"CONTENTLINT_WEBHOOK_MAX_RETRIES",
		"CONTENTLINT_WEBHOOK_TIMEOUT",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	for _, k := range envVars {
		os.Unsetenv(k)
	}

	os.Setenv("CONTENTLINT_WEBHOOK_URLS", "https://a.example.com/h1,https://b.example.com/h2")
	os.Setenv("CONTENTLINT_WEBHOOK_SECRET", "hushhush")
	os.Setenv("CONTENTLINT_WEBHOOK_MAX_RETRIES", "5")
	os.Setenv("CONTENTLINT_WEBHOOK_TIMEOUT", "20s")

	cfg := loadNotifyConfig()
	want := []string{"https://a.example.com/h1", "https://b.example.com/h2"}
	if !reflect.DeepEqual(cfg.WebhookURLs, want) {
		t.Errorf("WebhookURLs = %v, want %v", cfg.WebhookURLs, want)
	}
	if cfg.Secret != "hushhush" {
		t.Errorf("Secret = %v", cfg.Secret)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %v, want 5", cfg.MaxRetries)
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("Timeout = %v, want 20s", cfg.Timeout)
	}
}

// TestLoadObservabilityConfig tests the loadObservabilityConfig function
func TestLoadObservabilityConfig(t *testing.T) {
	// Save current env and restore after test
	envVars := []string{
		"CONTENTLINT_LOG_LEVEL",
		"CONTENTLINT_METRICS_ENABLED",
		"CONTENTLINT_OTEL_ENABLED",
		"CONTENTLINT_OTEL_ENDPOINT",
		"CONTENTLINT_OTEL_SERVICE_NAME",
		"CONTENTLINT_OTEL_SERVICE_VERSION",
		"CONTENTLINT_OTEL_INSECURE",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	tests := []struct {
		name string
		env  map[string]string
		want ObservabilityConfig
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: ObservabilityConfig{
				LogLevel:           observability.InfoLevel,
				MetricsEnabled:     true,
				OTelEnabled:        false,
				OTelEndpoint:       "localhost:4317",
				OTelServiceName:    "contentlint",
				OTelServiceVersion: "1.0.0",
				OTelInsecure:       true,
			},
		},
		{
			name: "custom values",
			env: map[string]string{
				"CONTENTLINT_LOG_LEVEL":            "debug",
				"CONTENTLINT_METRICS_ENABLED":      "false",
				"CONTENTLINT_OTEL_ENABLED":         "true",
				"CONTENTLINT_OTEL_ENDPOINT":        "otel-collector:4317",
				"CONTENTLINT_OTEL_SERVICE_NAME":    "my-service",
				"CONTENTLINT_OTEL_SERVICE_VERSION": "2.0.0",
				"CONTENTLINT_OTEL_INSECURE":        "false",
			},
			want: ObservabilityConfig{
				LogLevel:           observability.DebugLevel,
				MetricsEnabled:     false,
				OTelEnabled:        true,
				OTelEndpoint:       "otel-collector:4317",
				OTelServiceName:    "my-service",
				OTelServiceVersion: "2.0.0",
				OTelInsecure:       false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear all env vars
			for _, k := range envVars {
				os.Unsetenv(k)
			}

			// Set test env vars
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			got := loadObservabilityConfig()
			if got != tt.want {
				t.Errorf("loadObservabilityConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestConfigValidate tests the Config.Validate method
func TestConfigValidate(t *testing.T) {
	// validConfig returns a minimal passing configuration
	validConfig := func() Config {
		return Config{
			Server: ServerConfig{
				Port:            "8080",
				HealthPort:      "9090",
				MaxRequestBytes: 10 << 20,
			},
			Reports: ReportsConfig{
				Backend:        "none",
				DatabaseDriver: "postgres",
			},
		}
	}

	t.Run("valid minimal config", func(t *testing.T) {
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() unexpected error = %v", err)
		}
	})

	t.Run("missing server port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = ""

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "server port is required" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("missing health port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.HealthPort = ""

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "health port is required" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("same server and health port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.HealthPort = "8080"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "server port and health port must be different" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("non-positive max request bytes", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.MaxRequestBytes = 0

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "max request bytes must be positive" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("db backend without database url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Reports.Backend = "db"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "database URL is required for db report backend" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("db backend with invalid driver", func(t *testing.T) {
		cfg := validConfig()
		cfg.Reports.Backend = "db"
		cfg.Reports.DatabaseURL = "postgres://localhost/contentlint"
		cfg.Reports.DatabaseDriver = "mysql"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "invalid database driver: mysql (must be postgres or sqlite3)" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("file backend without dir", func(t *testing.T) {
		cfg := validConfig()
		cfg.Reports.Backend = "file"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "reports directory is required for file report backend" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("invalid backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.Reports.Backend = "kafka"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "invalid report backend: kafka (must be db, file, or none)" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("cache enabled with zero size", func(t *testing.T) {
		cfg := validConfig()
		cfg.Cache.Enabled = true
		cfg.Cache.Size = 0

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "cache size must be positive when cache is enabled" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("webhooks without secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.Notify.WebhookURLs = []string{"https://hooks.example.com/lint"}

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "webhook secret is required when webhook URLs are configured" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("rate limit enabled with zero requests", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerWindow = 0

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "rate limit requests per window must be positive when rate limiting is enabled" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("otel enabled without endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Observability.OTelEnabled = true
		cfg.Observability.OTelEndpoint = ""
		cfg.Observability.OTelServiceName = "test"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "OpenTelemetry endpoint is required when OTel is enabled" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("otel enabled without service name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Observability.OTelEnabled = true
		cfg.Observability.OTelEndpoint = "localhost:4317"
		cfg.Observability.OTelServiceName = ""

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if err.Error() != "OpenTelemetry service name is required when OTel is enabled" {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("valid db config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Reports.Backend = "db"
		cfg.Reports.DatabaseURL = "postgres://localhost/contentlint"

		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() unexpected error = %v", err)
		}
	})

	t.Run("valid file config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Reports.Backend = "file"
		cfg.Reports.Dir = "/var/lib/contentlint/reports"

		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() unexpected error = %v", err)
		}
	})
}

// TestLoadConfig tests the LoadConfig function
func TestLoadConfig(t *testing.T) {
	// Save current env and restore after test
	envVars := []string{
		"CONTENTLINT_PORT",
		"CONTENTLINT_HEALTH_PORT",
		"CONTENTLINT_REPORTS_BACKEND",
		"CONTENTLINT_DATABASE_URL",
	}
	originalEnv := make(map[string]string)
	for _, k := range envVars {
		originalEnv[k] = os.Getenv(k)
	}
	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{
			name: "valid config",
			env: map[string]string{
				"CONTENTLINT_PORT":            "8080",
				"CONTENTLINT_HEALTH_PORT":     "9090",
				"CONTENTLINT_REPORTS_BACKEND": "db",
				"CONTENTLINT_DATABASE_URL":    "postgres://localhost/contentlint",
			},
			wantErr: false,
		},
		{
			name: "invalid config - same ports",
			env: map[string]string{
				"CONTENTLINT_PORT":        "8080",
				"CONTENTLINT_HEALTH_PORT": "8080",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clear all env vars
			for _, k := range envVars {
				os.Unsetenv(k)
			}

			// Set test env vars
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			cfg, err := LoadConfig()
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && cfg == nil {
				t.Error("LoadConfig() returned nil config without error")
			}
		})
	}
}
