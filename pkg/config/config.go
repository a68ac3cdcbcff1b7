package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/alloykit/pkg/observability"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Workspace     WorkspaceConfig
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
	MaxBodyBytes    int64

	// RateLimit is requests per client per window on /v1; 0 disables limiting
	RateLimit       int
	RateLimitWindow time.Duration
	RateLimitBurst  int
}

// Address joins host and port
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// WorkspaceConfig holds diagnostic storage and analysis settings
type WorkspaceConfig struct {
	Store          string
	RedisURL       string
	RedisKeyPrefix string
	RedisTTL       time.Duration
	RedisPoolSize  int
	CacheSize      int
	CacheTTL       time.Duration
	LintConfigPath string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel  observability.LogLevel
	LogFormat observability.LogFormat

	MetricsEnabled bool

	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool
	OTelSampleRatio    float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Workspace:     loadWorkspaceConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("ALLOYKIT_HOST", "0.0.0.0"),
		Port:            getEnv("ALLOYKIT_PORT", "8080"),
		ReadTimeout:     getEnvDuration("ALLOYKIT_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("ALLOYKIT_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("ALLOYKIT_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("ALLOYKIT_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    getEnvInt64("ALLOYKIT_MAX_BODY_BYTES", 4<<20),
		RateLimit:       getEnvInt("ALLOYKIT_RATE_LIMIT", 0),
		RateLimitWindow: getEnvDuration("ALLOYKIT_RATE_LIMIT_WINDOW", time.Minute),
		RateLimitBurst:  getEnvInt("ALLOYKIT_RATE_LIMIT_BURST", 0),
	}
}

func loadWorkspaceConfig() WorkspaceConfig {
	return WorkspaceConfig{
		Store:          strings.ToLower(getEnv("ALLOYKIT_STORE", StoreMemory)),
		RedisURL:       getEnv("ALLOYKIT_REDIS_URL", "redis://localhost:6379/0"),
		RedisKeyPrefix: getEnv("ALLOYKIT_REDIS_KEY_PREFIX", "alloykit:"),
		RedisTTL:       getEnvDuration("ALLOYKIT_REDIS_TTL", 24*time.Hour),
		RedisPoolSize:  getEnvInt("ALLOYKIT_REDIS_POOL_SIZE", 10),
		CacheSize:      getEnvInt("ALLOYKIT_CACHE_SIZE", 256),
		CacheTTL:       getEnvDuration("ALLOYKIT_CACHE_TTL", 10*time.Minute),
		LintConfigPath: getEnv("ALLOYKIT_LINT_CONFIG", ""),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	level, err := observability.ParseLogLevel(getEnv("ALLOYKIT_LOG_LEVEL", "info"))
	if err != nil {
		level = observability.InfoLevel
	}

	return ObservabilityConfig{
		LogLevel:           level,
		LogFormat:          observability.LogFormat(strings.ToLower(getEnv("ALLOYKIT_LOG_FORMAT", string(observability.JSONFormat)))),
		MetricsEnabled:     getEnvBool("ALLOYKIT_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("ALLOYKIT_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("ALLOYKIT_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("ALLOYKIT_OTEL_SERVICE_NAME", "alloykit"),
		OTelServiceVersion: getEnv("ALLOYKIT_OTEL_SERVICE_VERSION", "dev"),
		OTelInsecure:       getEnvBool("ALLOYKIT_OTEL_INSECURE", true),
		OTelSampleRatio:    getEnvFloat("ALLOYKIT_OTEL_SAMPLE_RATIO", 1),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %q", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive")
	}
	if c.Server.RateLimit < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit and burst cannot be negative")
	}
	if c.Server.RateLimit > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}

	switch c.Workspace.Store {
	case StoreMemory:
	case StoreRedis:
		if c.Workspace.RedisURL == "" {
			return fmt.Errorf("redis URL is required for redis store")
		}
	default:
		return fmt.Errorf("invalid store: %s (must be %s or %s)", c.Workspace.Store, StoreMemory, StoreRedis)
	}

	if c.Workspace.CacheSize < 0 {
		return fmt.Errorf("cache size cannot be negative")
	}

	switch c.Observability.LogFormat {
	case observability.JSONFormat, observability.TextFormat:
	default:
		return fmt.Errorf("invalid log format: %s (must be json or text)", c.Observability.LogFormat)
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
		if c.Observability.OTelSampleRatio < 0 || c.Observability.OTelSampleRatio > 1 {
			return fmt.Errorf("OpenTelemetry sample ratio must be between 0 and 1")
		}
	}

	return nil
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

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
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
