package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Authentication mode constants
const (
	AuthModeLocal   = "local"
	AuthModeHTTPAPI = "http_api"
)

// Session backend constants
const (
	SessionBackendCookie = "cookie"
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// User cache type constants
const (
	UserCacheTypeMemory = "memory"
	UserCacheTypeRedis  = "redis"
)

// Metrics cache type constants
const (
	MetricsCacheTypeMemory     = "memory"
	MetricsCacheTypeRedis      = "redis"
	MetricsCacheTypeRedisAside = "redis-aside"
)

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// Session settings
	SessionSecret        string
	SessionBackend       string // "cookie", "memory" or "redis"
	SessionMaxAge        int    // seconds
	SessionIdleTimeout   int    // seconds, 0 disables the idle check
	SessionFingerprint   bool
	SessionFingerprintIP bool

	// Database
	DatabaseDriver       string // "sqlite" or "postgres"
	DatabaseDSN          string // Database connection string (DSN or path)
	DefaultAdminPassword string // Seed password; random when empty

	// Authentication
	AuthMode string // "local" or "http_api"

	// HTTP API Authentication
	HTTPAPIURL                string
	HTTPAPITimeout            time.Duration
	HTTPAPIInsecureSkipVerify bool
	HTTPAPIAuthMode           string // Authentication mode: "none", "simple", or "hmac"
	HTTPAPIAuthSecret         string // Shared secret for authentication
	HTTPAPIAuthHeader         string // Custom header name for simple mode (default: "X-API-Secret")
	HTTPAPIMaxRetries         int    // Maximum retry attempts (default: 3)
	HTTPAPIRetryDelay         time.Duration
	HTTPAPIMaxRetryDelay      time.Duration

	// API key authentication
	APIKeyEnabled bool
	APIKeyHeader  string // Header carrying the key (default: "X-API-Key")
	APIKeyHash    string // Hex PBKDF2 hash of the accepted key
	APIKeySalt    string
	APIKeyOwner   string // Principal name reported for the key (default: "api_service")

	// Redis (sessions and caches)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// User cache
	UserCacheType string // "memory" or "redis"
	UserCacheTTL  time.Duration

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string // Bearer token guarding /metrics; empty leaves it open
	MetricsCacheType           string // "memory", "redis" or "redis-aside"
	MetricsCacheClientTTL      time.Duration
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration

	// Audit logging
	EnableAuditLogging bool
	AuditLogBufferSize int
	AuditLogRetention  time.Duration // 0 disables cleanup

	// Lifecycle timeouts
	DBInitTimeout         time.Duration
	DBCloseTimeout        time.Duration
	CacheInitTimeout      time.Duration
	CacheCloseTimeout     time.Duration
	ServerShutdownTimeout time.Duration
	AuditShutdownTimeout  time.Duration
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	// Determine database driver and DSN
	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "pode.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		IsProduction: getEnv("ENVIRONMENT", "development") == "production",

		// Session settings
		SessionSecret:        getEnv("SESSION_SECRET", "session-secret-change-in-production"),
		SessionBackend:       getEnv("SESSION_BACKEND", SessionBackendCookie),
		SessionMaxAge:        getEnvInt("SESSION_MAX_AGE", 3600),
		SessionIdleTimeout:   getEnvInt("SESSION_IDLE_TIMEOUT", 0),
		SessionFingerprint:   getEnvBool("SESSION_FINGERPRINT", false),
		SessionFingerprintIP: getEnvBool("SESSION_FINGERPRINT_IP", false),

		DatabaseDriver:       driver,
		DatabaseDSN:          dsn,
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),

		// Authentication
		AuthMode: getEnv("AUTH_MODE", AuthModeLocal),

		// HTTP API Authentication
		HTTPAPIURL:                getEnv("HTTP_API_URL", ""),
		HTTPAPITimeout:            getEnvDuration("HTTP_API_TIMEOUT", 10*time.Second),
		HTTPAPIInsecureSkipVerify: getEnvBool("HTTP_API_INSECURE_SKIP_VERIFY", false),
		HTTPAPIAuthMode:           getEnv("HTTP_API_AUTH_MODE", "none"),
		HTTPAPIAuthSecret:         getEnv("HTTP_API_AUTH_SECRET", ""),
		HTTPAPIAuthHeader:         getEnv("HTTP_API_AUTH_HEADER", "X-API-Secret"),
		HTTPAPIMaxRetries:         getEnvInt("HTTP_API_MAX_RETRIES", 3),
		HTTPAPIRetryDelay:         getEnvDuration("HTTP_API_RETRY_DELAY", 1*time.Second),
		HTTPAPIMaxRetryDelay:      getEnvDuration("HTTP_API_MAX_RETRY_DELAY", 10*time.Second),

		// API key authentication
		APIKeyEnabled: getEnvBool("API_KEY_ENABLED", false),
		APIKeyHeader:  getEnv("API_KEY_HEADER", "X-API-Key"),
		APIKeyHash:    getEnv("API_KEY_HASH", ""),
		APIKeySalt:    getEnv("API_KEY_SALT", ""),
		APIKeyOwner:   getEnv("API_KEY_OWNER", "api_service"),

		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// User cache
		UserCacheType: getEnv("USER_CACHE_TYPE", UserCacheTypeMemory),
		UserCacheTTL:  getEnvDuration("USER_CACHE_TTL", 5*time.Minute),

		// Metrics
		MetricsEnabled:             getEnvBool("METRICS_ENABLED", true),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsCacheType:           getEnv("METRICS_CACHE_TYPE", MetricsCacheTypeMemory),
		MetricsCacheClientTTL:      getEnvDuration("METRICS_CACHE_CLIENT_TTL", 30*time.Second),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 30*time.Second),

		// Audit logging
		EnableAuditLogging: getEnvBool("ENABLE_AUDIT_LOGGING", true),
		AuditLogBufferSize: getEnvInt("AUDIT_LOG_BUFFER_SIZE", 1000),
		AuditLogRetention:  getEnvDuration("AUDIT_LOG_RETENTION", 90*24*time.Hour),

		// Lifecycle timeouts
		DBInitTimeout:         getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),
		DBCloseTimeout:        getEnvDuration("DB_CLOSE_TIMEOUT", 5*time.Second),
		CacheInitTimeout:      getEnvDuration("CACHE_INIT_TIMEOUT", 5*time.Second),
		CacheCloseTimeout:     getEnvDuration("CACHE_CLOSE_TIMEOUT", 5*time.Second),
		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		AuditShutdownTimeout:  getEnvDuration("AUDIT_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate checks cross-field constraints that Load cannot default away.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case SessionBackendCookie, SessionBackendMemory:
	case SessionBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf(`SESSION_BACKEND="redis" requires REDIS_ADDR`)
		}
	default:
		return fmt.Errorf(
			"invalid SESSION_BACKEND value: %q (must be one of: cookie, memory, redis)",
			c.SessionBackend,
		)
	}

	switch c.UserCacheType {
	case UserCacheTypeMemory:
	case UserCacheTypeRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf(`USER_CACHE_TYPE="redis" requires REDIS_ADDR`)
		}
	default:
		return fmt.Errorf(
			"invalid USER_CACHE_TYPE value: %q (must be one of: memory, redis)",
			c.UserCacheType,
		)
	}
	if c.UserCacheTTL <= 0 {
		return fmt.Errorf("USER_CACHE_TTL must be a positive duration, got %v", c.UserCacheTTL)
	}

	switch c.MetricsCacheType {
	case MetricsCacheTypeMemory:
	case MetricsCacheTypeRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf(`METRICS_CACHE_TYPE="redis" requires REDIS_ADDR`)
		}
	case MetricsCacheTypeRedisAside:
		if c.RedisAddr == "" {
			return fmt.Errorf(`METRICS_CACHE_TYPE="redis-aside" requires REDIS_ADDR`)
		}
		if c.MetricsCacheClientTTL <= 0 {
			return fmt.Errorf(
				"METRICS_CACHE_CLIENT_TTL must be a positive duration, got %v",
				c.MetricsCacheClientTTL,
			)
		}
	default:
		return fmt.Errorf(
			"invalid METRICS_CACHE_TYPE value: %q (must be one of: memory, redis, redis-aside)",
			c.MetricsCacheType,
		)
	}

	if c.APIKeyEnabled && c.APIKeyHash == "" {
		return fmt.Errorf("API_KEY_ENABLED requires API_KEY_HASH")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
