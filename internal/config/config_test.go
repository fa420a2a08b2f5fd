package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		SessionBackend:   SessionBackendCookie,
		UserCacheType:    UserCacheTypeMemory,
		UserCacheTTL:     5 * time.Minute,
		MetricsCacheType: MetricsCacheTypeMemory,
	}
}

func TestConfig_Validate_SessionBackend(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid cookie backend",
			mutate: func(c *Config) { c.SessionBackend = SessionBackendCookie },
		},
		{
			name:   "valid memory backend",
			mutate: func(c *Config) { c.SessionBackend = SessionBackendMemory },
		},
		{
			name: "valid redis backend with redis address",
			mutate: func(c *Config) {
				c.SessionBackend = SessionBackendRedis
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name: "redis backend without redis address",
			mutate: func(c *Config) {
				c.SessionBackend = SessionBackendRedis
				c.RedisAddr = ""
			},
			expectError: true,
			errorMsg:    `SESSION_BACKEND="redis" requires REDIS_ADDR`,
		},
		{
			name:        "invalid backend - typo",
			mutate:      func(c *Config) { c.SessionBackend = "cokie" },
			expectError: true,
			errorMsg:    `invalid SESSION_BACKEND value: "cokie"`,
		},
		{
			name:        "invalid backend - empty string",
			mutate:      func(c *Config) { c.SessionBackend = "" },
			expectError: true,
			errorMsg:    `invalid SESSION_BACKEND value: ""`,
		},
		{
			name:        "invalid backend - uppercase",
			mutate:      func(c *Config) { c.SessionBackend = "COOKIE" },
			expectError: true,
			errorMsg:    `invalid SESSION_BACKEND value: "COOKIE"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_UserCache(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid memory user cache",
			mutate: func(c *Config) {},
		},
		{
			name: "valid redis user cache with redis address",
			mutate: func(c *Config) {
				c.UserCacheType = UserCacheTypeRedis
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name: "redis user cache without redis address",
			mutate: func(c *Config) {
				c.UserCacheType = UserCacheTypeRedis
				c.RedisAddr = ""
			},
			expectError: true,
			errorMsg:    `USER_CACHE_TYPE="redis" requires REDIS_ADDR`,
		},
		{
			name:        "invalid user cache type",
			mutate:      func(c *Config) { c.UserCacheType = "invalid" },
			expectError: true,
			errorMsg:    `invalid USER_CACHE_TYPE value: "invalid"`,
		},
		{
			name:        "zero UserCacheTTL rejected",
			mutate:      func(c *Config) { c.UserCacheTTL = 0 },
			expectError: true,
			errorMsg:    "USER_CACHE_TTL must be a positive duration",
		},
		{
			name:        "negative UserCacheTTL rejected",
			mutate:      func(c *Config) { c.UserCacheTTL = -1 * time.Second },
			expectError: true,
			errorMsg:    "USER_CACHE_TTL must be a positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_MetricsCache(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid memory cache",
			mutate: func(c *Config) {},
		},
		{
			name: "valid redis cache with redis address",
			mutate: func(c *Config) {
				c.MetricsCacheType = MetricsCacheTypeRedis
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name: "valid redis-aside cache with redis address",
			mutate: func(c *Config) {
				c.MetricsCacheType = MetricsCacheTypeRedisAside
				c.MetricsCacheClientTTL = 30 * time.Second
				c.RedisAddr = "localhost:6379"
			},
		},
		{
			name:        "invalid cache type - typo",
			mutate:      func(c *Config) { c.MetricsCacheType = "reddis" },
			expectError: true,
			errorMsg:    `invalid METRICS_CACHE_TYPE value: "reddis"`,
		},
		{
			name: "redis cache type without redis address",
			mutate: func(c *Config) {
				c.MetricsCacheType = MetricsCacheTypeRedis
				c.RedisAddr = ""
			},
			expectError: true,
			errorMsg:    `METRICS_CACHE_TYPE="redis" requires REDIS_ADDR`,
		},
		{
			name: "redis-aside without redis address",
			mutate: func(c *Config) {
				c.MetricsCacheType = MetricsCacheTypeRedisAside
				c.RedisAddr = ""
			},
			expectError: true,
			errorMsg:    `METRICS_CACHE_TYPE="redis-aside" requires REDIS_ADDR`,
		},
		{
			name: "zero client TTL rejected for redis-aside",
			mutate: func(c *Config) {
				c.MetricsCacheType = MetricsCacheTypeRedisAside
				c.MetricsCacheClientTTL = 0
				c.RedisAddr = "localhost:6379"
			},
			expectError: true,
			errorMsg:    "METRICS_CACHE_CLIENT_TTL must be a positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate_APIKey(t *testing.T) {
	cfg := validConfig()
	cfg.APIKeyEnabled = true
	cfg.APIKeyHash = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY_ENABLED requires API_KEY_HASH")

	cfg.APIKeyHash = "ab12cd34"
	require.NoError(t, cfg.Validate())
}

func TestSessionBackendConstants(t *testing.T) {
	assert.Equal(t, "cookie", SessionBackendCookie)
	assert.Equal(t, "memory", SessionBackendMemory)
	assert.Equal(t, "redis", SessionBackendRedis)
}

func TestUserCacheConstants(t *testing.T) {
	assert.Equal(t, "memory", UserCacheTypeMemory)
	assert.Equal(t, "redis", UserCacheTypeRedis)
}

func TestMetricsCacheConstants(t *testing.T) {
	assert.Equal(t, "memory", MetricsCacheTypeMemory)
	assert.Equal(t, "redis", MetricsCacheTypeRedis)
	assert.Equal(t, "redis-aside", MetricsCacheTypeRedisAside)
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, SessionBackendCookie, cfg.SessionBackend)
	assert.Equal(t, 3600, cfg.SessionMaxAge)
	assert.Equal(t, 0, cfg.SessionIdleTimeout)
	assert.False(t, cfg.SessionFingerprint)
	assert.Equal(t, AuthModeLocal, cfg.AuthMode)
	assert.Equal(t, "X-API-Key", cfg.APIKeyHeader)
	assert.Equal(t, 5*time.Minute, cfg.UserCacheTTL)
	assert.True(t, cfg.MetricsEnabled)
	assert.True(t, cfg.EnableAuditLogging)
	assert.Equal(t, 1000, cfg.AuditLogBufferSize)
	assert.Equal(t, 90*24*time.Hour, cfg.AuditLogRetention)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SESSION_IDLE_TIMEOUT", "1800")
	t.Setenv("SESSION_FINGERPRINT", "true")
	t.Setenv("AUTH_MODE", "http_api")
	t.Setenv("HTTP_API_URL", "https://auth.example.com/v1/check")
	t.Setenv("USER_CACHE_TTL", "2m")

	cfg := Load()

	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, 1800, cfg.SessionIdleTimeout)
	assert.True(t, cfg.SessionFingerprint)
	assert.Equal(t, AuthModeHTTPAPI, cfg.AuthMode)
	assert.Equal(t, "https://auth.example.com/v1/check", cfg.HTTPAPIURL)
	assert.Equal(t, 2*time.Minute, cfg.UserCacheTTL)
}
