package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_PATH", "SOURCE_MODE", "SOURCE_TIMEOUT", "SOURCE_CACHE_TTL", "ALLOWED_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "BROKER_API_BASE_URL"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "8080")

	LoadConfig()

	assert.Equal(t, "8080", Cfg.Port)
	assert.Equal(t, SourceModeDatabase, Cfg.SourceMode)
	assert.Equal(t, 10*time.Second, Cfg.SourceTimeout)
	assert.Equal(t, 30*time.Second, Cfg.SourceCacheTTL)
	assert.Equal(t, 10.0, Cfg.RateLimitRPS)
	assert.Equal(t, 30, Cfg.RateLimitBurst)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SOURCE_MODE", "HTTP")
	t.Setenv("BROKER_API_BASE_URL", "http://brokers.internal:8080/")
	t.Setenv("SOURCE_TIMEOUT", "2s")
	t.Setenv("SOURCE_CACHE_TTL", "0s")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "nope")

	LoadConfig()

	assert.Equal(t, "9090", Cfg.Port)
	assert.Equal(t, SourceModeHTTP, Cfg.SourceMode)
	assert.Equal(t, "http://brokers.internal:8080", Cfg.BrokerAPIBaseURL)
	assert.Equal(t, 2*time.Second, Cfg.SourceTimeout)
	assert.Equal(t, time.Duration(0), Cfg.SourceCacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, Cfg.AllowedOrigins)
	assert.Equal(t, 2.5, Cfg.RateLimitRPS)
	assert.Equal(t, 30, Cfg.RateLimitBurst)
}

func TestLoadConfigRejectsUnknownSourceMode(t *testing.T) {
	t.Setenv("SOURCE_MODE", "mongo")

	LoadConfig()

	assert.Equal(t, SourceModeDatabase, Cfg.SourceMode)
}

func TestLoadConfigRejectsNonPositiveRateLimits(t *testing.T) {
	for _, burst := range []string{"0", "-5"} {
		t.Setenv("RATE_LIMIT_BURST", burst)
		t.Setenv("RATE_LIMIT_RPS", "0")

		LoadConfig()

		assert.Equal(t, 30, Cfg.RateLimitBurst, "burst %s", burst)
		assert.Equal(t, 10.0, Cfg.RateLimitRPS)
	}
}
