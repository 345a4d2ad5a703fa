package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, int64(4), cfg.Browser.MaxSessions)
	assert.Equal(t, 20*time.Second, cfg.Audit.NavTimeout)
	assert.Equal(t, 20, cfg.Audit.MaxDeadLinks)
	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, 5.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SITELENS_PORT", "9090")
	t.Setenv("SITELENS_HEADLESS", "false")
	t.Setenv("SITELENS_MAX_SESSIONS", "8")
	t.Setenv("SITELENS_NAV_TIMEOUT", "45s")
	t.Setenv("SITELENS_MAX_DEAD_LINKS", "5")
	t.Setenv("SITELENS_AUTH_ENABLED", "true")
	t.Setenv("SITELENS_API_KEYS", "key1, key2 ,,key3")
	t.Setenv("SITELENS_RATE_RPS", "2.5")
	t.Setenv("SITELENS_CACHE_TTL", "10m")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, int64(8), cfg.Browser.MaxSessions)
	assert.Equal(t, 45*time.Second, cfg.Audit.NavTimeout)
	assert.Equal(t, 5, cfg.Audit.MaxDeadLinks)
	assert.True(t, cfg.Auth.Enabled)
	assert.Equal(t, []string{"key1", "key2", "key3"}, cfg.Auth.APIKeys)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SITELENS_PORT", "not-a-number")
	t.Setenv("SITELENS_HEADLESS", "maybe")
	t.Setenv("SITELENS_NAV_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 20*time.Second, cfg.Audit.NavTimeout)
}
