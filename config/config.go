package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Audit     AuditConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the disposable Rod browser sessions.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is the proxy URL used for all sessions and probes.
	DefaultProxy string

	// Stealth enables anti-bot-detection evasions before navigation.
	Stealth bool // default: false

	// MaxSessions caps concurrent rendering sessions per process.
	// Each audit module launches its own disposable browser, so this
	// bounds total Chrome processes under concurrent load.
	MaxSessions int64 // default: 4
}

// AuditConfig controls per-check timeouts and bounds.
type AuditConfig struct {
	// NavTimeout is the deadline for the initial page load of each module.
	NavTimeout time.Duration // default: 20s

	// ProbeTimeout is the deadline for auxiliary checks
	// (robots.txt, sitemap.xml, custom 404 probe).
	ProbeTimeout time.Duration // default: 10s

	// LinkTimeout is the per-link deadline during the dead-link scan.
	LinkTimeout time.Duration // default: 8s

	// MaxDeadLinks is the number of outbound links the dead-link
	// scanner visits at most.
	MaxDeadLinks int // default: 20

	// ScreenshotTimeout is the deadline for the screenshot capture path.
	ScreenshotTimeout time.Duration // default: 30s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key or IP.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the in-memory audit result cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached module results.
	MaxEntries int // default: 500

	// TTL is how long a cached result stays valid. Zero disables caching.
	TTL time.Duration // default: 0 (disabled)
}

// WebhookConfig controls report completion notifications.
type WebhookConfig struct {
	// URL is the endpoint that receives report events. Empty disables delivery.
	URL string

	// Secret is used to sign webhook payloads with HMAC-SHA256.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SITELENS_HOST", "0.0.0.0"),
			Port: envIntOr("SITELENS_PORT", 8080),
			Mode: envOr("SITELENS_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("SITELENS_HEADLESS", true),
			NoSandbox:    envBoolOr("SITELENS_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("SITELENS_BROWSER_BIN"),
			DefaultProxy: os.Getenv("SITELENS_PROXY"),
			Stealth:      envBoolOr("SITELENS_STEALTH", false),
			MaxSessions:  int64(envIntOr("SITELENS_MAX_SESSIONS", 4)),
		},
		Audit: AuditConfig{
			NavTimeout:        envDurationOr("SITELENS_NAV_TIMEOUT", 20*time.Second),
			ProbeTimeout:      envDurationOr("SITELENS_PROBE_TIMEOUT", 10*time.Second),
			LinkTimeout:       envDurationOr("SITELENS_LINK_TIMEOUT", 8*time.Second),
			MaxDeadLinks:      envIntOr("SITELENS_MAX_DEAD_LINKS", 20),
			ScreenshotTimeout: envDurationOr("SITELENS_SCREENSHOT_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SITELENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("SITELENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SITELENS_RATE_RPS", 5.0),
			Burst:             envIntOr("SITELENS_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("SITELENS_CACHE_MAX_ENTRIES", 500),
			TTL:        envDurationOr("SITELENS_CACHE_TTL", 0),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("SITELENS_WEBHOOK_URL"),
			Secret: os.Getenv("SITELENS_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("SITELENS_LOG_LEVEL", "info"),
			Format: envOr("SITELENS_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
