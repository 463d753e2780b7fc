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
	Scraper   ScraperConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
	Webhook   WebhookConfig
}

// AuthConfig controls optional API key authentication. An empty key
// list means open access.
type AuthConfig struct {
	APIKeys []string
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is an optional proxy URL for all browser traffic.
	Proxy string
}

// ScraperConfig controls the fixed waits of the scrape sequence.
type ScraperConfig struct {
	// ChallengeDelay is the blind pause after first navigating to the
	// site's home page, giving its bot check time to resolve. There is
	// no way to observe the check from outside, so this is a flat timer.
	ChallengeDelay time.Duration // default: 8s

	// SettleDelay is the pause after the loading indicator clears,
	// letting asynchronous result rendering finish.
	SettleDelay time.Duration // default: 2s

	// LoadingTimeout bounds the wait for the loading indicator to
	// disappear. Exceeding it is logged, not fatal.
	LoadingTimeout time.Duration // default: 45s

	// RequestTimeout is the hard deadline for one whole scrape.
	RequestTimeout time.Duration // default: 90s
}

// RateLimitConfig controls per-IP rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 1

	// Burst is the maximum burst size per client IP.
	Burst int // default: 3
}

// CacheConfig controls the result cache.
type CacheConfig struct {
	// TTL is how long a resolved URL's response stays fresh.
	// Zero disables caching.
	TTL time.Duration // default: 10m

	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 500
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// WebhookConfig controls optional async result delivery.
type WebhookConfig struct {
	// URL receives a JSON event for each completed scrape. Empty disables.
	URL string

	// Secret signs the event body with HMAC-SHA256 when non-empty.
	Secret string
}

// Load reads configuration from environment variables with sane
// defaults. If SNAGBOT_CONFIG points at a YAML file, its values
// override the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: envOr("SNAGBOT_HOST", "0.0.0.0"),
			Port: envIntOr("SNAGBOT_PORT", envIntOr("PORT", 8080)),
			Mode: envOr("SNAGBOT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("SNAGBOT_HEADLESS", true),
			MaxPages:   envIntOr("SNAGBOT_MAX_PAGES", 4),
			NoSandbox:  envBoolOr("SNAGBOT_NO_SANDBOX", false),
			BrowserBin: os.Getenv("SNAGBOT_BROWSER_BIN"),
			Proxy:      os.Getenv("SNAGBOT_PROXY"),
		},
		Scraper: ScraperConfig{
			ChallengeDelay: envDurationOr("SNAGBOT_CHALLENGE_DELAY", 8*time.Second),
			SettleDelay:    envDurationOr("SNAGBOT_SETTLE_DELAY", 2*time.Second),
			LoadingTimeout: envDurationOr("SNAGBOT_LOADING_TIMEOUT", 45*time.Second),
			RequestTimeout: envDurationOr("SNAGBOT_REQUEST_TIMEOUT", 90*time.Second),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("SNAGBOT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SNAGBOT_RATE_RPS", 1.0),
			Burst:             envIntOr("SNAGBOT_RATE_BURST", 3),
		},
		Cache: CacheConfig{
			TTL:        envDurationOr("SNAGBOT_CACHE_TTL", 10*time.Minute),
			MaxEntries: envIntOr("SNAGBOT_CACHE_ENTRIES", 500),
		},
		Log: LogConfig{
			Level:  envOr("SNAGBOT_LOG_LEVEL", "info"),
			Format: envOr("SNAGBOT_LOG_FORMAT", "json"),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("SNAGBOT_WEBHOOK_URL"),
			Secret: os.Getenv("SNAGBOT_WEBHOOK_SECRET"),
		},
	}

	if path := os.Getenv("SNAGBOT_CONFIG"); path != "" {
		fc, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		fc.apply(cfg)
	}

	return cfg, nil
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

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
