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
	Strategy  StrategyConfig
	Browser   BrowserConfig
	Routing   RoutingConfig
	Cache     CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	LLM       LLMConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// StrategyConfig controls the per-strategy fetch budgets.
type StrategyConfig struct {
	// HTTPTimeout is the deadline for the plain HTTP strategy.
	HTTPTimeout time.Duration // default: 15s

	// CloudflareTimeout is the deadline for the Chrome-fingerprint
	// HTTP strategy.
	CloudflareTimeout time.Duration // default: 20s

	// BrowserTimeout bounds a single browser-driven fetch, navigation
	// and settle delay included.
	BrowserTimeout time.Duration // default: 30s

	// LightSettle is the wait after DOM load in the lightweight
	// browser strategy, letting client-side script populate content.
	LightSettle time.Duration // default: 2s

	// FullSettle is the settle delay for the full browser strategy.
	FullSettle time.Duration // default: 3s

	// BlockedResourceTypes lists subresource types the lightweight
	// browser refuses to load.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// BrowserConfig controls the headless browser processes.
type BrowserConfig struct {
	// Headless controls whether browsers run headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string
}

// RoutingConfig is the strategy router's classification data. The lists
// are hostname substrings, matched in the order given here; the first
// list that matches wins, and unmatched hosts get the plain HTTP
// strategy. Kept as configuration so routing can be tuned without a
// rebuild.
type RoutingConfig struct {
	// JSHeavyHosts route to the full browser strategy.
	JSHeavyHosts []string

	// EdgeProtectedHosts route to the Chrome-fingerprint HTTP strategy.
	EdgeProtectedHosts []string

	// BotDefendedHosts route to the lightweight browser strategy.
	BotDefendedHosts []string
}

// CacheConfig controls the extraction record cache.
type CacheConfig struct {
	// TTL is how long a cached record stays fresh.
	TTL time.Duration // default: 1h

	// MaxEntries is the maximum number of cached records.
	MaxEntries int // default: 1000
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// LLMConfig controls the optional LLM-backed conversational responder.
// When APIKey is empty the responder falls back to templates.
type LLMConfig struct {
	APIKey  string
	Model   string // default: "gpt-4o-mini"
	BaseURL string // default: "https://api.openai.com/v1"
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
			Host: envOr("PAGELENS_HOST", "0.0.0.0"),
			Port: envIntOr("PAGELENS_PORT", 8080),
			Mode: envOr("PAGELENS_MODE", "release"),
		},
		Strategy: StrategyConfig{
			HTTPTimeout:       envDurationOr("PAGELENS_HTTP_TIMEOUT", 15*time.Second),
			CloudflareTimeout: envDurationOr("PAGELENS_CLOUDFLARE_TIMEOUT", 20*time.Second),
			BrowserTimeout:    envDurationOr("PAGELENS_BROWSER_TIMEOUT", 30*time.Second),
			LightSettle:       envDurationOr("PAGELENS_LIGHT_SETTLE", 2*time.Second),
			FullSettle:        envDurationOr("PAGELENS_FULL_SETTLE", 3*time.Second),
			BlockedResourceTypes: envSliceOr("PAGELENS_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Browser: BrowserConfig{
			Headless:  envBoolOr("PAGELENS_HEADLESS", true),
			NoSandbox: envBoolOr("PAGELENS_NO_SANDBOX", false),
			Bin:       os.Getenv("PAGELENS_BROWSER_BIN"),
		},
		Routing: RoutingConfig{
			JSHeavyHosts: envSliceOr("PAGELENS_JS_HEAVY_HOSTS", []string{
				"facebook.com", "instagram.com", "twitter.com", "linkedin.com",
				"youtube.com", "tiktok.com", "pinterest.com",
			}),
			EdgeProtectedHosts: envSliceOr("PAGELENS_EDGE_PROTECTED_HOSTS", []string{
				"cloudflare", "shopify", "wix.com", "squarespace.com",
			}),
			BotDefendedHosts: envSliceOr("PAGELENS_BOT_DEFENDED_HOSTS", []string{
				"amazon.com", "mercadolivre.com.br", "americanas.com.br",
				"magazineluiza.com.br", "booking.com", "decolar.com",
				"ebay.com", "aliexpress.com",
			}),
		},
		Cache: CacheConfig{
			TTL:        envDurationOr("PAGELENS_CACHE_TTL", time.Hour),
			MaxEntries: envIntOr("PAGELENS_CACHE_MAX_ENTRIES", 1000),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PAGELENS_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PAGELENS_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PAGELENS_RATE_RPS", 5.0),
			Burst:             envIntOr("PAGELENS_RATE_BURST", 10),
		},
		LLM: LLMConfig{
			APIKey:  os.Getenv("PAGELENS_LLM_API_KEY"),
			Model:   envOr("PAGELENS_LLM_MODEL", "gpt-4o-mini"),
			BaseURL: envOr("PAGELENS_LLM_BASE_URL", "https://api.openai.com/v1"),
		},
		Log: LogConfig{
			Level:  envOr("PAGELENS_LOG_LEVEL", "info"),
			Format: envOr("PAGELENS_LOG_FORMAT", "json"),
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
