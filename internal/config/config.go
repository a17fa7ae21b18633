package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	CORSAllowedOrigins []string
	InviteKey          string
	AccessTokenTTL     time.Duration
	CartTTL            time.Duration
	CatalogCacheTTL    time.Duration
	IdempotencyTTL     time.Duration
	ShareLinkBaseURL   string
	TaxRateBPS         int
	CurrencyCode       string
	TrialPeriod        time.Duration
	QuoteNumberPrefix  string
	ExportArtifactTTL  time.Duration
	LockRetryBackoff   time.Duration
	LockTTL            time.Duration
	PromoRateLimit     string
	AuthRateLimit      string
	RequirementsTTL    time.Duration
	MaxBodyBytes       int64
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		JWTSecret:          k.String("JWT_SECRET"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		InviteKey:          valueOrDefault(k.String("SIGNUP_INVITE_KEY"), "Welcome123"),
		AccessTokenTTL:     parseDuration(k.String("ACCESS_TOKEN_TTL"), "15m"),
		CartTTL:            parseDuration(k.String("CART_TTL"), "168h"),
		CatalogCacheTTL:    parseDuration(k.String("CATALOG_CACHE_TTL"), "10m"),
		IdempotencyTTL:     parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		ShareLinkBaseURL:   valueOrDefault(k.String("SHARE_LINK_BASE_URL"), "https://getstarted.themadrasmarketeer.com"),
		TaxRateBPS:         intOrDefault(k.Int("PRICING_TAX_RATE_BPS"), 1800),
		CurrencyCode:       valueOrDefault(k.String("CURRENCY_CODE"), "INR"),
		TrialPeriod:        parseDuration(k.String("TRIAL_PERIOD"), "168h"),
		QuoteNumberPrefix:  valueOrDefault(k.String("QUOTE_NUMBER_PREFIX"), "TMM"),
		ExportArtifactTTL:  parseDuration(k.String("EXPORT_ARTIFACT_TTL"), "720h"),
		LockRetryBackoff:   parseDuration(k.String("LOCK_RETRY_BACKOFF"), "25ms"),
		LockTTL:            parseDuration(k.String("LOCK_TTL"), "5s"),
		PromoRateLimit:     valueOrDefault(k.String("PROMO_RATE_LIMIT"), "30-M"),
		AuthRateLimit:      valueOrDefault(k.String("AUTH_RATE_LIMIT"), "10-M"),
		RequirementsTTL:    parseDuration(k.String("REQUIREMENTS_TTL"), "2160h"),
		MaxBodyBytes:       int64(intOrDefault(k.Int("MAX_BODY_BYTES"), 1<<20)),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func intOrDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
