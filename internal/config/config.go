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
	CORSAllowedOrigins []string

	// Funnel pricing is compiled in; only operational knobs live here.
	IdempotencyTTL time.Duration

	GlobalRateLimit  string
	SubscribeRateMax int
	SubscribeRateWin time.Duration

	SubscribeProviderURL string
	SubscribeTimeout     time.Duration

	PaymentProvider    string
	PaymentSuccessPath string

	NotifyEmailEnabled bool
	NotifyEmailFrom    string
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
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		IdempotencyTTL: parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),

		GlobalRateLimit:  valueOrDefault(k.String("RATE_LIMIT_GLOBAL"), "300-M"),
		SubscribeRateMax: intOrDefault(k, "RATE_LIMIT_SUBSCRIBE_MAX", 5),
		SubscribeRateWin: parseDuration(k.String("RATE_LIMIT_SUBSCRIBE_WINDOW"), "1m"),

		SubscribeProviderURL: strings.TrimSpace(k.String("SUBSCRIBE_PROVIDER_URL")),
		SubscribeTimeout:     parseDuration(k.String("SUBSCRIBE_TIMEOUT"), "5s"),

		PaymentProvider:    valueOrDefault(k.String("PAYMENT_PROVIDER"), "redirect"),
		PaymentSuccessPath: valueOrDefault(k.String("PAYMENT_SUCCESS_PATH"), "/checkout/success"),

		NotifyEmailEnabled: parseBool(k.String("NOTIFY_EMAIL_ENABLED")),
		NotifyEmailFrom:    valueOrDefault(k.String("NOTIFY_EMAIL_FROM"), "orders@eubiosis.example"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
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

func intOrDefault(k *koanf.Koanf, key string, fallback int) int {
	if !k.Exists(key) {
		return fallback
	}
	v := k.Int(key)
	if v <= 0 {
		return fallback
	}
	return v
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

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
