// Package config provides centralized configuration loaded from environment
// variables. Shared by cmd/api and cmd/pushctl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultZone is the fallback JAKIM zone for subscriptions that arrive
// without one (Kuala Lumpur).
const DefaultZone = "WLY01"

// Config is populated from environment variables.
type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Prayer timing / Hijri calendar provider
	EsolatBaseURL        string
	EsolatTimeout        time.Duration
	EsolatRequestsPerMin int

	// Web Push (VAPID)
	VAPIDSubject    string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	PushTimeout     time.Duration
	PushTTL         time.Duration

	// Dispatch worker
	DispatchEnabled  bool
	DispatchInterval time.Duration
	DispatchWorkers  int

	// Maintenance
	DeliveryLogRetention time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("NEON_DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or NEON_DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		EsolatBaseURL:        envOr("ESOLAT_BASE_URL", "https://www.e-solat.gov.my"),
		EsolatTimeout:        time.Duration(envInt("ESOLAT_TIMEOUT_SECONDS", 15)) * time.Second,
		EsolatRequestsPerMin: envInt("ESOLAT_REQUESTS_PER_MINUTE", 60),

		VAPIDSubject:    envOr("PUSH_VAPID_SUBJECT", ""),
		VAPIDPublicKey:  envOr("VAPID_PUBLIC_KEY", envOr("NEXT_PUBLIC_VAPID_PUBLIC_KEY", "")),
		VAPIDPrivateKey: envOr("PUSH_VAPID_PRIVATE_KEY", ""),
		PushTimeout:     time.Duration(envInt("PUSH_TIMEOUT_SECONDS", 10)) * time.Second,
		PushTTL:         time.Duration(envInt("PUSH_TTL_SECONDS", 300)) * time.Second,

		DispatchEnabled:  envBool("DISPATCH_ENABLED", true),
		DispatchInterval: time.Duration(envInt("DISPATCH_INTERVAL_SECONDS", 60)) * time.Second,
		DispatchWorkers:  envInt("DISPATCH_WORKERS", 4),

		DeliveryLogRetention: time.Duration(envInt("DELIVERY_LOG_RETENTION_DAYS", 14)) * 24 * time.Hour,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// HasVAPID reports whether all Web Push credentials are configured.
func (c *Config) HasVAPID() bool {
	return c.VAPIDSubject != "" && c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
