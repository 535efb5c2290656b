// Package handler provides HTTP handlers for all API endpoints.
// Handlers stay thin: validation and response shaping here, domain rules in
// the zone/prayer/ramadan/push packages.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sienz16/ramadan-ku/internal/api/respond"
	"github.com/Sienz16/ramadan-ku/internal/cache"
	"github.com/Sienz16/ramadan-ku/internal/config"
	"github.com/Sienz16/ramadan-ku/internal/esolat"
	"github.com/Sienz16/ramadan-ku/internal/push"
	"github.com/Sienz16/ramadan-ku/internal/ramadan"
)

// TimingsProvider fetches daily timings and calendar windows from the
// upstream authority.
type TimingsProvider interface {
	Today(ctx context.Context, zone string) (esolat.Today, error)
	Calendar(ctx context.Context, zone string, start, end time.Time) ([]ramadan.Entry, error)
}

// SubscriptionStore is the slice of the registry the HTTP surface needs.
type SubscriptionStore interface {
	Upsert(ctx context.Context, sub push.Subscription) error
	Delete(ctx context.Context, endpoint string) error
	Disable(ctx context.Context, endpoint string) error
	FindByEndpoint(ctx context.Context, endpoint string) (*push.Subscription, error)
}

// PushTransport delivers one payload to one subscription.
type PushTransport interface {
	Send(ctx context.Context, sub push.Subscription, payload []byte) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool      *pgxpool.Pool
	cache     *cache.Cache
	cfg       *config.Config
	timings   TimingsProvider
	store     SubscriptionStore
	transport PushTransport // nil when VAPID is not configured
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies. transport may be nil;
// the test-notification endpoint then reports push as disabled.
func New(pool *pgxpool.Pool, c *cache.Cache, cfg *config.Config, timings TimingsProvider, store SubscriptionStore, transport PushTransport, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		pool:      pool,
		cache:     c,
		cfg:       cfg,
		timings:   timings,
		store:     store,
		transport: transport,
		logger:    logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "RamadanKu API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
