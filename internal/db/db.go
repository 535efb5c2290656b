// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sienz16/ramadan-ku/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API, worker, and
// CLI use against schema.sql. Prepared statements eliminate parse overhead
// on every tick.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Subscription store
		"upsert_subscription": `
			INSERT INTO push_subscriptions (endpoint, p256dh, auth, zone, city, enabled)
			VALUES ($1, $2, $3, $4, $5, TRUE)
			ON CONFLICT (endpoint)
			DO UPDATE
			  SET p256dh = EXCLUDED.p256dh,
			      auth = EXCLUDED.auth,
			      zone = EXCLUDED.zone,
			      city = EXCLUDED.city,
			      enabled = TRUE,
			      updated_at = NOW(),
			      last_seen_at = NOW()`,
		"disable_subscription": `
			UPDATE push_subscriptions
			SET enabled = FALSE, updated_at = NOW()
			WHERE endpoint = $1`,
		"delete_subscription": "DELETE FROM push_subscriptions WHERE endpoint = $1",
		"subscriptions_by_zone": `
			SELECT endpoint, p256dh, auth, zone, city
			FROM push_subscriptions
			WHERE enabled = TRUE AND zone = $1`,
		"subscription_by_endpoint": `
			SELECT endpoint, p256dh, auth, zone, city
			FROM push_subscriptions
			WHERE enabled = TRUE AND endpoint = $1
			LIMIT 1`,
		"active_zones": `
			SELECT DISTINCT zone
			FROM push_subscriptions
			WHERE enabled = TRUE
			ORDER BY zone ASC`,
		"all_enabled_subscriptions": `
			SELECT endpoint, p256dh, auth, zone, city
			FROM push_subscriptions
			WHERE enabled = TRUE`,

		// Delivery ledger — the atomic claim. Rows affected is the signal.
		"mark_delivery": `
			INSERT INTO push_delivery_log (endpoint, delivery_key)
			VALUES ($1, $2)
			ON CONFLICT (endpoint, delivery_key)
			DO NOTHING`,

		// Maintenance
		"prune_delivery_log": "DELETE FROM push_delivery_log WHERE inserted_at < $1",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
