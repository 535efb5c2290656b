package push

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the durable subscription registry and delivery ledger, backed by
// the prepared statements registered in internal/db.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps a connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Upsert inserts a subscription or fully overwrites an existing row by
// endpoint identity, re-enabling it and refreshing updated_at/last_seen_at.
// Idempotent under repeated identical calls.
func (s *Store) Upsert(ctx context.Context, sub Subscription) error {
	var city any
	if sub.City != "" {
		city = sub.City
	}
	_, err := s.pool.Exec(ctx, "upsert_subscription",
		sub.Endpoint, sub.P256dh, sub.Auth, sub.Zone, city)
	if err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	return nil
}

// Disable soft-deactivates an endpoint. Used on permanent delivery failure;
// disabling twice is harmless.
func (s *Store) Disable(ctx context.Context, endpoint string) error {
	if _, err := s.pool.Exec(ctx, "disable_subscription", endpoint); err != nil {
		return fmt.Errorf("disable subscription: %w", err)
	}
	return nil
}

// Delete hard-removes an endpoint. Only explicit unsubscribe calls this.
func (s *Store) Delete(ctx context.Context, endpoint string) error {
	if _, err := s.pool.Exec(ctx, "delete_subscription", endpoint); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// EnabledByZone lists enabled subscriptions for one zone.
func (s *Store) EnabledByZone(ctx context.Context, zone string) ([]Subscription, error) {
	rows, err := s.pool.Query(ctx, "subscriptions_by_zone", zone)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions for zone %s: %w", zone, err)
	}
	return scanSubscriptions(rows)
}

// AllEnabled lists every enabled subscription across zones.
func (s *Store) AllEnabled(ctx context.Context) ([]Subscription, error) {
	rows, err := s.pool.Query(ctx, "all_enabled_subscriptions")
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return scanSubscriptions(rows)
}

// FindByEndpoint returns the enabled subscription for an endpoint, or nil
// when none exists.
func (s *Store) FindByEndpoint(ctx context.Context, endpoint string) (*Subscription, error) {
	rows, err := s.pool.Query(ctx, "subscription_by_endpoint", endpoint)
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}

	subs, err := scanSubscriptions(rows)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}
	return &subs[0], nil
}

// ActiveZones lists the distinct zones with at least one enabled
// subscription, ascending.
func (s *Store) ActiveZones(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "active_zones")
	if err != nil {
		return nil, fmt.Errorf("list active zones: %w", err)
	}
	defer rows.Close()

	var zones []string
	for rows.Next() {
		var z string
		if err := rows.Scan(&z); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	return zones, rows.Err()
}

// MarkDeliveryIfNew attempts the atomic ledger claim for (endpoint, key).
// True means this call inserted the row and the caller owns the send; false
// means the pair was already claimed. The conflict-ignore insert is the
// entire concurrency mechanism — overlapping ticks race here and exactly one
// wins. A unique-violation surfacing anyway is read as "already claimed".
func (s *Store) MarkDeliveryIfNew(ctx context.Context, endpoint, deliveryKey string) (bool, error) {
	tag, err := s.pool.Exec(ctx, "mark_delivery", endpoint, deliveryKey)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("mark delivery: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// PruneDeliveryLog removes ledger rows older than the cutoff. Delivery keys
// embed the civil date, so rows past any reasonable retention can never be
// claimed again by a live tick.
func (s *Store) PruneDeliveryLog(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, "prune_delivery_log", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune delivery log: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanSubscriptions(rows pgx.Rows) ([]Subscription, error) {
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		var sub Subscription
		var city *string
		if err := rows.Scan(&sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.Zone, &city); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		if city != nil {
			sub.City = *city
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
