package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Sienz16/ramadan-ku/internal/clock"
	"github.com/Sienz16/ramadan-ku/internal/esolat"
	"github.com/Sienz16/ramadan-ku/internal/prayer"
)

// SubscriptionSource is the slice of Store the dispatcher needs. The
// dispatcher may only flip subscriptions to disabled; all other mutations
// belong to the registration boundary.
type SubscriptionSource interface {
	ActiveZones(ctx context.Context) ([]string, error)
	EnabledByZone(ctx context.Context, zone string) ([]Subscription, error)
	Disable(ctx context.Context, endpoint string) error
	MarkDeliveryIfNew(ctx context.Context, endpoint, deliveryKey string) (bool, error)
}

// TimingSource supplies a zone's canonical timings for the current day.
type TimingSource interface {
	Today(ctx context.Context, zone string) (esolat.Today, error)
}

// Transport delivers one payload to one subscription.
type Transport interface {
	Send(ctx context.Context, sub Subscription, payload []byte) error
}

// Dispatcher runs one fan-out pass per tick: for every active zone, fetch
// timings, match the due event, claim each delivery in the ledger, and send.
// It holds no state between ticks — restarts and overlapping runs are safe
// because the ledger claim is atomic.
type Dispatcher struct {
	store     SubscriptionSource
	timings   TimingSource
	transport Transport
	workers   int
	logger    *slog.Logger
}

// NewDispatcher wires the worker. workers bounds zone-level concurrency.
func NewDispatcher(store SubscriptionSource, timings TimingSource, transport Transport, workers int, logger *slog.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		store:     store,
		timings:   timings,
		transport: transport,
		workers:   workers,
		logger:    logger,
	}
}

// Start runs RunOnce on a fixed interval until ctx is cancelled. Intended to
// be called with `go`. Deployments with an external per-minute scheduler use
// RunOnce directly instead.
func (d *Dispatcher) Start(ctx context.Context, interval time.Duration) {
	d.logger.Info("Dispatch worker started", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			stats := d.RunOnce(ctx, now)
			if stats.Due > 0 || len(stats.Errors) > 0 {
				d.logger.Info("dispatch tick", "summary", stats.Summary())
			}
		case <-ctx.Done():
			d.logger.Info("Dispatch worker stopped")
			return
		}
	}
}

// RunOnce processes every active zone for the minute `now` falls in. Zone
// failures are isolated: one zone's outage never blocks the others.
func (d *Dispatcher) RunOnce(ctx context.Context, now time.Time) RunStats {
	start := time.Now()
	var stats RunStats

	dateKey := clock.DateKey(now)
	timeKey := clock.TimeKey(now)

	zones, err := d.store.ActiveZones(ctx)
	if err != nil {
		stats.Errors = append(stats.Errors, fmt.Sprintf("list active zones: %v", err))
		stats.Duration = time.Since(start)
		return stats
	}
	stats.Zones = len(zones)
	if len(zones) == 0 {
		stats.Duration = time.Since(start)
		return stats
	}

	workers := d.workers
	if workers > len(zones) {
		workers = len(zones)
	}

	ch := make(chan string, len(zones))
	for _, zone := range zones {
		ch <- zone
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for zone := range ch {
				zoneStats, err := d.processZone(ctx, zone, dateKey, timeKey)

				mu.Lock()
				if err != nil {
					stats.Errors = append(stats.Errors, fmt.Sprintf("zone %s: %v", zone, err))
				}
				if zoneStats.Due != "" {
					stats.Due++
					stats.Sent += zoneStats.Sent
					stats.Skipped += zoneStats.Skipped
					d.logger.Info("prayer notifications dispatched",
						"date", dateKey, "time", timeKey, "zone", zone,
						"prayer", zoneStats.Due, "sent", zoneStats.Sent, "skipped", zoneStats.Skipped)
				}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	stats.Duration = time.Since(start)
	return stats
}

// processZone handles one zone for one tick. Returning an error aborts only
// this zone's iteration.
func (d *Dispatcher) processZone(ctx context.Context, zone, dateKey, timeKey string) (ZoneStats, error) {
	zoneStats := ZoneStats{Zone: zone}

	today, err := d.timings.Today(ctx, zone)
	if err != nil {
		return zoneStats, fmt.Errorf("fetch timings: %w", err)
	}

	due := prayer.DueEvent(today.Timing, timeKey)
	if due == "" {
		return zoneStats, nil
	}
	zoneStats.Due = due

	subs, err := d.store.EnabledByZone(ctx, zone)
	if err != nil {
		return zoneStats, fmt.Errorf("list subscriptions: %w", err)
	}

	payload, err := PrayerPayload(due, zone, today.Timing)
	if err != nil {
		return zoneStats, fmt.Errorf("build payload: %w", err)
	}

	deliveryKey := DeliveryKey(dateKey, zone, due)
	for _, sub := range subs {
		// Claim before send: the ledger row, not the send outcome, is what
		// prevents a second attempt.
		claimed, err := d.store.MarkDeliveryIfNew(ctx, sub.Endpoint, deliveryKey)
		if err != nil {
			d.logger.Warn("ledger claim failed", "zone", zone, "endpoint", sub.Endpoint, "error", err)
			continue
		}
		if !claimed {
			zoneStats.Skipped++
			continue
		}

		if err := d.transport.Send(ctx, sub, payload); err != nil {
			if errors.Is(err, ErrEndpointGone) {
				if disableErr := d.store.Disable(ctx, sub.Endpoint); disableErr != nil {
					d.logger.Warn("disable subscription failed",
						"endpoint", sub.Endpoint, "error", disableErr)
				}
			} else {
				// Transient: logged only. The claim above means this key is
				// never retried.
				d.logger.Warn("push send failed", "zone", zone,
					"endpoint", sub.Endpoint, "error", err)
			}
			continue
		}
		zoneStats.Sent++
	}

	return zoneStats, nil
}
