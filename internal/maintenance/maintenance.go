// Package maintenance runs periodic background tasks as Go tickers. The API
// process is already long-running for the dispatch worker, so scheduled
// housekeeping is driven from Go rather than pg_cron.
package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Ledger prunes old delivery claims.
type Ledger interface {
	PruneDeliveryLog(ctx context.Context, cutoff time.Time) (int64, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	PruneInterval   time.Duration // delivery ledger sweep
	LedgerRetention time.Duration // how long claims are kept
}

// DefaultConfig returns production defaults. Claims only guard same-day
// duplicate sends, so two weeks of retention is already generous headroom
// for debugging.
func DefaultConfig() Config {
	return Config{
		PruneInterval:   6 * time.Hour,
		LedgerRetention: 14 * 24 * time.Hour,
	}
}

// Start launches the maintenance tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, ledger Ledger, cfg Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Maintenance tickers started",
		"prune", cfg.PruneInterval, "retention", cfg.LedgerRetention)

	if cfg.PruneInterval > 0 {
		t := time.NewTicker(cfg.PruneInterval)
		defer t.Stop()
		go runLoop(ctx, t.C, func() { pruneLedger(ctx, ledger, cfg.LedgerRetention, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// pruneLedger drops delivery claims older than the retention window.
func pruneLedger(ctx context.Context, ledger Ledger, retention time.Duration, logger *slog.Logger) {
	cutoff := time.Now().Add(-retention)
	pruned, err := ledger.PruneDeliveryLog(ctx, cutoff)
	if err != nil {
		logger.Warn("Ledger prune failed", "error", err)
		return
	}
	if pruned > 0 {
		logger.Info("Pruned delivery ledger", "count", pruned, "cutoff", cutoff.Format(time.RFC3339))
	}
}
