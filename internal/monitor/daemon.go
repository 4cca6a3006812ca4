package monitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"trafficmon/internal/store"
)

// DefaultInterval is the fixed pause between daemon evaluation cycles.
const DefaultInterval = 5000 * time.Millisecond

// Daemon re-evaluates the alert flags on a fixed cadence until its context
// is cancelled. It never accumulates totals; saving is a separately
// triggered operation.
type Daemon struct {
	store    store.Interface
	interval time.Duration
	runID    string
}

// NewDaemon creates a daemon over the given store.
func NewDaemon(st store.Interface) *Daemon {
	return &Daemon{
		store:    st,
		interval: DefaultInterval,
		runID:    uuid.NewString(),
	}
}

// RunID returns the identifier of this daemon run, generated at construction.
func (d *Daemon) RunID() string {
	return d.runID
}

// Run evaluates once per interval until ctx is cancelled, then returns after
// finishing the in-flight cycle. A failed cycle is logged and skipped; the
// loop keeps evaluating on schedule.
func (d *Daemon) Run(ctx context.Context) {
	slog.Info("Daemon started", "run_id", d.runID, "interval", d.interval)

	evaluator := NewEvaluator(d.store)

	for {
		thresholds := LoadThresholds(d.store)
		if _, err := evaluator.Evaluate(thresholds); err != nil {
			slog.Error("Evaluation cycle failed", "run_id", d.runID, "error", err)
		}

		timer := time.NewTimer(d.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("Daemon terminating gracefully", "run_id", d.runID)
			return
		case <-timer.C:
		}
	}
}
