package extension

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultDetectInterval is the period between detection cycles.
const DefaultDetectInterval = 5 * time.Second

// Detector periodically diffs the scanner's snapshot against the registry
// and drives the controller. It keeps retrying failed loads every cycle,
// matching the observable behavior operators rely on: fix the file, and the
// next cycle picks it up.
type Detector struct {
	scanner  Scanner
	ctrl     *Controller
	registry *Registry
	interval time.Duration
	baseline time.Time
	log      *zap.Logger
}

// NewDetector creates a change detector. A non-positive interval falls back
// to DefaultDetectInterval.
func NewDetector(scanner Scanner, ctrl *Controller, registry *Registry, interval time.Duration, log *zap.Logger) *Detector {
	if interval <= 0 {
		interval = DefaultDetectInterval
	}
	return &Detector{
		scanner:  scanner,
		ctrl:     ctrl,
		registry: registry,
		interval: interval,
		log:      log,
	}
}

// Cycle performs one full detection pass: scan, diff, apply, and advance the
// reload baseline. Scan errors skip the pass; the next tick retries.
func (d *Detector) Cycle(ctx context.Context) CycleResult {
	snap, err := d.scanner.Scan(ctx)
	if err != nil {
		d.log.Error("source scan failed", zap.Error(err))
		return CycleResult{}
	}

	plan := BuildPlan(snap, d.registry.LoadedSet(), d.registry.ListIDs(), d.baseline)
	var res CycleResult
	if !plan.Empty() {
		res = d.ctrl.ApplyCycle(ctx, plan)
		d.log.Debug("detection cycle applied",
			zap.Int("loaded", res.Loaded),
			zap.Int("unloaded", res.Unloaded),
			zap.Int("reloaded", res.Reloaded),
			zap.Int("failed", res.Failed),
			zap.Int("pruned", res.Pruned),
		)
	}
	d.baseline = time.Now()
	return res
}

// Run blocks until ctx is cancelled, executing one cycle per interval. The
// first cycle waits for the ready signal so the host never mutates the
// registry before it is serving. An in-flight cycle always finishes; only
// further cycles are cancelled.
func (d *Detector) Run(ctx context.Context, ready <-chan struct{}) {
	select {
	case <-ready:
	case <-ctx.Done():
		return
	}

	d.Cycle(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.log.Info("change detector stopped")
			return
		case <-ticker.C:
			d.Cycle(ctx)
		}
	}
}
