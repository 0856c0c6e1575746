package extension

import (
	"context"

	"go.uber.org/zap"
)

// Host wires the registry, scanner, controller, detector, and bridge
// together. It replaces ambient global state: everything the lifecycle
// system needs travels through this struct.
type Host struct {
	Registry *Registry
	Scanner  Scanner
	Ctrl     *Controller
	Detector *Detector
	Bridge   *Bridge

	watcher *Watcher
	log     *zap.Logger
}

// NewHost builds a fully wired extension host from configuration. The
// factory and surface are injected; rec may be nil to disable journaling.
func NewHost(cfg Config, factory Factory, surface Surface, rec Recorder, log *zap.Logger) *Host {
	registry := NewRegistry()
	policy := NewPolicy(cfg.Enabled, cfg.Disabled)

	var (
		scanner  Scanner
		resolver SourceResolver
		watcher  *Watcher
	)
	if cfg.Watch {
		watcher = NewWatcher(cfg.Dir, cfg.Suffix, log)
		scanner = watcher
		resolver = watcher
	} else {
		ds := NewDirScanner(cfg.Dir, cfg.Suffix)
		scanner = ds
		resolver = ds
	}

	opts := []ControllerOption{WithLoadTimeout(cfg.LoadTimeout())}
	if rec != nil {
		opts = append(opts, WithRecorder(rec))
	}
	ctrl := NewController(registry, factory, surface, resolver, policy, log, opts...)

	return &Host{
		Registry: registry,
		Scanner:  scanner,
		Ctrl:     ctrl,
		Detector: NewDetector(scanner, ctrl, registry, cfg.Interval(), log),
		Bridge:   NewBridge(ctrl, registry),
		watcher:  watcher,
		log:      log,
	}
}

// Run starts the watcher when configured and drives detection cycles until
// ctx is cancelled. It blocks; run it in its own goroutine. The first cycle
// waits for ready.
func (h *Host) Run(ctx context.Context, ready <-chan struct{}) error {
	if h.watcher != nil {
		if err := h.watcher.Start(ctx); err != nil {
			return err
		}
		defer h.watcher.Close()
	}
	h.Detector.Run(ctx, ready)
	return nil
}
