package extension

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultLoadTimeout bounds extension construction when no budget is
// configured.
const DefaultLoadTimeout = 30 * time.Second

// Controller performs load, unload, and reload transitions against the
// registry. Every exported operation runs under a single mutex scoped to the
// whole operation, so a manual reload can never observe a registry
// half-updated by a concurrent detection cycle.
type Controller struct {
	registry *Registry
	factory  Factory
	surface  Surface
	resolver SourceResolver
	policy   Policy
	timeout  time.Duration
	recorder Recorder
	log      *zap.Logger

	mu sync.Mutex
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLoadTimeout bounds factory construction per extension.
func WithLoadTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRecorder journals every lifecycle transition outcome.
func WithRecorder(r Recorder) ControllerOption {
	return func(c *Controller) {
		c.recorder = r
	}
}

// NewController creates a lifecycle controller.
func NewController(registry *Registry, factory Factory, surface Surface, resolver SourceResolver, policy Policy, log *zap.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		registry: registry,
		factory:  factory,
		surface:  surface,
		resolver: resolver,
		policy:   policy,
		timeout:  DefaultLoadTimeout,
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load constructs and registers the extension with the given id.
func (c *Controller) Load(ctx context.Context, id string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx, id)
}

// Unload deregisters the extension and returns it to StateUnloaded.
func (c *Controller) Unload(ctx context.Context, id string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unloadLocked(ctx, id)
}

// Reload unloads then loads the extension. The load is attempted even when
// the unload fails, so a partially deregistered extension cannot stay stale.
func (c *Controller) Reload(ctx context.Context, id string) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reloadLocked(ctx, id)
}

// CycleResult aggregates the outcome of one detection cycle.
type CycleResult struct {
	Loaded   int
	Unloaded int
	Reloaded int
	Failed   int
	Skipped  int
	Pruned   int
}

// ApplyCycle executes a full detection plan under one lock acquisition.
// Failures are isolated per id: one broken extension never prevents the rest
// of the cycle from completing.
func (c *Controller) ApplyCycle(ctx context.Context, plan Plan) CycleResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res CycleResult
	for _, id := range plan.ToLoad {
		switch r := c.loadLocked(ctx, id); {
		case r.Skipped:
			res.Skipped++
		case r.OK():
			res.Loaded++
		default:
			res.Failed++
		}
	}
	for _, id := range plan.ToUnload {
		if r := c.unloadLocked(ctx, id); !r.OK() {
			res.Failed++
		} else {
			res.Unloaded++
		}
		// The backing source is gone; drop the entry regardless of the
		// unload outcome so a permanently missing file is not retried.
		c.registry.Remove(id)
	}
	for _, id := range plan.ToReload {
		if r := c.reloadLocked(ctx, id); !r.OK() {
			res.Failed++
		} else if !r.Skipped {
			res.Reloaded++
		} else {
			res.Skipped++
		}
	}
	for _, id := range plan.ToPrune {
		c.registry.Remove(id)
		res.Pruned++
	}
	return res
}

// ReloadAll reloads every given id under one lock acquisition and returns
// success and failure counts.
func (c *Controller) ReloadAll(ctx context.Context, ids []string) (succeeded, failed int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		if r := c.reloadLocked(ctx, id); r.OK() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}

func (c *Controller) loadLocked(ctx context.Context, id string) Result {
	if !c.policy.Eligible(id) {
		c.log.Debug("extension excluded by policy", zap.String("extension", id))
		return skipped(id)
	}

	entry, known := c.registry.Get(id)
	if known && entry.State == StateLoaded {
		return ok(id)
	}

	src, err := c.resolver.Resolve(id)
	if err != nil {
		c.record(ctx, id, ActionLoad, err)
		return failed(KindNotFound, id, err)
	}

	if !known {
		entry = &Entry{ID: id, Source: src}
	}
	entry.State = StateLoading
	entry.Source = src
	c.registry.Put(id, entry)

	loadCtx, cancel := context.WithTimeout(ctx, c.timeout)
	ext, err := c.factory.New(loadCtx, src)
	cancel()
	if err != nil {
		kind := KindConstruction
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		entry.State = StateFailed
		entry.Handle = nil
		c.registry.Put(id, entry)
		c.log.Error("failed to construct extension",
			zap.String("extension", id), zap.Error(err))
		c.record(ctx, id, ActionLoad, err)
		return failed(kind, id, err)
	}

	if err := c.surface.Register(ext); err != nil {
		entry.State = StateFailed
		entry.Handle = nil
		c.registry.Put(id, entry)
		c.log.Error("command surface rejected extension",
			zap.String("extension", id), zap.Error(err))
		c.record(ctx, id, ActionLoad, err)
		return failed(KindRegistration, id, err)
	}

	entry.State = StateLoaded
	entry.Handle = ext
	entry.SourceModifiedAt = src.ModTime
	c.registry.Put(id, entry)
	c.log.Info("loaded extension",
		zap.String("extension", id), zap.String("name", ext.DisplayName()))
	c.record(ctx, id, ActionLoad, nil)
	return ok(id)
}

func (c *Controller) unloadLocked(ctx context.Context, id string) Result {
	entry, known := c.registry.Get(id)
	if !known {
		return failed(KindNotFound, id, nil)
	}
	if entry.State != StateLoaded {
		// Already inactive; make the steady state explicit.
		entry.State = StateUnloaded
		entry.Handle = nil
		c.registry.Put(id, entry)
		return ok(id)
	}

	entry.State = StateUnloading
	c.registry.Put(id, entry)

	err := c.surface.Deregister(id)
	// The entry leaves the loaded set even when deregistration fails,
	// otherwise it would be stuck in a half-registered state forever.
	entry.State = StateUnloaded
	entry.Handle = nil
	c.registry.Put(id, entry)
	c.record(ctx, id, ActionUnload, err)

	if err != nil {
		c.log.Error("failed to deregister extension",
			zap.String("extension", id), zap.Error(err))
		return failed(KindRegistration, id, err)
	}
	c.log.Info("unloaded extension", zap.String("extension", id))
	return ok(id)
}

func (c *Controller) reloadLocked(ctx context.Context, id string) Result {
	if _, known := c.registry.Get(id); !known {
		return failed(KindNotFound, id, nil)
	}
	if r := c.unloadLocked(ctx, id); !r.OK() {
		c.log.Warn("unload failed during reload, loading anyway",
			zap.String("extension", id), zap.Error(r.Err))
	}
	r := c.loadLocked(ctx, id)
	c.record(ctx, id, ActionReload, r.Err)
	return r
}

func (c *Controller) record(ctx context.Context, id string, action Action, err error) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(ctx, Event{ExtensionID: id, Action: action, Err: err})
}
