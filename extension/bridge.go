package extension

import "context"

// Bridge is the operator-facing entry point into the lifecycle controller.
// It shares the controller's mutex with the change detector, so manual
// operations and automatic cycles serialize against each other.
type Bridge struct {
	ctrl     *Controller
	registry *Registry
}

// NewBridge creates a command bridge over the shared controller.
func NewBridge(ctrl *Controller, registry *Registry) *Bridge {
	return &Bridge{ctrl: ctrl, registry: registry}
}

// ReloadOne reloads a single extension. An unknown id is reported
// immediately without attempting the operation.
func (b *Bridge) ReloadOne(ctx context.Context, id string) Result {
	if _, known := b.registry.Get(id); !known {
		return failed(KindNotFound, id, nil)
	}
	return b.ctrl.Reload(ctx, id)
}

// ReloadAll reloads every currently known extension and returns success and
// failure counts.
func (b *Bridge) ReloadAll(ctx context.Context) (succeeded, failed int) {
	return b.ctrl.ReloadAll(ctx, b.registry.ListIDs())
}

// LoadOne loads a single extension by id.
func (b *Bridge) LoadOne(ctx context.Context, id string) Result {
	return b.ctrl.Load(ctx, id)
}

// UnloadOne unloads a single extension. An unknown id is reported
// immediately.
func (b *Bridge) UnloadOne(ctx context.Context, id string) Result {
	if _, known := b.registry.Get(id); !known {
		return failed(KindNotFound, id, nil)
	}
	return b.ctrl.Unload(ctx, id)
}
