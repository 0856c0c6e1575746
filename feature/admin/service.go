package admin

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"extension-host/core/journal"
	"extension-host/extension"
)

// ExtensionStatus is one registry entry as reported to operators.
type ExtensionStatus struct {
	ID          string `json:"id"`
	State       string `json:"state"`
	Loaded      bool   `json:"loaded"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
}

// StatsReport mirrors the classic bot stats command: process vitals plus
// extension counts.
type StatsReport struct {
	Version     string `json:"version"`
	GoVersion   string `json:"go_version"`
	Uptime      string `json:"uptime"`
	Goroutines  int    `json:"goroutines"`
	HeapAllocMB uint64 `json:"heap_alloc_mb"`
	Known       int    `json:"known_extensions"`
	Loaded      int    `json:"loaded_extensions"`
}

// Service implements the admin operations over the extension host.
type Service struct {
	bridge   *extension.Bridge
	registry *extension.Registry
	events   *journal.Store
	logger   *zap.Logger
	version  string
	started  time.Time
	shutdown func()
}

// NewService creates the admin service. events may be nil when the journal
// is disabled; shutdown is invoked by the shutdown endpoint.
func NewService(bridge *extension.Bridge, registry *extension.Registry, events *journal.Store, logger *zap.Logger, version string, shutdown func()) *Service {
	return &Service{
		bridge:   bridge,
		registry: registry,
		events:   events,
		logger:   logger,
		version:  version,
		started:  time.Now(),
		shutdown: shutdown,
	}
}

// List reports every known extension with its lifecycle state.
func (s *Service) List() []ExtensionStatus {
	ids := s.registry.ListIDs()
	statuses := make([]ExtensionStatus, 0, len(ids))
	for _, id := range ids {
		entry, ok := s.registry.Get(id)
		if !ok {
			continue
		}
		status := ExtensionStatus{
			ID:     id,
			State:  entry.State.String(),
			Loaded: entry.State == extension.StateLoaded,
		}
		if entry.Handle != nil {
			status.Name = entry.Handle.DisplayName()
			status.Description = entry.Handle.Description()
			status.Emoji = entry.Handle.Emoji()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// ReloadOne reloads a single extension by id.
func (s *Service) ReloadOne(ctx context.Context, id string) extension.Result {
	return s.bridge.ReloadOne(ctx, id)
}

// ReloadAll reloads every known extension.
func (s *Service) ReloadAll(ctx context.Context) (succeeded, failed int) {
	return s.bridge.ReloadAll(ctx)
}

// LoadOne loads a single extension by id.
func (s *Service) LoadOne(ctx context.Context, id string) extension.Result {
	return s.bridge.LoadOne(ctx, id)
}

// UnloadOne unloads a single extension by id.
func (s *Service) UnloadOne(ctx context.Context, id string) extension.Result {
	return s.bridge.UnloadOne(ctx, id)
}

// Events returns recent lifecycle journal entries. A nil slice with nil
// error means the journal is disabled.
func (s *Service) Events(ctx context.Context, id string, limit int) ([]journal.LifecycleEvent, error) {
	if s.events == nil {
		return nil, nil
	}
	if id != "" {
		return s.events.ForExtension(ctx, id, limit)
	}
	return s.events.Recent(ctx, limit)
}

// HasJournal reports whether the lifecycle journal is available.
func (s *Service) HasJournal() bool {
	return s.events != nil
}

// Stats reports process vitals and extension counts.
func (s *Service) Stats() StatsReport {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return StatsReport{
		Version:     s.version,
		GoVersion:   runtime.Version(),
		Uptime:      time.Since(s.started).Round(time.Second).String(),
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: mem.HeapAlloc / 1024 / 1024,
		Known:       len(s.registry.ListIDs()),
		Loaded:      len(s.registry.ListLoadedIDs()),
	}
}

// Shutdown requests a graceful host stop.
func (s *Service) Shutdown() {
	s.logger.Info("Shutdown requested via admin API")
	if s.shutdown != nil {
		s.shutdown()
	}
}
