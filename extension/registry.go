package extension

import (
	"sort"
	"sync"
	"time"
)

// Entry pairs an extension's lifecycle bookkeeping with its live handle.
// The handle is non-nil exactly while the entry is StateLoaded.
type Entry struct {
	ID     string
	State  State
	Handle Extension
	Source Source
	// SourceModifiedAt is the mod time recorded at the last successful
	// load. Non-decreasing per id across successful reloads.
	SourceModifiedAt time.Time
}

// Registry is the authoritative in-memory table of known extensions.
// All operations are safe for concurrent use and never block on I/O.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Get returns the entry for id, if known.
func (r *Registry) Get(id string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Put inserts or replaces the entry for id.
func (r *Registry) Put(id string, e *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = e
}

// Remove drops the entry for id. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// ListIDs returns every known id, sorted.
func (r *Registry) ListIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListLoadedIDs returns the ids currently in StateLoaded, sorted.
func (r *Registry) ListLoadedIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.entries))
	for id, e := range r.entries {
		if e.State == StateLoaded {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// LoadedSet returns the loaded ids as a set.
func (r *Registry) LoadedSet() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := make(map[string]struct{}, len(r.entries))
	for id, e := range r.entries {
		if e.State == StateLoaded {
			set[id] = struct{}{}
		}
	}
	return set
}

// Len returns the number of known entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
