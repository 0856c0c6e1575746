package extension

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_PutGetRemove(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("a")
	assert.False(t, ok)

	r.Put("a", &Entry{ID: "a", State: StateLoaded})
	entry, ok := r.Get("a")
	assert.True(t, ok)
	assert.Equal(t, StateLoaded, entry.State)

	// Put replaces
	r.Put("a", &Entry{ID: "a", State: StateFailed})
	entry, _ = r.Get("a")
	assert.Equal(t, StateFailed, entry.State)

	r.Remove("a")
	_, ok = r.Get("a")
	assert.False(t, ok)

	// Removing an unknown id is a no-op
	r.Remove("missing")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_LoadedSetMatchesState(t *testing.T) {
	r := NewRegistry()
	r.Put("a", &Entry{ID: "a", State: StateLoaded})
	r.Put("b", &Entry{ID: "b", State: StateFailed})
	r.Put("c", &Entry{ID: "c", State: StateUnloaded})
	r.Put("d", &Entry{ID: "d", State: StateLoaded})

	assert.Equal(t, []string{"a", "b", "c", "d"}, r.ListIDs())
	assert.Equal(t, []string{"a", "d"}, r.ListLoadedIDs())

	set := r.LoadedSet()
	assert.Len(t, set, 2)
	assert.Contains(t, set, "a")
	assert.Contains(t, set, "d")
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Put("x", &Entry{ID: "x", State: StateLoaded, SourceModifiedAt: time.Now()})
				r.Get("x")
				r.ListLoadedIDs()
				r.Remove("x")
			}
		}(i)
	}
	wg.Wait()
}
