package extension

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcher_ApplyEvents(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, ".json", zap.NewNop())
	ctx := context.Background()

	path := filepath.Join(dir, "greeter.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	w.apply(fsnotify.Event{Name: path, Op: fsnotify.Create})
	snap, err := w.Scan(ctx)
	require.NoError(t, err)
	assert.Contains(t, snap, "greeter")

	// Write bumps the recorded mod time.
	before := snap["greeter"]
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
	w.apply(fsnotify.Event{Name: path, Op: fsnotify.Write})
	snap, _ = w.Scan(ctx)
	assert.True(t, snap["greeter"].After(before))

	w.apply(fsnotify.Event{Name: path, Op: fsnotify.Remove})
	snap, _ = w.Scan(ctx)
	assert.NotContains(t, snap, "greeter")
}

func TestWatcher_IgnoresNonCandidates(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, ".json", zap.NewNop())

	w.apply(fsnotify.Event{Name: filepath.Join(dir, "_draft.json"), Op: fsnotify.Create})
	w.apply(fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Create})

	snap, err := w.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestWatcher_ScanReturnsCopy(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, ".json", zap.NewNop())
	ctx := context.Background()

	path := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	w.apply(fsnotify.Event{Name: path, Op: fsnotify.Create})

	snap, _ := w.Scan(ctx)
	delete(snap, "a")

	snap2, _ := w.Scan(ctx)
	assert.Contains(t, snap2, "a")
}

func TestWatcher_StartSeedsSnapshotAndSeesEvents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.json"), []byte(`{}`), 0o644))

	w := NewWatcher(dir, ".json", zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	snap, err := w.Scan(ctx)
	require.NoError(t, err)
	assert.Contains(t, snap, "seed")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.json"), []byte(`{}`), 0o644))
	assert.Eventually(t, func() bool {
		snap, _ := w.Scan(ctx)
		_, ok := snap["late"]
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_Resync(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{}`), 0o644))

	w := NewWatcher(dir, ".json", zap.NewNop())
	w.resync(context.Background())

	snap, err := w.Scan(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snap, "a")
}
