package extension

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher is an event-driven Scanner built on fsnotify. It maintains a
// snapshot updated from file system notifications, so Scan returns without
// touching the disk. Rapid successive events for the same file coalesce into
// the snapshot before the next detection cycle reads it.
//
// Watcher is a drop-in replacement for DirScanner: same snapshot contract,
// same resolver behavior.
type Watcher struct {
	dir     *DirScanner
	log     *zap.Logger
	watcher *fsnotify.Watcher

	mu   sync.Mutex
	snap Snapshot
}

// NewWatcher creates a watcher over dir for files ending in suffix. Call
// Start before the first Scan and Close on shutdown.
func NewWatcher(dir, suffix string, log *zap.Logger) *Watcher {
	return &Watcher{
		dir:  NewDirScanner(dir, suffix),
		log:  log,
		snap: Snapshot{},
	}
}

// Start seeds the snapshot with a directory read and begins consuming file
// system events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	snap, err := w.dir.Scan(ctx)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.snap = snap
	w.mu.Unlock()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.dir.Dir()); err != nil {
		fw.Close()
		return err
	}
	w.watcher = fw

	go w.loop(ctx)
	return nil
}

// Close stops the underlying file system watcher.
func (w *Watcher) Close() error {
	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// Scan returns a copy of the current snapshot.
func (w *Watcher) Scan(_ context.Context) (Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	snap := make(Snapshot, len(w.snap))
	for id, t := range w.snap {
		snap[id] = t
	}
	return snap, nil
}

// Resolve stats the source file backing id.
func (w *Watcher) Resolve(id string) (Source, error) {
	return w.dir.Resolve(id)
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, okCh := <-w.watcher.Events:
			if !okCh {
				return
			}
			w.apply(ev)
		case err, okCh := <-w.watcher.Errors:
			if !okCh {
				return
			}
			w.log.Warn("file watcher error, resyncing", zap.Error(err))
			w.resync(ctx)
		}
	}
}

// apply folds one file system event into the snapshot.
func (w *Watcher) apply(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, w.dir.suffix) || strings.HasPrefix(name, ReservedPrefix) {
		return
	}
	id := strings.TrimSuffix(name, w.dir.suffix)

	switch {
	case ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename):
		w.mu.Lock()
		delete(w.snap, id)
		w.mu.Unlock()
	case ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write):
		info, err := os.Stat(ev.Name)
		if err != nil {
			// Editors often emit Write then Remove in quick
			// succession; the Remove event will catch up.
			return
		}
		w.mu.Lock()
		w.snap[id] = info.ModTime()
		w.mu.Unlock()
	}
}

// resync rebuilds the snapshot from a full directory read after an event
// overflow or watcher error.
func (w *Watcher) resync(ctx context.Context) {
	snap, err := w.dir.Scan(ctx)
	if err != nil {
		w.log.Error("resync scan failed", zap.Error(err))
		return
	}
	w.mu.Lock()
	w.snap = snap
	w.mu.Unlock()
}
