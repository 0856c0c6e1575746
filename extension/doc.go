// Package extension provides the hot-reload lifecycle system for the host.
//
// It discovers extension sources in a watched directory, loads them through an
// injected Factory, registers the resulting command handlers with a Surface,
// and keeps the in-memory Registry converged with what is on disk.
//
// # Components
//
//   - Registry: authoritative table of known extensions and their state.
//   - Scanner: enumerates candidate sources (polling DirScanner or the
//     fsnotify-backed Watcher).
//   - Controller: performs load / unload / reload transitions, isolating
//     failures per extension behind a single operation-scoped mutex.
//   - Detector: the periodic scan-diff-apply cycle.
//   - Bridge: operator-facing reload entry point sharing the Controller.
//
// This architecture allows extensions to be dropped into, edited in, or
// removed from the source directory while the host keeps running.
package extension
