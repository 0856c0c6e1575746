// Package surface implements the command surface: the router between user
// input and extension-registered command handlers.
//
// The Mux keeps a concurrent-safe table of commands keyed by name, each
// owned by the extension that registered it. The lifecycle controller only
// ever calls Register and Deregister; dispatch is driven by the HTTP layer.
package surface
