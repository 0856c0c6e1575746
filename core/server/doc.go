// Package server holds configuration for the operator-facing HTTP surface.
//
// The host exposes its admin API and the command dispatch endpoints over a
// single Fiber listener; this package carries the listener settings (port,
// API key) consumed by cmd/start and the auth middleware.
package server
