// Package admin exposes the operator-facing management API.
//
// It is the host's equivalent of an admin command set: listing extensions
// with their lifecycle states, triggering manual load / unload / reload,
// inspecting the lifecycle journal, and requesting a graceful shutdown.
// Manual operations go through the extension.Bridge, so they serialize
// against the automatic change detector.
package admin
