// Package commands exposes the command surface over HTTP.
//
// Registered extension commands are listed at GET /commands and invoked at
// POST /commands/:name with JSON arguments. Which commands exist at any
// moment depends entirely on what the lifecycle controller has registered.
package commands
