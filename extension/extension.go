package extension

import (
	"context"
	"time"
)

// Extension is the capability set an extension exposes to the host.
// Implementations are constructed by a Factory from a Source and registered
// with the command Surface while loaded.
type Extension interface {
	// ID is the stable identifier, derived from the source file stem.
	ID() string
	// DisplayName is the human-facing name.
	DisplayName() string
	// Description explains what the extension does.
	Description() string
	// Emoji is the presentation glyph.
	Emoji() string
	// Commands returns the commands the extension contributes.
	Commands() []Command
}

// CommandHandler executes a single extension command.
type CommandHandler func(ctx context.Context, req Request) (Response, error)

// Command is one operation an extension contributes to the command surface.
type Command struct {
	Name        string
	Description string
	Handler     CommandHandler
}

// Request carries the invocation arguments for a command.
type Request struct {
	Command string
	Args    map[string]string
}

// Response is the result of a command invocation.
type Response struct {
	Text string `json:"text"`
}

// Source identifies the backing file of an extension candidate.
type Source struct {
	ID      string
	Path    string
	ModTime time.Time
}

// Factory constructs an extension instance from its source.
// Construction may perform I/O and must honor the context deadline.
type Factory interface {
	New(ctx context.Context, src Source) (Extension, error)
}

// Surface is the external command router. The controller calls exactly these
// two operations; how commands are routed to handlers is the surface's
// business.
type Surface interface {
	Register(ext Extension) error
	Deregister(id string) error
}

// Action names a lifecycle transition for journaling.
type Action string

const (
	ActionLoad   Action = "load"
	ActionUnload Action = "unload"
	ActionReload Action = "reload"
)

// Event describes the outcome of one lifecycle transition.
type Event struct {
	ExtensionID string
	Action      Action
	Err         error
}

// Recorder receives lifecycle events. Implementations must not block the
// caller on failure; recording problems are theirs to log.
type Recorder interface {
	Record(ctx context.Context, ev Event)
}
