package extension

// State is the lifecycle state of a registry entry.
type State int

const (
	// StateUnloaded means the extension is known but not active.
	StateUnloaded State = iota
	// StateLoading means construction and registration are in progress.
	StateLoading
	// StateLoaded means the extension is active on the command surface.
	StateLoaded
	// StateUnloading means deregistration is in progress.
	StateUnloading
	// StateFailed means the last load attempt failed. Failed entries are
	// retried on the next detection cycle.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateUnloading:
		return "unloading"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
