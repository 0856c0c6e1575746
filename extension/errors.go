package extension

import "fmt"

// Kind classifies a lifecycle failure.
type Kind string

const (
	// KindNotFound means the id is unknown to the registry or has no
	// backing source.
	KindNotFound Kind = "not_found"
	// KindConstruction means the factory failed to build the extension.
	KindConstruction Kind = "construction"
	// KindRegistration means the command surface rejected the extension.
	KindRegistration Kind = "registration"
	// KindTimeout means construction exceeded its configured budget.
	KindTimeout Kind = "timeout"
)

// LifecycleError is the structured failure of a single lifecycle operation.
type LifecycleError struct {
	Kind Kind
	ID   string
	Err  error
}

func (e *LifecycleError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("extension %s: %s", e.ID, e.Kind)
	}
	return fmt.Sprintf("extension %s: %s: %v", e.ID, e.Kind, e.Err)
}

func (e *LifecycleError) Unwrap() error {
	return e.Err
}

func lifecycleErr(kind Kind, id string, err error) *LifecycleError {
	return &LifecycleError{Kind: kind, ID: id, Err: err}
}

// Result is the outcome of one load, unload, or reload. Errors from
// operator-triggered operations are returned here rather than raised;
// automatic cycles aggregate Results into counts and logs.
type Result struct {
	ID      string
	Skipped bool
	Err     *LifecycleError
}

// OK reports whether the operation completed without error. A skipped
// operation (enablement policy excluded the id) is not a failure.
func (r Result) OK() bool {
	return r.Err == nil
}

func ok(id string) Result {
	return Result{ID: id}
}

func skipped(id string) Result {
	return Result{ID: id, Skipped: true}
}

func failed(kind Kind, id string, err error) Result {
	return Result{ID: id, Err: lifecycleErr(kind, id, err)}
}
