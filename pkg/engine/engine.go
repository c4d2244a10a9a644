// Package engine defines the contract between the scene stack and the
// underlying engine's scene loading primitives. Implementations wrap
// whatever actually owns scene resources; the stack only ever talks to
// these interfaces.
package engine

// ActivationThreshold is the progress value at which an additive load holds
// until AllowActivation is called. Loaders report monotonically increasing
// progress capped at this value, and never complete until the gate is
// released. Callers driving a LoadOperation must release the gate once the
// threshold is reached or the load will never finish.
const ActivationThreshold = 0.9

// LoadOperation is a handle to an in-flight additive scene load.
type LoadOperation interface {
	// Progress reports load progress in [0, 1].
	Progress() float64
	// Done reports whether the scene has finished loading and activating.
	Done() bool
	// AllowActivation releases the activation gate, letting a load held at
	// ActivationThreshold proceed to completion.
	AllowActivation()
}

// Operation is a handle to an in-flight unload or cleanup call.
type Operation interface {
	Done() bool
}

// Loader is the set of scene primitives the stack drives. All asynchronous
// calls return handles that are polled once per frame; none of them carry a
// timeout, so a loader that stalls will stall its transition.
type Loader interface {
	// LoadAdditive begins loading the scene with the given id alongside any
	// scenes already loaded.
	LoadAdditive(id string) (LoadOperation, error)
	// Unload begins unloading the scene with the given id.
	Unload(id string) (Operation, error)
	// ReleaseUnused begins releasing resources no longer referenced by any
	// loaded scene.
	ReleaseUnused() Operation
	// SetActiveScene marks the scene with the given id as the active scene.
	SetActiveScene(id string) error
	// RootObjects returns the root objects of a loaded scene.
	RootObjects(id string) ([]any, error)
	// SetRootObjectsActive toggles the root objects of a loaded scene
	// without unloading the scene.
	SetRootObjectsActive(id string, active bool) error
}

// Priority is the engine's background loading priority. It is applied once
// when a loader is constructed.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	}
	return "unknown"
}
