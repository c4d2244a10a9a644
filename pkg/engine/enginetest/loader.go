// Package enginetest provides a scripted in-memory Loader for exercising
// transition logic without a real engine.
package enginetest

import (
	"fmt"

	"github.com/jordiv/sceneflow/pkg/engine"
)

// Loader is a fake engine.Loader. Loads advance by ProgressStep on every
// Progress poll and honor the activation gate: progress caps at
// engine.ActivationThreshold until AllowActivation is called. Every engine
// call is appended to an ordered call log so tests can assert sequencing.
type Loader struct {
	// ProgressStep is the progress added per Progress poll.
	ProgressStep float64

	roots  map[string][]any
	loaded map[string]bool
	active string
	calls  []string
}

func NewLoader() *Loader {
	return &Loader{
		ProgressStep: 0.5,
		roots:        make(map[string][]any),
		loaded:       make(map[string]bool),
	}
}

// SetRoots registers the root objects reported for a scene once loaded.
func (l *Loader) SetRoots(id string, roots ...any) {
	l.roots[id] = roots
}

// MarkLoaded records a scene as already present, without a load call. Used
// for scenes the engine started with.
func (l *Loader) MarkLoaded(id string) {
	l.loaded[id] = true
}

// Calls returns the ordered log of engine calls.
func (l *Loader) Calls() []string {
	return l.calls
}

// CountCalls returns how many logged calls equal call.
func (l *Loader) CountCalls(call string) int {
	n := 0
	for _, c := range l.calls {
		if c == call {
			n++
		}
	}
	return n
}

// IsLoaded reports whether a scene is currently loaded.
func (l *Loader) IsLoaded(id string) bool {
	return l.loaded[id]
}

// ActiveScene returns the id most recently passed to SetActiveScene.
func (l *Loader) ActiveScene() string {
	return l.active
}

func (l *Loader) record(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *Loader) LoadAdditive(id string) (engine.LoadOperation, error) {
	l.record("load:%s", id)
	return &loadOp{loader: l, id: id, step: l.ProgressStep}, nil
}

func (l *Loader) Unload(id string) (engine.Operation, error) {
	if !l.loaded[id] {
		return nil, fmt.Errorf("scene %s is not loaded", id)
	}
	l.record("unload:%s", id)
	l.loaded[id] = false
	return doneOp{}, nil
}

func (l *Loader) ReleaseUnused() engine.Operation {
	l.record("release-unused")
	return doneOp{}
}

func (l *Loader) SetActiveScene(id string) error {
	if !l.loaded[id] {
		return fmt.Errorf("scene %s is not loaded", id)
	}
	l.record("set-active:%s", id)
	l.active = id
	return nil
}

func (l *Loader) RootObjects(id string) ([]any, error) {
	if !l.loaded[id] {
		return nil, fmt.Errorf("scene %s is not loaded", id)
	}
	return l.roots[id], nil
}

func (l *Loader) SetRootObjectsActive(id string, active bool) error {
	if !l.loaded[id] {
		return fmt.Errorf("scene %s is not loaded", id)
	}
	l.record("set-roots-active:%s:%t", id, active)
	return nil
}

type loadOp struct {
	loader   *Loader
	id       string
	step     float64
	progress float64
	gateOpen bool
	done     bool
}

func (op *loadOp) Progress() float64 {
	if op.done {
		return 1
	}
	op.progress += op.step
	if !op.gateOpen && op.progress > engine.ActivationThreshold {
		op.progress = engine.ActivationThreshold
	}
	if op.progress >= 1 {
		op.progress = 1
		op.done = true
		op.loader.loaded[op.id] = true
		op.loader.record("loaded:%s", op.id)
	}
	return op.progress
}

func (op *loadOp) Done() bool {
	return op.done
}

func (op *loadOp) AllowActivation() {
	op.gateOpen = true
}

type doneOp struct{}

func (doneOp) Done() bool { return true }
