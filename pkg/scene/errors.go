package scene

import (
	"errors"
	"fmt"
)

// ErrTransitionInFlight is returned when a transition is requested while
// another one is still running. The stack supports at most one transition at
// a time.
var ErrTransitionInFlight = errors.New("a transition is already in flight")

// ErrStackUnderflow is returned when a pop is requested with fewer than two
// frames on the stack. The stack and engine state are left untouched.
var ErrStackUnderflow = errors.New("cannot pop the last frame")

// UnresolvedLoadingScreenError is returned when a transition names a loading
// screen that is not registered. The transition is aborted before any engine
// mutation.
type UnresolvedLoadingScreenError struct {
	ID string
}

func (e *UnresolvedLoadingScreenError) Error() string {
	return fmt.Sprintf("loading screen %s is not registered", e.ID)
}

// StructuralViolationError reports a loaded scene that does not expose
// exactly one root object implementing Callbacks. This is a contract on all
// managed scene content; it aborts the transition rather than continuing
// with an inconsistent stack.
type StructuralViolationError struct {
	SceneID string
	Reason  string
}

func (e *StructuralViolationError) Error() string {
	return fmt.Sprintf("scene %s violates the root contract: %s", e.SceneID, e.Reason)
}
