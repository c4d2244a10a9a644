package scene

import "github.com/google/uuid"

// Transition is the handle returned by Push, Pop, and ForceSetActive. The
// underlying procedure runs over many frames; Done flips once it finishes
// and Err carries any failure detected along the way.
type Transition struct {
	id   string
	kind string
	done bool
	err  error
}

func newTransition(kind string) *Transition {
	return &Transition{
		id:   uuid.NewString(),
		kind: kind,
	}
}

// ID is a unique identifier for this transition, carried in its log lines.
func (t *Transition) ID() string {
	return t.id
}

// Kind is one of "push", "pop", or "force-set".
func (t *Transition) Kind() string {
	return t.kind
}

// Done reports whether the transition has finished, successfully or not.
func (t *Transition) Done() bool {
	return t.done
}

// Err returns the error the transition finished with, if any. It is only
// meaningful once Done reports true.
func (t *Transition) Err() error {
	return t.err
}

func (t *Transition) finish(err error) {
	t.done = true
	t.err = err
}
