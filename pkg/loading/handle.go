package loading

import (
	"time"

	"github.com/jordiv/sceneflow/pkg/routine"
)

// Handle owns the lifecycle of one loading screen. Handles are long-lived
// and registered once; only their transient state resets between
// transitions. A handle is driven from transition routines and must not be
// shared by two transitions at once.
type Handle struct {
	id             string
	screen         Screen
	minDisplayTime time.Duration

	state     State
	openedAt  time.Time
	observers []Observer

	// now is replaceable in tests.
	now func() time.Time
}

// NewHandle wraps screen with the given id. Close calls are delayed until
// the screen has been open for at least minDisplayTime.
func NewHandle(id string, screen Screen, minDisplayTime time.Duration) *Handle {
	return &Handle{
		id:             id,
		screen:         screen,
		minDisplayTime: minDisplayTime,
		state:          StateClosed,
		now:            time.Now,
	}
}

func (h *Handle) ID() string {
	return h.id
}

func (h *Handle) State() State {
	return h.state
}

// MinDisplayTime returns the minimum duration the screen stays open.
func (h *Handle) MinDisplayTime() time.Duration {
	return h.minDisplayTime
}

// Init forwards the caller-supplied configuration data for the next
// transition to the screen.
func (h *Handle) Init(data any) {
	h.screen.Init(data)
}

// AddObserver appends o to the notification list.
func (h *Handle) AddObserver(o Observer) {
	h.observers = append(h.observers, o)
}

// RemoveObserver removes o from the notification list.
func (h *Handle) RemoveObserver(o Observer) {
	for i, existing := range h.observers {
		if existing == o {
			h.observers = append(h.observers[:i], h.observers[i+1:]...)
			return
		}
	}
}

// Open activates the screen and runs its open animation, returning once the
// screen is fully open.
func (h *Handle) Open(ctx *routine.Context) {
	h.state = StateOpening
	h.screen.SetVisible(true)
	for _, o := range h.observers {
		o.WillOpen()
	}
	h.screen.PlayOpen(ctx)
	h.state = StateOpen
	for _, o := range h.observers {
		o.Opened()
	}
	h.openedAt = h.now()
}

// Close waits out the remaining minimum display time, runs the close
// animation, and deactivates the screen, returning once fully closed.
func (h *Handle) Close(ctx *routine.Context) {
	h.state = StateClosing
	for _, o := range h.observers {
		o.WillClose()
	}
	ctx.WaitUntil(func() bool {
		return h.now().Sub(h.openedAt) >= h.minDisplayTime
	})
	h.screen.PlayClose(ctx)
	h.state = StateClosed
	for _, o := range h.observers {
		o.Closed()
	}
	h.screen.SetVisible(false)
}

// ForceOpen opens the screen immediately, skipping the open animation. Used
// on the bootstrap path where no frame loop is running yet.
func (h *Handle) ForceOpen() {
	h.screen.SetVisible(true)
	for _, o := range h.observers {
		o.WillOpen()
	}
	h.screen.SnapOpen()
	h.state = StateOpen
	for _, o := range h.observers {
		o.Opened()
	}
	h.openedAt = h.now()
}

// ForceClose closes the screen immediately, skipping the close animation and
// the minimum display time.
func (h *Handle) ForceClose() {
	for _, o := range h.observers {
		o.WillClose()
	}
	h.screen.SnapClosed()
	h.state = StateClosed
	for _, o := range h.observers {
		o.Closed()
	}
	h.screen.SetVisible(false)
}

// SetLoadPercentage forwards load progress to the screen's display.
func (h *Handle) SetLoadPercentage(progress float64) {
	h.screen.SetProgress(progress)
}
