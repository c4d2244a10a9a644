// Package loading manages loading screen overlays: transient resources that
// hide scene transitions in progress. A Handle wraps one overlay and drives
// it through a Closed/Opening/Open/Closing state machine with a minimum
// display duration, so a fast transition never flashes the screen.
package loading

import (
	"github.com/jordiv/sceneflow/pkg/routine"
)

// State is the lifecycle state of a loading screen. Closed and Open are
// stable; Opening and Closing last for the duration of the screen's
// animation.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	}
	return "unknown"
}

// Screen is the visual resource behind a Handle. Concrete screens render an
// overlay and animate it open and closed; the handle decides when.
type Screen interface {
	// Init receives the caller-supplied configuration data for the
	// transition about to run.
	Init(data any)
	// SetVisible activates or deactivates the overlay.
	SetVisible(visible bool)
	// PlayOpen runs the open animation, returning once fully open.
	PlayOpen(ctx *routine.Context)
	// PlayClose runs the close animation, returning once fully closed.
	PlayClose(ctx *routine.Context)
	// SnapOpen jumps to the fully open state without animating.
	SnapOpen()
	// SnapClosed jumps to the fully closed state without animating.
	SnapClosed()
	// SetProgress updates the displayed load progress in [0, 1].
	SetProgress(progress float64)
}

// BaseScreen provides no-op implementations of the optional Screen methods.
// Concrete screens embed it and override what they render.
type BaseScreen struct{}

func (BaseScreen) Init(data any)                  {}
func (BaseScreen) SetVisible(visible bool)        {}
func (BaseScreen) PlayOpen(ctx *routine.Context)  {}
func (BaseScreen) PlayClose(ctx *routine.Context) {}
func (BaseScreen) SnapOpen()                      {}
func (BaseScreen) SnapClosed()                    {}
func (BaseScreen) SetProgress(progress float64)   {}

// Observer receives loading screen lifecycle notifications. Observers are
// fired in registration order.
type Observer interface {
	WillOpen()
	Opened()
	WillClose()
	Closed()
}
