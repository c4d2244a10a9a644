package scene

import "github.com/jordiv/sceneflow/pkg/routine"

// Callbacks is implemented by the root controller of every managed scene.
// The stack drives the four suspending hooks in a fixed order around each
// transition; each hook may suspend for as many frames as it needs and the
// transition waits for it to return.
type Callbacks interface {
	// OnCreate delivers the payload the scene was pushed with. It is called
	// exactly once per controller instance, before any other hook.
	OnCreate(payload any)
	// WillEnable runs before the scene becomes visible, while the loading
	// screen is still open.
	WillEnable(ctx *routine.Context)
	// Enabled runs after the loading screen has fully closed.
	Enabled(ctx *routine.Context)
	// WillDisable runs before the loading screen opens over the scene.
	WillDisable(ctx *routine.Context)
	// Disabled runs once the scene is hidden behind the loading screen.
	Disabled(ctx *routine.Context)
}

// BaseCallbacks provides no-op implementations of the four suspending hooks.
// Controllers embed it and implement OnCreate plus whatever hooks they need.
type BaseCallbacks struct{}

func (BaseCallbacks) WillEnable(ctx *routine.Context)  {}
func (BaseCallbacks) Enabled(ctx *routine.Context)     {}
func (BaseCallbacks) WillDisable(ctx *routine.Context) {}
func (BaseCallbacks) Disabled(ctx *routine.Context)    {}
