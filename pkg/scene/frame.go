package scene

// Frame is one entry in the navigation stack: a loaded scene paired with its
// root controller and the payload it was pushed with.
type Frame struct {
	id         string
	controller Callbacks
	payload    any
	cache      bool
}

func newFrame(id string, controller Callbacks, payload any, cache bool) *Frame {
	return &Frame{
		id:         id,
		controller: controller,
		payload:    payload,
		cache:      cache,
	}
}

// ID is the scene identifier, as known to the engine's loader.
func (f *Frame) ID() string {
	return f.id
}

// Controller returns the scene's root controller, or nil if the frame's
// scene has been unloaded while buried.
func (f *Frame) Controller() Callbacks {
	return f.controller
}

// Payload returns the opaque data the frame was pushed with. The payload is
// retained across unload/reload so it can be re-delivered to a rebound
// controller.
func (f *Frame) Payload() any {
	return f.payload
}

// Cached reports whether the frame keeps its scene loaded while buried by a
// later push. A popped frame's scene is always unloaded regardless.
func (f *Frame) Cached() bool {
	return f.cache
}

// releaseController drops the controller reference when the underlying scene
// is unloaded but the frame stays on the stack.
func (f *Frame) releaseController() {
	f.controller = nil
}

// bindController attaches a freshly loaded controller to the frame.
func (f *Frame) bindController(c Callbacks) {
	f.controller = c
}
