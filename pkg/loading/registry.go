package loading

import "fmt"

// Registry resolves loading screens by id.
type Registry interface {
	Resolve(id string) (*Handle, bool)
}

// HandleRegistry is a map-backed Registry. Screens are registered up front,
// before any transitions run.
type HandleRegistry struct {
	handles map[string]*Handle
}

func NewHandleRegistry() *HandleRegistry {
	return &HandleRegistry{
		handles: make(map[string]*Handle),
	}
}

// Register adds a handle to the registry. Registering a duplicate id is an
// error.
func (r *HandleRegistry) Register(h *Handle) error {
	if _, ok := r.handles[h.ID()]; ok {
		return fmt.Errorf("loading screen %s is already registered", h.ID())
	}
	r.handles[h.ID()] = h
	return nil
}

func (r *HandleRegistry) Resolve(id string) (*Handle, bool) {
	h, ok := r.handles[id]
	return h, ok
}
