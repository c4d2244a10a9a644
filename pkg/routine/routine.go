// Package routine provides a cooperative scheduler for frame-driven
// procedures. A routine runs on its own goroutine but is only ever resumed
// by Scheduler.Update, one routine at a time, so routines never execute
// concurrently with each other or with the caller of Update. This gives
// sequential code explicit per-frame suspension points without locking.
package routine

// Routine is a handle to a scheduled procedure.
type Routine struct {
	resume  chan struct{}
	yielded chan struct{}
	done    chan struct{}
}

// Done returns a boolean value indicating whether the routine has run to
// completion.
func (r *Routine) Done() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// step resumes the routine until it yields or completes. It returns false
// once the routine has completed.
func (r *Routine) step() bool {
	select {
	case <-r.done:
		return false
	default:
	}
	r.resume <- struct{}{}
	select {
	case <-r.yielded:
		return true
	case <-r.done:
		return false
	}
}

// Context is passed to a routine function and exposes its suspension points.
// It must only be used from within the routine it was created for.
type Context struct {
	r *Routine
}

// Yield suspends the routine until the next Scheduler.Update.
func (c *Context) Yield() {
	c.r.yielded <- struct{}{}
	<-c.r.resume
}

// WaitFrames suspends the routine for n updates.
func (c *Context) WaitFrames(n int) {
	for i := 0; i < n; i++ {
		c.Yield()
	}
}

// WaitUntil suspends the routine until cond reports true. The condition is
// checked before the first yield, so a condition that already holds does not
// cost a frame.
func (c *Context) WaitUntil(cond func() bool) {
	for !cond() {
		c.Yield()
	}
}

// Scheduler drives a set of routines, resuming each active routine once per
// Update call. It is intended to be pumped from a game's update loop.
type Scheduler struct {
	routines []*Routine
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start schedules fn as a new routine. The routine does not begin executing
// until the next Update call.
func (s *Scheduler) Start(fn func(ctx *Context)) *Routine {
	r := &Routine{
		resume:  make(chan struct{}),
		yielded: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		<-r.resume
		fn(&Context{r: r})
	}()
	s.routines = append(s.routines, r)
	return r
}

// Update resumes every active routine exactly once. Routines started during
// an Update are first resumed on the following Update.
func (s *Scheduler) Update() {
	current := s.routines
	s.routines = s.routines[len(current):]
	for _, r := range current {
		if r.step() {
			s.routines = append(s.routines, r)
		}
	}
}

// Len returns the number of routines that have not yet completed.
func (s *Scheduler) Len() int {
	return len(s.routines)
}
