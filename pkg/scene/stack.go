// Package scene implements a stacked scene-transition orchestrator. A Stack
// owns an ordered stack of frames, one per managed scene, and sequences
// loading-screen display, lifecycle callbacks, and engine load/unload calls
// around every push and pop.
package scene

import (
	"fmt"

	"github.com/jordiv/sceneflow/pkg/engine"
	"github.com/jordiv/sceneflow/pkg/loading"
	"github.com/jordiv/sceneflow/pkg/log"
	"github.com/jordiv/sceneflow/pkg/routine"
)

// Options configures a Stack.
type Options struct {
	// Loader is the engine's scene loading primitives.
	Loader engine.Loader
	// Screens resolves loading screens by id.
	Screens loading.Registry
	// Scheduler drives transition routines, one resume per render frame.
	Scheduler *routine.Scheduler
	// BootstrapSceneID names the scene the engine started with. It is
	// unloaded after the first push onto an empty stack, if set.
	BootstrapSceneID string
}

// Stack is the navigation stack. It supports at most one transition in
// flight: Push, Pop, and ForceSetActive reject calls while a transition is
// running. All methods must be called from the same goroutine that pumps the
// scheduler.
type Stack struct {
	loader  engine.Loader
	screens loading.Registry
	sched   *routine.Scheduler

	frames            []*Frame
	inFlight          bool
	bootstrapSceneID  string
	bootstrapUnloaded bool
}

func NewStack(opts Options) (*Stack, error) {
	if opts.Loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if opts.Screens == nil {
		return nil, fmt.Errorf("loading screen registry is required")
	}
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("scheduler is required")
	}
	return &Stack{
		loader:           opts.Loader,
		screens:          opts.Screens,
		sched:            opts.Scheduler,
		bootstrapSceneID: opts.BootstrapSceneID,
	}, nil
}

// PushOptions configures one push transition.
type PushOptions struct {
	// SceneID is the scene to load, as known to the engine's loader.
	SceneID string
	// Payload is opaque data delivered to the new controller's OnCreate.
	Payload any
	// Cache keeps the scene loaded if the frame is later buried by another
	// push. A popped frame's scene is always unloaded.
	Cache bool
	// LoadingScreenID names the loading screen covering the transition.
	LoadingScreenID string
	// LoadingScreenData is passed to the loading screen's Init.
	LoadingScreenData any
}

// PopOptions configures one pop transition.
type PopOptions struct {
	LoadingScreenID   string
	LoadingScreenData any
}

// ForceSetActiveOptions configures a force-set transition.
type ForceSetActiveOptions struct {
	// SceneID identifies the already-present scene the controller belongs to.
	SceneID string
	// Controller is the already-instantiated root controller to wrap.
	Controller Callbacks
	// Payload is delivered to the controller's OnCreate.
	Payload any
	// Cache keeps the scene loaded if the frame is later buried.
	Cache             bool
	LoadingScreenID   string
	LoadingScreenData any
}

// ActiveFrame returns the top of the stack, or nil if the stack is empty.
func (s *Stack) ActiveFrame() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// FrameCount returns the current stack depth.
func (s *Stack) FrameCount() int {
	return len(s.frames)
}

// InFlight reports whether a transition is currently running.
func (s *Stack) InFlight() bool {
	return s.inFlight
}

// Push schedules a transition that loads a scene additively and makes it the
// new top frame. It returns before any engine mutation; the transition runs
// over the following frames and completes on the returned handle.
func (s *Stack) Push(opts PushOptions) (*Transition, error) {
	if s.inFlight {
		return nil, ErrTransitionInFlight
	}
	screen, ok := s.screens.Resolve(opts.LoadingScreenID)
	if !ok {
		err := &UnresolvedLoadingScreenError{ID: opts.LoadingScreenID}
		log.Error("failed to push scene %s: %v", opts.SceneID, err)
		return nil, err
	}
	screen.Init(opts.LoadingScreenData)

	t := newTransition("push")
	s.begin(t, screen, func(ctx *routine.Context) error {
		return s.runPush(ctx, screen, opts)
	})
	return t, nil
}

// Pop schedules a transition that discards the top frame and reactivates the
// frame beneath it. Popping the last frame is refused and leaves the stack
// and engine state untouched.
func (s *Stack) Pop(opts PopOptions) (*Transition, error) {
	if s.inFlight {
		return nil, ErrTransitionInFlight
	}
	if len(s.frames) < 2 {
		log.Error("failed to pop scene: %v", ErrStackUnderflow)
		return nil, ErrStackUnderflow
	}
	screen, ok := s.screens.Resolve(opts.LoadingScreenID)
	if !ok {
		err := &UnresolvedLoadingScreenError{ID: opts.LoadingScreenID}
		log.Error("failed to pop scene: %v", err)
		return nil, err
	}
	screen.Init(opts.LoadingScreenData)

	popped := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]

	t := newTransition("pop")
	s.begin(t, screen, func(ctx *routine.Context) error {
		return s.runPop(ctx, screen, popped)
	})
	return t, nil
}

// ForceSetActive pushes a frame wrapping an already-instantiated controller,
// bypassing loading entirely. The loading screen is forced open without
// animation; this is the bootstrap path for the first managed scene.
func (s *Stack) ForceSetActive(opts ForceSetActiveOptions) (*Transition, error) {
	if s.inFlight {
		return nil, ErrTransitionInFlight
	}
	if opts.Controller == nil {
		return nil, fmt.Errorf("controller is required")
	}
	screen, ok := s.screens.Resolve(opts.LoadingScreenID)
	if !ok {
		err := &UnresolvedLoadingScreenError{ID: opts.LoadingScreenID}
		log.Error("failed to force-set scene %s: %v", opts.SceneID, err)
		return nil, err
	}
	screen.Init(opts.LoadingScreenData)

	screen.ForceOpen()
	frame := newFrame(opts.SceneID, opts.Controller, opts.Payload, opts.Cache)
	s.frames = append(s.frames, frame)

	t := newTransition("force-set")
	s.begin(t, screen, func(ctx *routine.Context) error {
		opts.Controller.OnCreate(opts.Payload)
		opts.Controller.WillEnable(ctx)
		screen.Close(ctx)
		opts.Controller.Enabled(ctx)
		return nil
	})
	return t, nil
}

// begin schedules fn as the in-flight transition routine.
func (s *Stack) begin(t *Transition, screen *loading.Handle, fn func(ctx *routine.Context) error) {
	s.inFlight = true
	log.Debug("transition %s (%s) started", t.ID(), t.Kind())
	s.sched.Start(func(ctx *routine.Context) {
		err := fn(ctx)
		if err != nil {
			log.Error("transition %s (%s) failed: %v", t.ID(), t.Kind(), err)
			// Engine mutations are not rolled back, but the screen must not
			// be left covering the game.
			if screen.State() != loading.StateClosed {
				screen.ForceClose()
			}
		} else {
			log.Debug("transition %s (%s) finished", t.ID(), t.Kind())
		}
		t.finish(err)
		s.inFlight = false
	})
}

func (s *Stack) runPush(ctx *routine.Context, screen *loading.Handle, opts PushOptions) error {
	prev := s.ActiveFrame()

	if prev != nil {
		prev.Controller().WillDisable(ctx)
	}

	screen.Open(ctx)

	// The previous scene is now hidden behind the screen.
	if prev != nil {
		prev.Controller().Disabled(ctx)
	}

	if err := s.loadScene(ctx, screen, opts.SceneID); err != nil {
		return err
	}

	if prev != nil {
		if prev.Cached() {
			if err := s.loader.SetRootObjectsActive(prev.ID(), false); err != nil {
				return fmt.Errorf("failed to deactivate scene %s: %v", prev.ID(), err)
			}
		} else {
			if err := s.unloadScene(ctx, prev.ID()); err != nil {
				return err
			}
			prev.releaseController()
		}
	} else if !s.bootstrapUnloaded && s.bootstrapSceneID != "" {
		// First push onto an empty stack drops whatever scene the engine
		// started with.
		if err := s.unloadScene(ctx, s.bootstrapSceneID); err != nil {
			return err
		}
		s.bootstrapUnloaded = true
	}

	waitOp(ctx, s.loader.ReleaseUnused())

	if err := s.loader.SetActiveScene(opts.SceneID); err != nil {
		return fmt.Errorf("failed to activate scene %s: %v", opts.SceneID, err)
	}
	controller, err := s.rootController(opts.SceneID)
	if err != nil {
		return err
	}

	frame := newFrame(opts.SceneID, controller, opts.Payload, opts.Cache)
	s.frames = append(s.frames, frame)
	screen.SetLoadPercentage(1)

	controller.OnCreate(opts.Payload)
	controller.WillEnable(ctx)

	screen.Close(ctx)

	controller.Enabled(ctx)
	return nil
}

func (s *Stack) runPop(ctx *routine.Context, screen *loading.Handle, popped *Frame) error {
	revealed := s.frames[len(s.frames)-1]

	popped.Controller().WillDisable(ctx)

	screen.Open(ctx)

	popped.Controller().Disabled(ctx)

	// Reload the revealed scene if it was unloaded while buried.
	reloaded := false
	if revealed.Controller() == nil {
		if err := s.loadScene(ctx, screen, revealed.ID()); err != nil {
			return err
		}
		reloaded = true
	}

	// A popped frame's scene is always unloaded; the cache flag only
	// protects buried frames.
	if err := s.unloadScene(ctx, popped.ID()); err != nil {
		return err
	}

	waitOp(ctx, s.loader.ReleaseUnused())

	if err := s.loader.SetActiveScene(revealed.ID()); err != nil {
		return fmt.Errorf("failed to activate scene %s: %v", revealed.ID(), err)
	}

	if reloaded {
		controller, err := s.rootController(revealed.ID())
		if err != nil {
			return err
		}
		revealed.bindController(controller)
		// The rebound controller is a fresh instance and has never seen the
		// frame's payload.
		controller.OnCreate(revealed.Payload())
	} else {
		if err := s.loader.SetRootObjectsActive(revealed.ID(), true); err != nil {
			return fmt.Errorf("failed to reactivate scene %s: %v", revealed.ID(), err)
		}
	}
	screen.SetLoadPercentage(1)

	revealed.Controller().WillEnable(ctx)

	screen.Close(ctx)

	revealed.Controller().Enabled(ctx)
	return nil
}

// loadScene drives an additive load, forwarding progress to the screen until
// the activation threshold is reached and then releasing the activation gate
// so the load can finish.
func (s *Stack) loadScene(ctx *routine.Context, screen *loading.Handle, id string) error {
	op, err := s.loader.LoadAdditive(id)
	if err != nil {
		return fmt.Errorf("failed to load scene %s: %v", id, err)
	}
	for !op.Done() {
		if progress := op.Progress(); progress < engine.ActivationThreshold {
			screen.SetLoadPercentage(progress)
		} else {
			op.AllowActivation()
		}
		ctx.Yield()
	}
	return nil
}

func (s *Stack) unloadScene(ctx *routine.Context, id string) error {
	op, err := s.loader.Unload(id)
	if err != nil {
		return fmt.Errorf("failed to unload scene %s: %v", id, err)
	}
	waitOp(ctx, op)
	return nil
}

// rootController enforces the structural contract on managed scene content:
// exactly one root object implementing Callbacks.
func (s *Stack) rootController(id string) (Callbacks, error) {
	roots, err := s.loader.RootObjects(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get root objects of scene %s: %v", id, err)
	}
	if len(roots) != 1 {
		return nil, &StructuralViolationError{
			SceneID: id,
			Reason:  fmt.Sprintf("expected exactly 1 root object, got %d", len(roots)),
		}
	}
	controller, ok := roots[0].(Callbacks)
	if !ok {
		return nil, &StructuralViolationError{
			SceneID: id,
			Reason:  fmt.Sprintf("root object %T does not implement scene callbacks", roots[0]),
		}
	}
	return controller, nil
}

func waitOp(ctx *routine.Context, op engine.Operation) {
	ctx.WaitUntil(op.Done)
}
