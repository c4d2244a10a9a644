package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordiv/sceneflow/pkg/engine"
	"github.com/jordiv/sceneflow/pkg/engine/enginetest"
	"github.com/jordiv/sceneflow/pkg/loading"
	"github.com/jordiv/sceneflow/pkg/routine"
)

// testController records its lifecycle hooks into a shared trace. Each
// suspending hook waits hookFrames frames before completing.
type testController struct {
	name       string
	trace      *[]string
	hookFrames int

	payload any
	created int
}

func (c *testController) OnCreate(payload any) {
	c.payload = payload
	c.created++
	*c.trace = append(*c.trace, c.name+":on-create")
}

func (c *testController) WillEnable(ctx *routine.Context)  { c.hook(ctx, "will-enable") }
func (c *testController) Enabled(ctx *routine.Context)     { c.hook(ctx, "enabled") }
func (c *testController) WillDisable(ctx *routine.Context) { c.hook(ctx, "will-disable") }
func (c *testController) Disabled(ctx *routine.Context)    { c.hook(ctx, "disabled") }

func (c *testController) hook(ctx *routine.Context, name string) {
	ctx.WaitFrames(c.hookFrames)
	*c.trace = append(*c.trace, c.name+":"+name)
}

// testScreen is a loading screen with a fixed-length animation.
type testScreen struct {
	loading.BaseScreen
	animFrames int
	progress   float64
}

func (s *testScreen) PlayOpen(ctx *routine.Context)  { ctx.WaitFrames(s.animFrames) }
func (s *testScreen) PlayClose(ctx *routine.Context) { ctx.WaitFrames(s.animFrames) }
func (s *testScreen) SetProgress(p float64)          { s.progress = p }

// screenObserver records handle notifications into the shared trace.
type screenObserver struct {
	trace *[]string
}

func (o *screenObserver) WillOpen()  { *o.trace = append(*o.trace, "screen:will-open") }
func (o *screenObserver) Opened()    { *o.trace = append(*o.trace, "screen:opened") }
func (o *screenObserver) WillClose() { *o.trace = append(*o.trace, "screen:will-close") }
func (o *screenObserver) Closed()    { *o.trace = append(*o.trace, "screen:closed") }

// tracingLoader interleaves loader calls into the shared trace.
type tracingLoader struct {
	*enginetest.Loader
	trace *[]string
}

func (l *tracingLoader) LoadAdditive(id string) (engine.LoadOperation, error) {
	*l.trace = append(*l.trace, "loader:load:"+id)
	return l.Loader.LoadAdditive(id)
}

func (l *tracingLoader) Unload(id string) (engine.Operation, error) {
	*l.trace = append(*l.trace, "loader:unload:"+id)
	return l.Loader.Unload(id)
}

type fixture struct {
	loader *enginetest.Loader
	sched  *routine.Scheduler
	screen *loading.Handle
	stack  *Stack
	trace  []string
}

// newFixture builds a stack with one registered loading screen ("fade") and
// a bootstrap "menu" frame already on the stack.
func newFixture(t *testing.T) (*fixture, *testController) {
	t.Helper()
	f := newEmptyFixture(t, "")

	f.loader.MarkLoaded("menu")
	menu := &testController{name: "menu", trace: &f.trace}
	f.loader.SetRoots("menu", menu)

	tr, err := f.stack.ForceSetActive(ForceSetActiveOptions{
		SceneID:         "menu",
		Controller:      menu,
		LoadingScreenID: "fade",
	})
	require.NoError(t, err)
	f.settle(t, tr)
	f.trace = f.trace[:0]
	return f, menu
}

func newEmptyFixture(t *testing.T, bootstrapSceneID string) *fixture {
	t.Helper()
	f := &fixture{
		loader: enginetest.NewLoader(),
		sched:  routine.NewScheduler(),
	}

	f.screen = loading.NewHandle("fade", &testScreen{animFrames: 1}, 0)
	f.screen.AddObserver(&screenObserver{trace: &f.trace})
	registry := loading.NewHandleRegistry()
	require.NoError(t, registry.Register(f.screen))

	stack, err := NewStack(Options{
		Loader:           &tracingLoader{Loader: f.loader, trace: &f.trace},
		Screens:          registry,
		Scheduler:        f.sched,
		BootstrapSceneID: bootstrapSceneID,
	})
	require.NoError(t, err)
	f.stack = stack
	return f
}

func (f *fixture) settle(t *testing.T, tr *Transition) {
	t.Helper()
	for i := 0; i < 200 && !tr.Done(); i++ {
		f.sched.Update()
	}
	require.True(t, tr.Done(), "transition did not finish")
}

func (f *fixture) newController(name string) *testController {
	return &testController{name: name, trace: &f.trace}
}

// idx returns the position of event in trace, failing the test if absent.
func idx(t *testing.T, trace []string, event string) int {
	t.Helper()
	for i, e := range trace {
		if e == event {
			return i
		}
	}
	t.Fatalf("event %q not in trace %v", event, trace)
	return -1
}

func TestStack_Push(t *testing.T) {
	f, _ := newFixture(t)

	level1 := f.newController("level1")
	f.loader.SetRoots("level1", level1)

	payload := map[string]int{"difficulty": 2}
	tr, err := f.stack.Push(PushOptions{
		SceneID:         "level1",
		Payload:         payload,
		LoadingScreenID: "fade",
	})
	require.NoError(t, err)
	f.settle(t, tr)

	require.NoError(t, tr.Err())
	assert.Equal(t, 2, f.stack.FrameCount())
	assert.Equal(t, "level1", f.stack.ActiveFrame().ID())
	assert.Same(t, level1, f.stack.ActiveFrame().Controller())
	assert.Equal(t, 1, level1.created)
	assert.Equal(t, payload, level1.payload)

	// The buried menu frame was not cached, so its scene was unloaded and
	// its controller released.
	assert.False(t, f.loader.IsLoaded("menu"))
	assert.Equal(t, "level1", f.loader.ActiveScene())
}

func TestStack_Push_OrderingLaw(t *testing.T) {
	f, _ := newFixture(t)

	level1 := f.newController("level1")
	level1.hookFrames = 2
	f.loader.SetRoots("level1", level1)

	tr, err := f.stack.Push(PushOptions{SceneID: "level1", LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)
	require.NoError(t, tr.Err())

	trace := f.trace
	assert.Less(t, idx(t, trace, "menu:will-disable"), idx(t, trace, "screen:opened"))
	assert.Less(t, idx(t, trace, "screen:opened"), idx(t, trace, "menu:disabled"))
	assert.Less(t, idx(t, trace, "menu:disabled"), idx(t, trace, "loader:load:level1"))
	assert.Less(t, idx(t, trace, "loader:load:level1"), idx(t, trace, "loader:unload:menu"))
	assert.Less(t, idx(t, trace, "level1:on-create"), idx(t, trace, "level1:will-enable"))
	assert.Less(t, idx(t, trace, "level1:will-enable"), idx(t, trace, "screen:will-close"))
	assert.Less(t, idx(t, trace, "screen:closed"), idx(t, trace, "level1:enabled"))
}

func TestStack_Pop(t *testing.T) {
	f, menu := newFixture(t)

	level1 := f.newController("level1")
	f.loader.SetRoots("level1", level1)
	tr, err := f.stack.Push(PushOptions{SceneID: "level1", LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)

	tr, err = f.stack.Pop(PopOptions{LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)
	require.NoError(t, tr.Err())

	assert.Equal(t, 1, f.stack.FrameCount())
	assert.Equal(t, "menu", f.stack.ActiveFrame().ID())
	// Popping always destroys the popped frame's scene.
	assert.False(t, f.loader.IsLoaded("level1"))
	// The menu frame was not cached, so popping back reloaded it and bound a
	// fresh controller with the retained payload.
	assert.Equal(t, 1, f.loader.CountCalls("load:menu"))
	assert.Same(t, menu, f.stack.ActiveFrame().Controller())
	assert.Equal(t, 2, menu.created)
	assert.Equal(t, "menu", f.loader.ActiveScene())
}

func TestStack_Pop_Underflow(t *testing.T) {
	f, _ := newFixture(t)
	callsBefore := len(f.loader.Calls())

	tr, err := f.stack.Pop(PopOptions{LoadingScreenID: "fade"})
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, ErrStackUnderflow)

	assert.Equal(t, 1, f.stack.FrameCount())
	assert.Equal(t, "menu", f.stack.ActiveFrame().ID())
	assert.Len(t, f.loader.Calls(), callsBefore, "underflow must not touch the engine")
}

func TestStack_Push_UnresolvedLoadingScreen(t *testing.T) {
	f, _ := newFixture(t)
	callsBefore := len(f.loader.Calls())

	tr, err := f.stack.Push(PushOptions{SceneID: "level1", LoadingScreenID: "missing"})
	assert.Nil(t, tr)
	var unresolved *UnresolvedLoadingScreenError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "missing", unresolved.ID)

	assert.Equal(t, 1, f.stack.FrameCount())
	assert.Len(t, f.loader.Calls(), callsBefore)
}

func TestStack_RejectsConcurrentTransitions(t *testing.T) {
	f, _ := newFixture(t)

	level1 := f.newController("level1")
	f.loader.SetRoots("level1", level1)
	tr, err := f.stack.Push(PushOptions{SceneID: "level1", LoadingScreenID: "fade"})
	require.NoError(t, err)

	f.sched.Update()
	require.True(t, f.stack.InFlight())

	_, err = f.stack.Push(PushOptions{SceneID: "level1", LoadingScreenID: "fade"})
	assert.ErrorIs(t, err, ErrTransitionInFlight)
	_, err = f.stack.Pop(PopOptions{LoadingScreenID: "fade"})
	assert.ErrorIs(t, err, ErrTransitionInFlight)

	f.settle(t, tr)
	assert.False(t, f.stack.InFlight())
}

func TestStack_CacheLaw_Cached(t *testing.T) {
	f, _ := newFixture(t)

	level1 := f.newController("level1")
	f.loader.SetRoots("level1", level1)
	tr, err := f.stack.Push(PushOptions{SceneID: "level1", Cache: true, LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)

	level2 := f.newController("level2")
	f.loader.SetRoots("level2", level2)
	tr, err = f.stack.Push(PushOptions{SceneID: "level2", LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)

	// level1 is buried with the cache flag: still loaded, controller
	// retained, roots deactivated instead of unloaded.
	buried := f.stack.frames[len(f.stack.frames)-2]
	assert.Equal(t, "level1", buried.ID())
	assert.Same(t, level1, buried.Controller())
	assert.True(t, f.loader.IsLoaded("level1"))
	assert.Equal(t, 0, f.loader.CountCalls("unload:level1"))
	assert.Equal(t, 1, f.loader.CountCalls("set-roots-active:level1:false"))

	tr, err = f.stack.Pop(PopOptions{LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)
	require.NoError(t, tr.Err())

	// Reactivated without a reload; OnCreate ran only once.
	assert.Equal(t, "level1", f.stack.ActiveFrame().ID())
	assert.Same(t, level1, f.stack.ActiveFrame().Controller())
	assert.Equal(t, 1, f.loader.CountCalls("load:level1"))
	assert.Equal(t, 1, f.loader.CountCalls("set-roots-active:level1:true"))
	assert.Equal(t, 1, level1.created)
}

func TestStack_CacheLaw_Uncached(t *testing.T) {
	f, _ := newFixture(t)

	payload := "level1-payload"
	level1 := f.newController("level1")
	f.loader.SetRoots("level1", level1)
	tr, err := f.stack.Push(PushOptions{
		SceneID:         "level1",
		Payload:         payload,
		LoadingScreenID: "fade",
	})
	require.NoError(t, err)
	f.settle(t, tr)

	level2 := f.newController("level2")
	f.loader.SetRoots("level2", level2)
	tr, err = f.stack.Push(PushOptions{SceneID: "level2", LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)

	// level1 is buried without the cache flag: unloaded, controller released.
	buried := f.stack.frames[len(f.stack.frames)-2]
	assert.Nil(t, buried.Controller())
	assert.False(t, f.loader.IsLoaded("level1"))
	assert.Equal(t, 1, f.loader.CountCalls("unload:level1"))

	tr, err = f.stack.Pop(PopOptions{LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)
	require.NoError(t, tr.Err())

	// Popping back reloads the scene, rebinds the controller, and
	// re-delivers the retained payload.
	assert.Equal(t, 2, f.loader.CountCalls("load:level1"))
	require.NotNil(t, f.stack.ActiveFrame().Controller())
	assert.Equal(t, 2, level1.created)
	assert.Equal(t, payload, level1.payload)
}

func TestStack_StructuralViolation_TooManyRoots(t *testing.T) {
	f, _ := newFixture(t)

	f.loader.SetRoots("broken", f.newController("a"), f.newController("b"))
	tr, err := f.stack.Push(PushOptions{SceneID: "broken", LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)

	var violation *StructuralViolationError
	require.ErrorAs(t, tr.Err(), &violation)
	assert.Equal(t, "broken", violation.SceneID)

	// The transition aborted before pushing a frame, and the screen was not
	// left covering the game.
	assert.Equal(t, 1, f.stack.FrameCount())
	assert.Equal(t, loading.StateClosed, f.screen.State())
	assert.False(t, f.stack.InFlight())
}

func TestStack_StructuralViolation_RootWithoutCallbacks(t *testing.T) {
	f, _ := newFixture(t)

	f.loader.SetRoots("broken", struct{}{})
	tr, err := f.stack.Push(PushOptions{SceneID: "broken", LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)

	var violation *StructuralViolationError
	require.ErrorAs(t, tr.Err(), &violation)
	assert.Equal(t, 1, f.stack.FrameCount())
}

func TestStack_FirstPushUnloadsBootstrapScene(t *testing.T) {
	f := newEmptyFixture(t, "boot")
	f.loader.MarkLoaded("boot")

	level1 := &testController{name: "level1", trace: &f.trace}
	f.loader.SetRoots("level1", level1)

	tr, err := f.stack.Push(PushOptions{SceneID: "level1", LoadingScreenID: "fade"})
	require.NoError(t, err)
	f.settle(t, tr)
	require.NoError(t, tr.Err())

	assert.Equal(t, 1, f.stack.FrameCount())
	assert.Equal(t, 1, f.loader.CountCalls("unload:boot"))
	assert.False(t, f.loader.IsLoaded("boot"))
}

func TestStack_ForceSetActive(t *testing.T) {
	f := newEmptyFixture(t, "")
	f.loader.MarkLoaded("menu")

	menu := &testController{name: "menu", trace: &f.trace}
	tr, err := f.stack.ForceSetActive(ForceSetActiveOptions{
		SceneID:         "menu",
		Controller:      menu,
		Payload:         "hello",
		LoadingScreenID: "fade",
	})
	require.NoError(t, err)

	// The frame is installed synchronously and the screen forced open
	// without waiting for an animation.
	assert.Equal(t, 1, f.stack.FrameCount())
	assert.Equal(t, "menu", f.stack.ActiveFrame().ID())
	assert.Equal(t, loading.StateOpen, f.screen.State())

	f.settle(t, tr)
	require.NoError(t, tr.Err())

	assert.Equal(t, 1, menu.created)
	assert.Equal(t, "hello", menu.payload)
	assert.Equal(t, loading.StateClosed, f.screen.State())
	assert.Less(t, idx(t, f.trace, "menu:will-enable"), idx(t, f.trace, "screen:will-close"))
	assert.Less(t, idx(t, f.trace, "screen:closed"), idx(t, f.trace, "menu:enabled"))
}

func TestStack_ForceSetActive_RequiresController(t *testing.T) {
	f := newEmptyFixture(t, "")

	_, err := f.stack.ForceSetActive(ForceSetActiveOptions{
		SceneID:         "menu",
		LoadingScreenID: "fade",
	})
	assert.Error(t, err)
	assert.Equal(t, 0, f.stack.FrameCount())
}

func TestStack_ProgressForwardedBelowThreshold(t *testing.T) {
	f, _ := newFixture(t)
	f.loader.ProgressStep = 0.25

	level1 := f.newController("level1")
	f.loader.SetRoots("level1", level1)

	screen := &testScreen{}
	h := loading.NewHandle("bar", screen, 0)
	registry := f.stack.screens.(*loading.HandleRegistry)
	require.NoError(t, registry.Register(h))

	tr, err := f.stack.Push(PushOptions{SceneID: "level1", LoadingScreenID: "bar"})
	require.NoError(t, err)
	f.settle(t, tr)
	require.NoError(t, tr.Err())

	// The last forwarded value is the 100% set after the frame was pushed.
	assert.Equal(t, 1.0, screen.progress)
}
