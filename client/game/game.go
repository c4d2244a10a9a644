package game

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	clientengine "github.com/jordiv/sceneflow/client/engine"
	"github.com/jordiv/sceneflow/client/input"
	"github.com/jordiv/sceneflow/client/scenes"
	"github.com/jordiv/sceneflow/client/screens"
	"github.com/jordiv/sceneflow/pkg/config"
	"github.com/jordiv/sceneflow/pkg/engine"
	"github.com/jordiv/sceneflow/pkg/loading"
	"github.com/jordiv/sceneflow/pkg/log"
	"github.com/jordiv/sceneflow/pkg/routine"
	"github.com/jordiv/sceneflow/pkg/scene"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

var levelBackdrops = []color.NRGBA{
	{R: 30, G: 60, B: 40, A: 255},
	{R: 60, G: 35, B: 45, A: 255},
	{R: 35, G: 45, B: 70, A: 255},
}

// Game implements ebiten.Game interface, which has Update, Draw and Layout
// methods. It pumps the transition scheduler once per frame and draws the
// active scene with any visible loading screen on top.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// cfg is the loaded configuration, swapped on config reload.
	cfg *config.Config
	// cfgPath is the path the configuration was loaded from.
	cfgPath string
	// sched drives transition routines.
	sched *routine.Scheduler
	// eng simulates the underlying engine's scene loading.
	eng *clientengine.Engine
	// stack is the navigation stack.
	stack *scene.Stack
	// screens holds the drawable loading screens by id.
	screens map[string]screens.Screen
	// watcher reloads the config file on change, if enabled.
	watcher *config.Watcher
	// lastErr is the most recent transition error, shown in debug mode.
	lastErr error
}

type NewGameOptions struct {
	// Config is the loaded configuration.
	Config *config.Config
	// ConfigPath is where Config was loaded from, used for reloads.
	ConfigPath string
	// WatchConfig enables live reload of the config file.
	WatchConfig bool
	// Debug enables the on-screen debug overlay.
	Debug bool
}

func NewGame(opts NewGameOptions) (*Game, error) {
	g := &Game{
		debug:   opts.Debug,
		cfg:     opts.Config,
		cfgPath: opts.ConfigPath,
		sched:   routine.NewScheduler(),
		screens: make(map[string]screens.Screen),
	}

	priority, err := parsePriority(opts.Config.Engine.BackgroundLoadingPriority)
	if err != nil {
		return nil, err
	}
	g.eng = clientengine.New(clientengine.Options{
		BackgroundLoadingPriority: priority,
	})

	registry := loading.NewHandleRegistry()
	for _, sc := range opts.Config.LoadingScreens {
		scr, err := g.buildScreen(sc)
		if err != nil {
			return nil, err
		}
		handle := loading.NewHandle(sc.ID, scr, sc.MinDisplayTime.Duration())
		if err := registry.Register(handle); err != nil {
			return nil, fmt.Errorf("failed to register loading screen: %v", err)
		}
		log.Debug("registered loading screen %s (min display %s)", handle.ID(), handle.MinDisplayTime())
		g.screens[sc.ID] = scr
	}

	for _, sc := range opts.Config.Scenes {
		factory, err := g.buildSceneFactory(sc)
		if err != nil {
			return nil, err
		}
		if err := g.eng.RegisterScene(sc.ID, sc.LoadFrames, factory); err != nil {
			return nil, fmt.Errorf("failed to register scene: %v", err)
		}
	}

	stack, err := scene.NewStack(scene.Options{
		Loader:           g.eng,
		Screens:          registry,
		Scheduler:        g.sched,
		BootstrapSceneID: opts.Config.Engine.BootstrapScene,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stack: %v", err)
	}
	g.stack = stack

	if err := g.bootstrap(); err != nil {
		return nil, err
	}

	if opts.WatchConfig {
		watcher, err := config.NewWatcher(filepath.Dir(opts.ConfigPath))
		if err != nil {
			return nil, fmt.Errorf("failed to watch config: %v", err)
		}
		g.watcher = watcher
	}

	return g, nil
}

// bootstrap force-sets the configured bootstrap scene as the first managed
// frame. Its controller is built directly and handed to the engine as an
// already-loaded scene.
func (g *Game) bootstrap() error {
	id := g.cfg.Engine.BootstrapScene
	sc, ok := g.cfg.Scene(id)
	if !ok {
		return fmt.Errorf("bootstrap scene %s is not defined", id)
	}
	factory, err := g.buildSceneFactory(sc)
	if err != nil {
		return err
	}
	controller, ok := factory().(scene.Callbacks)
	if !ok {
		return fmt.Errorf("bootstrap scene %s has no controller", id)
	}
	g.eng.AddLoadedScene(id, controller)

	screenID := g.firstScreenID()
	if _, err := g.stack.ForceSetActive(scene.ForceSetActiveOptions{
		SceneID:         id,
		Controller:      controller,
		Cache:           sc.Cache,
		LoadingScreenID: screenID,
	}); err != nil {
		return fmt.Errorf("failed to set bootstrap scene: %v", err)
	}
	return nil
}

func (g *Game) buildScreen(sc config.LoadingScreenConfig) (screens.Screen, error) {
	switch sc.Kind {
	case "fade":
		return screens.NewFadeScreen(sc.AnimationFrames), nil
	case "progress":
		return screens.NewProgressScreen(sc.AnimationFrames), nil
	default:
		return nil, fmt.Errorf("unknown loading screen kind %s", sc.Kind)
	}
}

func (g *Game) buildSceneFactory(sc config.SceneConfig) (clientengine.Factory, error) {
	switch sc.Kind {
	case "menu":
		return func() any {
			var levels []string
			for _, other := range g.cfg.Scenes {
				if other.Kind == "level" {
					levels = append(levels, other.ID)
				}
			}
			return scenes.NewMenuScene(scenes.MenuSceneOptions{
				Levels:        levels,
				OnSelectLevel: g.pushLevel,
			})
		}, nil
	case "level":
		backdrop := levelBackdrops[len(sc.ID)%len(levelBackdrops)]
		return func() any {
			return scenes.NewLevelScene(scenes.LevelSceneOptions{
				Backdrop: backdrop,
			})
		}, nil
	default:
		return nil, fmt.Errorf("unknown scene kind %s", sc.Kind)
	}
}

// firstScreenID returns the id of a registered "fade" screen, falling back
// to the first configured screen.
func (g *Game) firstScreenID() string {
	for _, sc := range g.cfg.LoadingScreens {
		if sc.Kind == "fade" {
			return sc.ID
		}
	}
	if len(g.cfg.LoadingScreens) > 0 {
		return g.cfg.LoadingScreens[0].ID
	}
	return ""
}

// progressScreenID returns the id of a registered "progress" screen,
// falling back to the first configured screen.
func (g *Game) progressScreenID() string {
	for _, sc := range g.cfg.LoadingScreens {
		if sc.Kind == "progress" {
			return sc.ID
		}
	}
	return g.firstScreenID()
}

func (g *Game) pushLevel(levelID string) {
	sc, ok := g.cfg.Scene(levelID)
	if !ok {
		log.Error("scene %s is not defined", levelID)
		return
	}
	tr, err := g.stack.Push(scene.PushOptions{
		SceneID: levelID,
		Payload: scenes.LevelPayload{
			Name:       levelID,
			Difficulty: g.stack.FrameCount(),
		},
		Cache:             sc.Cache,
		LoadingScreenID:   g.progressScreenID(),
		LoadingScreenData: screens.ProgressConfig{Caption: "Loading " + levelID},
	})
	if err != nil {
		log.Error("failed to push %s: %v", levelID, err)
		return
	}
	g.watchTransition(tr)
}

func (g *Game) pop() {
	tr, err := g.stack.Pop(scene.PopOptions{
		LoadingScreenID: g.firstScreenID(),
	})
	if err != nil {
		log.Warn("failed to pop: %v", err)
		return
	}
	g.watchTransition(tr)
}

// watchTransition surfaces transition errors once the transition finishes.
func (g *Game) watchTransition(tr *scene.Transition) {
	g.sched.Start(func(ctx *routine.Context) {
		ctx.WaitUntil(tr.Done)
		if err := tr.Err(); err != nil {
			g.lastErr = err
		}
	})
}

func (g *Game) Update() error {
	g.sched.Update()

	if !g.stack.InFlight() {
		if n := input.LevelJustPressed(); n > 0 {
			g.pushLevel(fmt.Sprintf("level%d", n))
		}
		if input.IsBackJustPressed() {
			g.pop()
		}
	}

	if frame := g.stack.ActiveFrame(); frame != nil {
		if sc, ok := frame.Controller().(scenes.Scene); ok {
			if err := sc.Update(); err != nil {
				return fmt.Errorf("failed to update scene %s: %v", frame.ID(), err)
			}
		}
	}

	for _, scr := range g.screens {
		scr.Update()
	}

	g.pollConfigWatcher()
	return nil
}

func (g *Game) pollConfigWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case name := <-g.watcher.Events:
		log.Info("config file %s changed, reloading", name)
		g.reloadConfig()
	case err := <-g.watcher.Errors:
		log.Error("config watcher error: %v", err)
	default:
	}
}

// reloadConfig swaps scene settings (cache flags, payload tuning) for future
// transitions. Registered screens and scenes keep their constructed
// implementations.
func (g *Game) reloadConfig() {
	loader := config.NewLoader(filepath.Dir(g.cfgPath))
	cfg, err := loader.Load(filepath.Base(g.cfgPath))
	if err != nil {
		log.Error("failed to reload config: %v", err)
		return
	}
	g.cfg = cfg
	log.Info("config reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	if frame := g.stack.ActiveFrame(); frame != nil {
		if sc, ok := frame.Controller().(scenes.Scene); ok {
			sc.Draw(screen)
		}
	}

	for _, scr := range g.screens {
		scr.Draw(screen)
	}

	if g.debug {
		msg := fmt.Sprintf("FPS: %0.1f | frames: %d | in flight: %t", ebiten.ActualFPS(), g.stack.FrameCount(), g.stack.InFlight())
		if g.lastErr != nil {
			msg += fmt.Sprintf("\nlast error: %v", g.lastErr)
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close releases the config watcher, if one was started.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func parsePriority(s string) (engine.Priority, error) {
	switch s {
	case "low":
		return engine.PriorityLow, nil
	case "", "normal":
		return engine.PriorityNormal, nil
	case "high":
		return engine.PriorityHigh, nil
	default:
		return engine.PriorityNormal, fmt.Errorf("unknown background loading priority %s", s)
	}
}
