// Package engine is the demo's in-process scene engine. Scenes are built by
// registered factories; loads take a configured number of frames and honor
// the activation-gate protocol, so the demo exercises the same loader
// contract a real engine would.
package engine

import (
	"fmt"

	"github.com/jordiv/sceneflow/client/objects"
	core "github.com/jordiv/sceneflow/pkg/engine"
	"github.com/jordiv/sceneflow/pkg/log"
)

// Factory constructs the root object of a scene.
type Factory func() any

// treeHolder is implemented by scene roots that own an object tree. The
// engine initializes the tree when the scene finishes loading and destroys
// it on unload.
type treeHolder interface {
	GetRoot() objects.GameObject
}

func initRoots(id string, roots []any) {
	for _, root := range roots {
		holder, ok := root.(treeHolder)
		if !ok {
			continue
		}
		if err := objects.InitTree(holder.GetRoot()); err != nil {
			log.Error("failed to init objects of scene %s: %v", id, err)
		}
	}
}

func destroyRoots(id string, roots []any) {
	for _, root := range roots {
		holder, ok := root.(treeHolder)
		if !ok {
			continue
		}
		if err := objects.DestroyTree(holder.GetRoot()); err != nil {
			log.Error("failed to destroy objects of scene %s: %v", id, err)
		}
	}
}

type sceneDef struct {
	factory    Factory
	loadFrames int
}

// Engine implements core.Loader over registered scene factories.
type Engine struct {
	priority core.Priority

	defs        map[string]sceneDef
	roots       map[string][]any
	rootsActive map[string]bool
	active      string
	released    int
}

type Options struct {
	// BackgroundLoadingPriority is applied once at construction.
	BackgroundLoadingPriority core.Priority
}

func New(opts Options) *Engine {
	log.Info("engine initialized with %s background loading priority", opts.BackgroundLoadingPriority)
	return &Engine{
		priority:    opts.BackgroundLoadingPriority,
		defs:        make(map[string]sceneDef),
		roots:       make(map[string][]any),
		rootsActive: make(map[string]bool),
	}
}

// RegisterScene makes a scene loadable. loadFrames is how many frames the
// simulated load takes; the factory runs once per load.
func (e *Engine) RegisterScene(id string, loadFrames int, factory Factory) error {
	if _, ok := e.defs[id]; ok {
		return fmt.Errorf("scene %s is already registered", id)
	}
	if loadFrames < 1 {
		loadFrames = 1
	}
	e.defs[id] = sceneDef{factory: factory, loadFrames: loadFrames}
	return nil
}

// AddLoadedScene installs an already-built scene, bypassing loading. Used
// for the scene the demo boots into.
func (e *Engine) AddLoadedScene(id string, roots ...any) {
	e.roots[id] = roots
	e.rootsActive[id] = true
	e.active = id
	initRoots(id, roots)
}

// ActiveSceneID returns the currently active scene, or "".
func (e *Engine) ActiveSceneID() string {
	return e.active
}

// IsLoaded reports whether a scene is currently loaded.
func (e *Engine) IsLoaded(id string) bool {
	_, ok := e.roots[id]
	return ok
}

// RootsActive reports whether a loaded scene's root objects are active.
func (e *Engine) RootsActive(id string) bool {
	return e.rootsActive[id]
}

// Released reports how many release-unused passes have run.
func (e *Engine) Released() int {
	return e.released
}

func (e *Engine) LoadAdditive(id string) (core.LoadOperation, error) {
	def, ok := e.defs[id]
	if !ok {
		return nil, fmt.Errorf("scene %s is not registered", id)
	}
	log.Debug("loading scene %s over %d frames", id, def.loadFrames)
	return &loadOperation{engine: e, id: id, total: def.loadFrames}, nil
}

func (e *Engine) Unload(id string) (core.Operation, error) {
	if _, ok := e.roots[id]; !ok {
		return nil, fmt.Errorf("scene %s is not loaded", id)
	}
	log.Debug("unloading scene %s", id)
	destroyRoots(id, e.roots[id])
	delete(e.roots, id)
	delete(e.rootsActive, id)
	if e.active == id {
		e.active = ""
	}
	return doneOperation{}, nil
}

func (e *Engine) ReleaseUnused() core.Operation {
	e.released++
	return doneOperation{}
}

func (e *Engine) SetActiveScene(id string) error {
	if _, ok := e.roots[id]; !ok {
		return fmt.Errorf("scene %s is not loaded", id)
	}
	e.active = id
	return nil
}

func (e *Engine) RootObjects(id string) ([]any, error) {
	roots, ok := e.roots[id]
	if !ok {
		return nil, fmt.Errorf("scene %s is not loaded", id)
	}
	return roots, nil
}

func (e *Engine) SetRootObjectsActive(id string, active bool) error {
	if _, ok := e.roots[id]; !ok {
		return fmt.Errorf("scene %s is not loaded", id)
	}
	e.rootsActive[id] = active
	return nil
}

// loadOperation advances once per Progress poll, which the stack issues once
// per frame. Progress caps at the activation threshold until the gate is
// released.
type loadOperation struct {
	engine *Engine
	id     string

	total    int
	frames   int
	gateOpen bool
	done     bool
}

func (op *loadOperation) Progress() float64 {
	if op.done {
		return 1
	}
	op.frames++
	progress := float64(op.frames) / float64(op.total)
	if !op.gateOpen && progress > core.ActivationThreshold {
		progress = core.ActivationThreshold
	}
	if op.gateOpen && progress >= 1 {
		progress = 1
		op.finish()
	}
	return progress
}

func (op *loadOperation) Done() bool {
	return op.done
}

func (op *loadOperation) AllowActivation() {
	op.gateOpen = true
}

func (op *loadOperation) finish() {
	op.done = true
	def := op.engine.defs[op.id]
	roots := []any{def.factory()}
	op.engine.roots[op.id] = roots
	op.engine.rootsActive[op.id] = true
	initRoots(op.id, roots)
	log.Debug("scene %s loaded", op.id)
}

type doneOperation struct{}

func (doneOperation) Done() bool { return true }
