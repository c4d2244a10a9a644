package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jordiv/sceneflow/client/objects"
	"github.com/jordiv/sceneflow/pkg/scene"
)

// Scene is the root controller of a demo scene: the lifecycle hooks the
// stack drives, plus the per-frame methods the game loop drives.
type Scene interface {
	scene.Callbacks

	Update() error
	Draw(screen *ebiten.Image)
	GetRoot() objects.GameObject
}

// BaseScene pairs the no-op lifecycle hooks with an object tree.
type BaseScene struct {
	scene.BaseCallbacks

	Root objects.GameObject
}

func NewBaseScene(root objects.GameObject) *BaseScene {
	return &BaseScene{Root: root}
}

func (s *BaseScene) GetRoot() objects.GameObject {
	return s.Root
}

func (s *BaseScene) Update() error {
	return objects.UpdateTree(s.Root)
}

func (s *BaseScene) Draw(screen *ebiten.Image) {
	objects.DrawTree(s.Root, screen)
}
