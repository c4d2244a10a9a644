package scenes

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jordiv/sceneflow/client/objects"
	"github.com/jordiv/sceneflow/pkg/log"
	"github.com/jordiv/sceneflow/pkg/routine"
)

// LevelPayload is the data a level is pushed with.
type LevelPayload struct {
	Name       string
	Difficulty int
}

// LevelScene is a placeholder playable scene. Its platforms are spawned one
// per frame during WillEnable, while the loading screen still covers the
// transition.
type LevelScene struct {
	*BaseScene

	backdrop color.Color
	payload  LevelPayload
	title    *objects.TextOverlayObject
	paused   bool
}

type LevelSceneOptions struct {
	// Backdrop is the level's background color.
	Backdrop color.Color
}

var _ Scene = &LevelScene{}

func NewLevelScene(opts LevelSceneOptions) *LevelScene {
	backdrop := opts.Backdrop
	if backdrop == nil {
		backdrop = color.NRGBA{R: 30, G: 60, B: 40, A: 255}
	}
	return &LevelScene{
		BaseScene: NewBaseScene(objects.NewBaseObject("level-root")),
		backdrop:  backdrop,
	}
}

func (s *LevelScene) OnCreate(payload any) {
	if p, ok := payload.(LevelPayload); ok {
		s.payload = p
	}
}

func (s *LevelScene) titleText() string {
	return fmt.Sprintf("%s (difficulty %d)", s.payload.Name, s.payload.Difficulty)
}

func (s *LevelScene) WillEnable(ctx *routine.Context) {
	s.title = objects.NewTextOverlayObject("level-title", s.titleText(), color.White)
	if err := s.Root.AddChild(s.title); err != nil {
		log.Error("failed to add level title: %v", err)
	}

	for i := 0; i < 4+s.payload.Difficulty; i++ {
		platform := objects.NewRectObject(fmt.Sprintf("platform-%d", i), objects.NewRectObjectOptions{
			X:     float32(80 + i*180),
			Y:     float32(520 - (i%3)*120),
			W:     140,
			H:     24,
			Color: color.NRGBA{R: 90, G: 90, B: 110, A: 255},
		})
		if err := s.Root.AddChild(platform); err != nil {
			log.Error("failed to add platform: %v", err)
		}
		ctx.Yield()
	}
}

func (s *LevelScene) Enabled(ctx *routine.Context) {
	s.paused = false
	s.title.SetText(s.titleText())
}

func (s *LevelScene) WillDisable(ctx *routine.Context) {
	s.paused = true
	// The scene stays visible behind the loading screen until it opens.
	s.title.SetText(s.titleText() + " (paused)")
}

func (s *LevelScene) Update() error {
	if s.paused {
		return nil
	}
	return s.BaseScene.Update()
}

func (s *LevelScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.backdrop)
	s.BaseScene.Draw(screen)
}
