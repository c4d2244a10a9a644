package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jordiv/sceneflow/pkg/loading"
	"github.com/jordiv/sceneflow/pkg/routine"
)

// FadeConfig is the per-transition configuration for a FadeScreen.
type FadeConfig struct {
	// Color is the fade color. Defaults to black.
	Color color.NRGBA
}

// FadeScreen fades the screen to a solid color and back over a fixed number
// of frames.
type FadeScreen struct {
	loading.BaseScreen

	animFrames int
	clr        color.NRGBA
	alpha      float64
	visible    bool
}

var _ Screen = &FadeScreen{}

func NewFadeScreen(animFrames int) *FadeScreen {
	if animFrames < 1 {
		animFrames = 1
	}
	return &FadeScreen{
		animFrames: animFrames,
		clr:        color.NRGBA{A: 255},
	}
}

func (s *FadeScreen) Init(data any) {
	s.clr = color.NRGBA{A: 255}
	if cfg, ok := data.(FadeConfig); ok {
		s.clr = cfg.Color
	}
}

func (s *FadeScreen) SetVisible(visible bool) {
	s.visible = visible
}

func (s *FadeScreen) PlayOpen(ctx *routine.Context) {
	for i := 1; i <= s.animFrames; i++ {
		s.alpha = float64(i) / float64(s.animFrames)
		ctx.Yield()
	}
}

func (s *FadeScreen) PlayClose(ctx *routine.Context) {
	for i := s.animFrames - 1; i >= 0; i-- {
		s.alpha = float64(i) / float64(s.animFrames)
		ctx.Yield()
	}
}

func (s *FadeScreen) SnapOpen() {
	s.alpha = 1
}

func (s *FadeScreen) SnapClosed() {
	s.alpha = 0
}

func (s *FadeScreen) Update() {
}

func (s *FadeScreen) Draw(screen *ebiten.Image) {
	if !s.visible || s.alpha <= 0 {
		return
	}
	clr := s.clr
	clr.A = uint8(float64(clr.A) * s.alpha)
	vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy()), clr, false)
}
