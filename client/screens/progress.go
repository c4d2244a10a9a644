package screens

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/jordiv/sceneflow/client/fonts"
	"github.com/jordiv/sceneflow/pkg/loading"
	"github.com/jordiv/sceneflow/pkg/routine"
)

// ProgressConfig is the per-transition configuration for a ProgressScreen.
type ProgressConfig struct {
	// Caption is shown above the progress bar, e.g. the destination scene's
	// display name.
	Caption string
}

// ProgressScreen dims the game and shows a caption with a progress bar fed
// by the stack's load progress.
type ProgressScreen struct {
	loading.BaseScreen

	animFrames int
	alpha      float64
	visible    bool
	progress   float64

	ui      *ebitenui.UI
	caption *widget.Text
	percent *widget.Text
}

var _ Screen = &ProgressScreen{}

func NewProgressScreen(animFrames int) *ProgressScreen {
	if animFrames < 1 {
		animFrames = 1
	}
	s := &ProgressScreen{
		animFrames: animFrames,
	}
	s.renderUI()
	return s
}

func (s *ProgressScreen) renderUI() {
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:  260,
				Left: 120,
			}))),
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.NRGBA{})),
	)

	s.caption = widget.NewText(
		widget.TextOpts.Text("Loading", fonts.TTFLargeFont, color.NRGBA{R: 254, G: 255, B: 255, A: 255}),
	)
	rootContainer.AddChild(s.caption)

	s.percent = widget.NewText(
		widget.TextOpts.Text("0%", fonts.TTFNormalFont, color.NRGBA{R: 200, G: 200, B: 210, A: 255}),
	)
	rootContainer.AddChild(s.percent)

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *ProgressScreen) Init(data any) {
	s.progress = 0
	s.caption.Label = "Loading"
	if cfg, ok := data.(ProgressConfig); ok && cfg.Caption != "" {
		s.caption.Label = cfg.Caption
	}
	s.percent.Label = "0%"
}

func (s *ProgressScreen) SetVisible(visible bool) {
	s.visible = visible
}

func (s *ProgressScreen) PlayOpen(ctx *routine.Context) {
	for i := 1; i <= s.animFrames; i++ {
		s.alpha = float64(i) / float64(s.animFrames)
		ctx.Yield()
	}
}

func (s *ProgressScreen) PlayClose(ctx *routine.Context) {
	for i := s.animFrames - 1; i >= 0; i-- {
		s.alpha = float64(i) / float64(s.animFrames)
		ctx.Yield()
	}
}

func (s *ProgressScreen) SnapOpen() {
	s.alpha = 1
}

func (s *ProgressScreen) SnapClosed() {
	s.alpha = 0
}

func (s *ProgressScreen) SetProgress(progress float64) {
	s.progress = progress
	s.percent.Label = fmt.Sprintf("%d%%", int(progress*100))
}

func (s *ProgressScreen) Update() {
	if !s.visible {
		return
	}
	s.ui.Update()
}

func (s *ProgressScreen) Draw(screen *ebiten.Image) {
	if !s.visible || s.alpha <= 0 {
		return
	}
	w := float32(screen.Bounds().Dx())
	h := float32(screen.Bounds().Dy())

	dim := color.NRGBA{R: 10, G: 10, B: 16, A: uint8(230 * s.alpha)}
	vector.DrawFilledRect(screen, 0, 0, w, h, dim, false)

	if s.alpha >= 1 {
		s.ui.Draw(screen)

		barX, barY := float32(120), float32(360)
		barW, barH := w-240, float32(18)
		track := color.NRGBA{R: 60, G: 60, B: 70, A: 255}
		fill := color.NRGBA{R: 120, G: 180, B: 240, A: 255}
		vector.DrawFilledRect(screen, barX, barY, barW, barH, track, false)
		vector.DrawFilledRect(screen, barX, barY, barW*float32(s.progress), barH, fill, false)
	}
}
