package scenes

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jordiv/sceneflow/client/fonts"
	"github.com/jordiv/sceneflow/client/objects"
)

// MenuScene is the demo's entry scene: a title and one button per level.
type MenuScene struct {
	*BaseScene

	levels        []string
	onSelectLevel func(levelID string)
	ui            *ebitenui.UI
}

type MenuSceneOptions struct {
	// Levels are the scene ids offered by the menu, one button each.
	Levels []string
	// OnSelectLevel is called when a level button is pressed.
	OnSelectLevel func(levelID string)
}

var _ Scene = &MenuScene{}

func NewMenuScene(opts MenuSceneOptions) *MenuScene {
	return &MenuScene{
		BaseScene:     NewBaseScene(objects.NewBaseObject("menu-root")),
		levels:        opts.Levels,
		onSelectLevel: opts.OnSelectLevel,
	}
}

func (s *MenuScene) OnCreate(payload any) {
	s.renderUI()
}

func (s *MenuScene) renderUI() {
	buttonImage := &widget.ButtonImage{
		Idle:    image.NewNineSliceColor(color.NRGBA{R: 170, G: 170, B: 180, A: 255}),
		Hover:   image.NewNineSliceColor(color.NRGBA{R: 135, G: 135, B: 150, A: 255}),
		Pressed: image.NewNineSliceColor(color.NRGBA{R: 100, G: 100, B: 120, A: 255}),
	}

	fontFace := fonts.TTFNormalFont

	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(20),
			widget.RowLayoutOpts.Padding(widget.Insets{
				Top:    150,
				Left:   120,
				Right:  120,
				Bottom: 90,
			}))),
	)

	rootContainer.AddChild(widget.NewText(
		widget.TextOpts.Text("SCENEFLOW DEMO", fonts.TTFLargeFont, color.NRGBA{R: 254, G: 255, B: 255, A: 255}),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{
				Position: widget.RowLayoutPositionCenter,
			}),
		),
	))

	for _, levelID := range s.levels {
		levelID := levelID
		button := widget.NewButton(
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{
					Position: widget.RowLayoutPositionCenter,
					Stretch:  true,
				}),
			),
			widget.ButtonOpts.Image(buttonImage),
			widget.ButtonOpts.Text("Play "+levelID, fontFace, &widget.ButtonTextColor{
				Idle:     color.NRGBA{R: 254, G: 255, B: 255, A: 255},
				Disabled: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
			}),
			widget.ButtonOpts.TextPadding(widget.Insets{
				Left:   30,
				Right:  30,
				Top:    5,
				Bottom: 5,
			}),
		)
		button.ClickedEvent.AddHandler(func(args interface{}) {
			if s.onSelectLevel != nil {
				s.onSelectLevel(levelID)
			}
		})
		rootContainer.AddChild(button)
	}

	s.ui = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (s *MenuScene) Update() error {
	s.ui.Update()
	return s.BaseScene.Update()
}

func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 24, G: 28, B: 38, A: 255})
	s.ui.Draw(screen)
	s.BaseScene.Draw(screen)
}
