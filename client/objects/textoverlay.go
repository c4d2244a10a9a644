package objects

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"github.com/jordiv/sceneflow/client/fonts"
)

// TextOverlayObject draws a line of text centered on the screen.
type TextOverlayObject struct {
	*BaseObject

	text string
	clr  color.Color
}

func NewTextOverlayObject(id string, txt string, clr color.Color) *TextOverlayObject {
	if clr == nil {
		clr = color.White
	}
	return &TextOverlayObject{
		BaseObject: NewBaseObject(id),
		text:       txt,
		clr:        clr,
	}
}

// SetText replaces the displayed text.
func (o *TextOverlayObject) SetText(txt string) {
	o.text = txt
}

// Text returns the displayed text.
func (o *TextOverlayObject) Text() string {
	return o.text
}

func (o *TextOverlayObject) Draw(screen *ebiten.Image) {
	f := fonts.TTFNormalFont
	bounds, _ := font.BoundString(f, o.text)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(
		float64(screen.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2,
		float64(screen.Bounds().Dy())/2-float64(bounds.Max.Y>>6)/2,
	)
	op.ColorScale.ScaleWithColor(o.clr)
	text.DrawWithOptions(screen, o.text, f, op)
}
