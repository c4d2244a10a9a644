package objects

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RectObject draws a filled rectangle, used as level backdrops and platforms
// in the demo scenes.
type RectObject struct {
	*BaseObject

	x, y float32
	w, h float32
	clr  color.Color
}

type NewRectObjectOptions struct {
	// X is the x-coordinate of the rectangle.
	X float32
	// Y is the y-coordinate of the rectangle.
	Y float32
	// W is the width of the rectangle.
	W float32
	// H is the height of the rectangle.
	H float32
	// Color is the fill color of the rectangle.
	Color color.Color
}

func NewRectObject(id string, opts NewRectObjectOptions) *RectObject {
	return &RectObject{
		BaseObject: NewBaseObject(id),
		x:          opts.X,
		y:          opts.Y,
		w:          opts.W,
		h:          opts.H,
		clr:        opts.Color,
	}
}

func (o *RectObject) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, o.x, o.y, o.w, o.h, o.clr, false)
}
