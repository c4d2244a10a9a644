// Package screens provides the demo's concrete loading screens.
package screens

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/jordiv/sceneflow/pkg/loading"
)

// Screen is a loading screen the game loop can update and draw as an
// overlay on top of the active scene.
type Screen interface {
	loading.Screen

	Update()
	Draw(screen *ebiten.Image)
}
