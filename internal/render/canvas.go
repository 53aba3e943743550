// Package render defines the drawing surface the simulation draws into.
// Platforms implement Canvas; the simulation only issues primitives during
// the draw pass.
package render

import (
	"image"
	"image/color"

	"github.com/vovakirdan/siege/internal/core"
)

// Blend selects how drawn pixels combine with what is already on the canvas.
type Blend int

const (
	// BlendAlpha is regular source-over compositing. Default.
	BlendAlpha Blend = iota
	// BlendAdditive adds source to destination, brightening it.
	BlendAdditive
)

func (b Blend) String() string {
	switch b {
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// Canvas is the rendering collaborator. Coordinates are window pixels.
type Canvas interface {
	// FillRect fills r with c.
	FillRect(r core.Region, c color.Color)
	// DrawImage draws img with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y float64)
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(s string, x, y float64, c color.Color)
	// SetBlend changes the blend mode for every following primitive.
	SetBlend(b Blend)
}

// Palette used by the simulation's draw pass.
var (
	ColorBackground = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	ColorRoad       = color.RGBA{R: 255, G: 244, B: 173, A: 255}
	ColorText       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorButtonText = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ColorOverlay    = color.RGBA{R: 50, G: 50, B: 50, A: 64}
	ColorButton     = color.RGBA{R: 255, G: 255, B: 255, A: 64}
	ColorButtonHot  = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	ColorDefender   = color.RGBA{R: 70, G: 160, B: 70, A: 255}
	ColorProjectile = color.RGBA{R: 120, G: 220, B: 90, A: 255}
	ColorUnit       = color.RGBA{R: 150, G: 90, B: 60, A: 255}
	ColorHealth     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)
