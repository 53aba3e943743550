package gui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/siege/internal/core"
	"github.com/vovakirdan/siege/internal/render"
)

// Canvas draws simulation primitives onto an ebiten image.
type Canvas struct {
	target *ebiten.Image
	blend  render.Blend
	face   font.Face
	pixel  *ebiten.Image
	images map[image.Image]*ebiten.Image
}

// NewCanvas creates a canvas using the 7x13 bitmap font.
func NewCanvas() *Canvas {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Canvas{
		face:   basicfont.Face7x13,
		pixel:  pixel,
		images: make(map[image.Image]*ebiten.Image),
	}
}

// Begin targets screen for the next frame and resets the blend.
func (c *Canvas) Begin(screen *ebiten.Image) {
	c.target = screen
	c.blend = render.BlendAlpha
}

func (c *Canvas) SetBlend(b render.Blend) {
	c.blend = b
}

func (c *Canvas) ebitenBlend() ebiten.Blend {
	if c.blend == render.BlendAdditive {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

func (c *Canvas) FillRect(r core.Region, col color.Color) {
	if c.blend == render.BlendAlpha {
		vector.DrawFilledRect(c.target, float32(r.X1), float32(r.Y1), float32(r.Width()), float32(r.Height()), col, false)
		return
	}

	// vector has no blend option; scale a white pixel instead
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width(), r.Height())
	op.GeoM.Translate(r.X1, r.Y1)
	op.ColorScale.ScaleWithColor(col)
	op.Blend = c.ebitenBlend()
	c.target.DrawImage(c.pixel, op)
}

// DrawImage uploads img once and reuses the texture for later frames.
func (c *Canvas) DrawImage(img image.Image, x, y float64) {
	if img == nil {
		return
	}
	tex, ok := c.images[img]
	if !ok {
		tex = ebiten.NewImageFromImage(img)
		c.images[img] = tex
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.Blend = c.ebitenBlend()
	c.target.DrawImage(tex, op)
}

func (c *Canvas) DrawText(s string, x, y float64, col color.Color) {
	ascent := c.face.Metrics().Ascent.Ceil()
	text.Draw(c.target, s, c.face, int(x), int(y)+ascent, col)
}
