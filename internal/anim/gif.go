package anim

import (
	"fmt"
	"image"
	"image/gif"
	"io"

	"golang.org/x/image/draw"
)

// DecodeGIF decodes every frame of a GIF and composites it onto the logical
// screen, honouring each frame's disposal method.
func DecodeGIF(r io.Reader) (*Animation, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decode gif: no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	screen := image.NewRGBA(bounds)
	frames := make([]image.Image, 0, len(g.Image))

	for i, src := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = clone(screen)
		}

		draw.Draw(screen, src.Bounds(), src, src.Bounds().Min, draw.Over)
		frames = append(frames, clone(screen))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(screen, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			screen = previous
		}
	}

	return New(frames, g.Delay), nil
}

func clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Copy(dst, src.Bounds().Min, src, src.Bounds(), draw.Src, nil)
	return dst
}
