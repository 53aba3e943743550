package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/vovakirdan/siege/internal/core"
)

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpDrawImage
	OpDrawText
	OpSetBlend
)

// Op is one primitive issued to a Recorder.
type Op struct {
	Kind   OpKind
	Region core.Region // OpFillRect
	Point  core.Point  // OpDrawImage, OpDrawText
	Image  image.Image // OpDrawImage
	Text   string      // OpDrawText
	Color  color.Color // OpFillRect, OpDrawText
	Blend  Blend       // OpSetBlend; for other ops, the blend active when issued
}

func (o Op) String() string {
	switch o.Kind {
	case OpFillRect:
		return fmt.Sprintf("fill %v", o.Region)
	case OpDrawImage:
		return fmt.Sprintf("image at (%g,%g) blend=%s", o.Point.X, o.Point.Y, o.Blend)
	case OpDrawText:
		return fmt.Sprintf("text %q at (%g,%g)", o.Text, o.Point.X, o.Point.Y)
	case OpSetBlend:
		return fmt.Sprintf("blend %s", o.Blend)
	default:
		return "unknown op"
	}
}

// Recorder is a Canvas that keeps every primitive in order.
// Headless runs draw into it, and tests inspect it.
type Recorder struct {
	Ops   []Op
	blend Blend
}

// NewRecorder creates an empty recorder in alpha blend mode.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) FillRect(region core.Region, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Region: region, Color: c, Blend: r.blend})
}

func (r *Recorder) DrawImage(img image.Image, x, y float64) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawImage, Point: core.Pt(x, y), Image: img, Blend: r.blend})
}

func (r *Recorder) DrawText(s string, x, y float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawText, Point: core.Pt(x, y), Text: s, Color: c, Blend: r.blend})
}

func (r *Recorder) SetBlend(b Blend) {
	r.blend = b
	r.Ops = append(r.Ops, Op{Kind: OpSetBlend, Blend: b})
}

// Blend returns the blend mode currently active.
func (r *Recorder) Blend() Blend {
	return r.blend
}

// Reset drops recorded ops. The blend mode is kept, like a real surface.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns every recorded text in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpDrawText {
			out = append(out, op.Text)
		}
	}
	return out
}
