// Package anim loads multi-frame animation resources and caches them by key.
package anim

import (
	"image"
)

// DefaultDelay is used for frames that declare no delay, in centiseconds.
const DefaultDelay = 10

// Animation is a decoded frame sequence with per-frame durations.
// Frames are fully composited; each one can be drawn on its own.
type Animation struct {
	frames []image.Image
	delays []int // Centiseconds
	width  int
	height int
}

// New builds an animation from ready frames. Missing or non-positive delays
// become DefaultDelay. Width and height come from the first frame.
func New(frames []image.Image, delays []int) *Animation {
	a := &Animation{
		frames: frames,
		delays: make([]int, len(frames)),
	}
	for i := range frames {
		d := 0
		if i < len(delays) {
			d = delays[i]
		}
		if d <= 0 {
			d = DefaultDelay
		}
		a.delays[i] = d
	}
	if len(frames) > 0 && frames[0] != nil {
		b := frames[0].Bounds()
		a.width, a.height = b.Dx(), b.Dy()
	}
	return a
}

// FrameCount returns the number of frames.
func (a *Animation) FrameCount() int {
	return len(a.frames)
}

// FrameDuration returns the delay of frame i in centiseconds, 0 if out of range.
func (a *Animation) FrameDuration(i int) int {
	if i < 0 || i >= len(a.delays) {
		return 0
	}
	return a.delays[i]
}

// Frame returns frame i, or nil if out of range.
func (a *Animation) Frame(i int) image.Image {
	if i < 0 || i >= len(a.frames) {
		return nil
	}
	return a.frames[i]
}

func (a *Animation) Width() int  { return a.width }
func (a *Animation) Height() int { return a.height }

// Library looks animations up by key. Returned handles are borrowed; the
// library keeps ownership.
type Library interface {
	Get(key string) (*Animation, bool)
}

// Set is a fixed in-memory Library.
type Set map[string]*Animation

func (s Set) Get(key string) (*Animation, bool) {
	a, ok := s[key]
	return a, ok
}
