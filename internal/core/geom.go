// Package core provides fundamental types and utilities for the siege simulation.
// It contains no external dependencies (especially no Bubble Tea or ebiten) to keep
// game logic pure and testable.
package core

import (
	"cmp"
	"math"
)

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Cell is an integer (column, row) index into a level's grid.
type Cell struct {
	X, Y int
}

// Region is an axis-aligned box in pixel space defined by two corners.
// Corners are normalized on construction so X1 <= X2 and Y1 <= Y2.
type Region struct {
	X1, Y1 float64 // Top-left corner
	X2, Y2 float64 // Bottom-right corner
}

// NewRegion creates a region from two arbitrary corners.
func NewRegion(x1, y1, x2, y2 float64) Region {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Region{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// RegionAt creates a degenerate (zero-area) region at p.
func RegionAt(p Point) Region {
	return Region{X1: p.X, Y1: p.Y, X2: p.X, Y2: p.Y}
}

// Width returns the horizontal extent.
func (r Region) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the vertical extent.
func (r Region) Height() float64 {
	return r.Y2 - r.Y1
}

// CenterX returns the horizontal center.
func (r Region) CenterX() float64 {
	return (r.X1 + r.X2) / 2
}

// CenterY returns the vertical center.
func (r Region) CenterY() float64 {
	return (r.Y1 + r.Y2) / 2
}

// Center returns the center point.
func (r Region) Center() Point {
	return Point{X: r.CenterX(), Y: r.CenterY()}
}

// UpdateCenterX moves the region horizontally so its center is at x, keeping its size.
func (r *Region) UpdateCenterX(x float64) {
	half := r.Width() / 2
	r.X1 = x - half
	r.X2 = x + half
}

// UpdateCenterY moves the region vertically so its center is at y, keeping its size.
func (r *Region) UpdateCenterY(y float64) {
	half := r.Height() / 2
	r.Y1 = y - half
	r.Y2 = y + half
}

// Expand returns a copy grown by dx on each horizontal side and dy on each vertical side.
func (r Region) Expand(dx, dy float64) Region {
	return NewRegion(r.X1-dx, r.Y1-dy, r.X2+dx, r.Y2+dy)
}

// Overlap returns true if the two regions share any area.
// Touching edges do not count. A degenerate region overlaps a box only when
// it lies strictly inside it.
func (r Region) Overlap(other Region) bool {
	return r.X1 < other.X2 && other.X1 < r.X2 && r.Y1 < other.Y2 && other.Y1 < r.Y2
}

// Contains returns true if p lies inside the region or on its edge.
func (r Region) Contains(p Point) bool {
	return p.X >= r.X1 && p.X <= r.X2 && p.Y >= r.Y1 && p.Y <= r.Y2
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}
