// Package core provides fundamental types and utilities shared by the
// portfolio engine and its presentation layers. It contains no external
// dependencies (especially no Bubble Tea) to keep world and simulation
// logic pure and testable.
package core

import "math"

// Rect is an integer rectangle in terminal cell space.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// AABB is an axis-aligned bounding box in world space (virtual pixels).
// Y grows downward, matching screen coordinates.
type AABB struct {
	X float64 `json:"x"` // Top-left corner
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewAABB creates a box from its top-left corner and size.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{X: x, Y: y, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b AABB) Left() float64 { return b.X }

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 { return b.X + b.W }

// Top returns the y-coordinate of the top edge.
func (b AABB) Top() float64 { return b.Y }

// Bottom returns the y-coordinate of the bottom edge.
func (b AABB) Bottom() float64 { return b.Y + b.H }

// OverlapsX reports whether the horizontal spans of two boxes overlap.
// Touching edges do not count.
func (b AABB) OverlapsX(other AABB) bool {
	return b.Right() > other.Left() && b.Left() < other.Right()
}

// Translate returns the box moved by (dx, dy).
func (b AABB) Translate(dx, dy float64) AABB {
	b.X += dx
	b.Y += dy
	return b
}

// ToCells projects the box onto a cell grid where each cell covers
// cellW x cellH pixels. The result always covers at least one cell.
func (b AABB) ToCells(cellW, cellH float64) Rect {
	x0 := int(math.Floor(b.X / cellW))
	y0 := int(math.Floor(b.Y / cellH))
	x1 := int(math.Ceil(b.Right() / cellW))
	y1 := int(math.Ceil(b.Bottom() / cellH))
	return Rect{X: x0, Y: y0, W: Max(1, x1-x0), H: Max(1, y1-y0)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Approach moves current toward target by at most step and never overshoots.
func Approach(current, target, step float64) float64 {
	if current < target {
		return math.Min(target, current+step)
	}
	if current > target {
		return math.Max(target, current-step)
	}
	return current
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
