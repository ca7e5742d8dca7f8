// Package core provides fundamental types shared by the preview simulations.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Point is a cell coordinate on the world grid. (0,0) is the top-left cell.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point offset by the given vector.
func (p Point) Add(v Vec) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Wrap folds the point back into a w×h grid, re-entering at the opposite edge.
func (p Point) Wrap(w, h int) Point {
	return Point{X: mod(p.X, w), Y: mod(p.Y, h)}
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	return ((a % n) + n) % n
}

// Vec is a unit movement axis. The zero value means "not moving".
type Vec struct {
	X, Y int
}

// Cardinal axes.
var (
	VecNone  = Vec{}
	VecLeft  = Vec{X: -1}
	VecRight = Vec{X: 1}
	VecUp    = Vec{Y: -1}
	VecDown  = Vec{Y: 1}
)

// Reverse returns the opposite axis.
func (v Vec) Reverse() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// IsZero reports whether the axis is the stationary zero vector.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// String returns a human-readable name for the axis.
func (v Vec) String() string {
	switch v {
	case VecLeft:
		return "left"
	case VecRight:
		return "right"
	case VecUp:
		return "up"
	case VecDown:
		return "down"
	case VecNone:
		return "none"
	default:
		return "diagonal"
	}
}

// Rect represents an axis-aligned cell rectangle, used for grid bounds.
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

// Contains returns true if the point is inside this rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the center cell of the rectangle (rounded down).
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
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

// ClampPoint restricts a point to lie inside r.
func (r Rect) ClampPoint(p Point) Point {
	return Point{
		X: Clamp(p.X, r.X, r.Right()-1),
		Y: Clamp(p.Y, r.Y, r.Bottom()-1),
	}
}
