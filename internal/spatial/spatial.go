// Package spatial provides the grid coordinate and sub-tile offset vector
// math shared across the simulation: tile-grid positions, Vec2 sub-tile
// offsets, and drag-chain stepping (§4.5 step 10, §4.1's Movement facet).
//
// Adapted from the teacher's vmath package (vmath/vector.go, area.go):
// vmath's Normalize2D/ClampMagnitude/DotProduct/Reflect/Perpendicular
// operate on Q16.16 fixed-point int32 pairs with a precomputed Sin/Cos LUT,
// built for continuous real-time particle and bounce physics where the
// fixed-point format and trig cache earn their keep over many frames of
// per-pixel motion. A turn-based tile battler has no such hot path: Vec2
// here carries plain float64 components and the handful of operations the
// spec actually needs (Add, Scale, Dot, Normalize, Distance) are expressed
// directly in floating point. The orbital/arc/ellipse/physics3d/traversal
// parts of vmath have no analogue in this domain and are not carried over
// (see DESIGN.md).
package spatial

import "math"

// Vec2 is a 2D floating-point vector: a sub-tile offset or a drag/movement
// direction, never a discrete tile coordinate (see Tile).
type Vec2 struct {
	X, Y float64
}

// Tile is a discrete grid coordinate.
type Tile struct {
	X, Y int
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by factor.
func (v Vec2) Scale(factor float64) Vec2 { return Vec2{v.X * factor, v.Y * factor} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// MagnitudeSq returns the squared magnitude, avoiding a sqrt call.
func (v Vec2) MagnitudeSq() float64 { return v.Dot(v) }

// Magnitude returns the vector length.
func (v Vec2) Magnitude() float64 { return math.Sqrt(v.MagnitudeSq()) }

// Normalize returns a unit vector in the same direction as v, or the zero
// vector if v has zero magnitude.
func (v Vec2) Normalize() Vec2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

// ClampMagnitude limits v to maxMag while preserving direction.
func (v Vec2) ClampMagnitude(maxMag float64) Vec2 {
	mag := v.Magnitude()
	if mag <= maxMag || mag == 0 {
		return v
	}
	return v.Scale(maxMag / mag)
}

// Step returns the Tile reached by moving count steps of one unit each in
// direction (dx, dy) from t. It does no walkability check; the Hit/Defense
// Pipeline's drag stepping (§4.5 step 10) checks each tile itself and does
// not call Step.
func (t Tile) Step(dx, dy, count int) Tile {
	return Tile{X: t.X + dx*count, Y: t.Y + dy*count}
}

// Distance returns the Euclidean distance between two tiles.
func (t Tile) Distance(o Tile) float64 {
	dx := float64(t.X - o.X)
	dy := float64(t.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Area is an axis-aligned tile-grid rectangle.
type Area struct {
	X, Y, Width, Height int
}

// Center returns the area's center tile, rounding down for even extents.
func (a Area) Center() Tile {
	return Tile{X: a.X + a.Width/2, Y: a.Y + a.Height/2}
}

// Contains reports whether t lies within a.
func (a Area) Contains(t Tile) bool {
	return t.X >= a.X && t.X < a.X+a.Width && t.Y >= a.Y && t.Y < a.Y+a.Height
}
