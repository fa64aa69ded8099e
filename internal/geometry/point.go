// Package geometry holds the 2D primitives shared by the perception model and
// the spatial indexes.
package geometry

import "math"

// Point is a 2D position or an unnormalized direction vector.
// Equality is exact field equality.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// IsFinite reports whether neither component is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Len returns the Euclidean length of p.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Unit returns p scaled to length 1. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return p
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// WithinRadius reports whether b lies within distance r of a, boundary included.
// Every radius query in the module goes through this predicate. Distances are
// compared unsquared so huge and tiny magnitudes neither overflow nor flush
// to zero.
func WithinRadius(a, b Point, r float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= r
}
