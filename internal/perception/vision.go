// Package perception builds the field-of-view model of a unit and decides
// whether a point falls inside it.
package perception

import (
	"errors"
	"fmt"
	"math"

	"unitsight/internal/geometry"
)

// ErrInvalidVision is returned for angles outside [0, 360] or negative distances.
var ErrInvalidVision = errors.New("invalid vision parameters")

// Vision is the resolved perception model shared by all units of a scenario.
//
// HalfAngle is always the half-angle of the cone whose boundaries are built,
// at most 90 degrees. When Reflex is set the configured angle exceeded 180
// degrees and the built cone is the blind one.
type Vision struct {
	HalfAngle float64 // radians
	Sin       float64
	Cos       float64
	Distance  float64
	Reflex    bool
}

// NewVision converts a configured field-of-view angle in degrees and a view
// distance into a Vision.
func NewVision(angleDeg, distance float64) (Vision, error) {
	if math.IsNaN(angleDeg) || angleDeg < 0 || angleDeg > 360 {
		return Vision{}, fmt.Errorf("%w: angle %v not in [0, 360]", ErrInvalidVision, angleDeg)
	}
	if math.IsNaN(distance) || distance < 0 {
		return Vision{}, fmt.Errorf("%w: distance %v is negative", ErrInvalidVision, distance)
	}
	v := Vision{Distance: distance}
	if angleDeg > 180 {
		angleDeg = 360 - angleDeg
		v.Reflex = true
	}
	v.HalfAngle = angleDeg * math.Pi / 360
	v.Sin, v.Cos = math.Sincos(v.HalfAngle)
	return v, nil
}

// AngleDeg returns the configured full field-of-view angle in degrees.
func (v Vision) AngleDeg() float64 {
	a := v.HalfAngle * 360 / math.Pi
	if v.Reflex {
		return 360 - a
	}
	return a
}

// Sector returns the two boundary directions of the built cone for a unit
// facing the given direction: start is facing rotated counter-clockwise by
// the half-angle, end is facing rotated clockwise.
func (v Vision) Sector(facing geometry.Point) (start, end geometry.Point) {
	start = geometry.Rotate(facing, v.Cos, v.Sin)
	end = geometry.Rotate(facing, v.Cos, -v.Sin)
	return start, end
}

// Policy selects the containment test for a unit at origin facing the given
// direction. The choice between the direct and the complement cone is made
// here once.
func (v Vision) Policy(origin, facing geometry.Point) ContainmentPolicy {
	start, end := v.Sector(facing)
	if v.Reflex {
		return ComplementCone{Origin: origin, Start: start, End: end}
	}
	return DirectCone{Origin: origin, Start: start, End: end}
}
