package perception

import "unitsight/internal/geometry"

// ContainmentPolicy decides whether a point is visible from a fixed origin.
type ContainmentPolicy interface {
	IsVisible(p geometry.Point) bool
}

// DirectCone sees the points inside the cone bounded by Start and End.
type DirectCone struct {
	Origin geometry.Point
	Start  geometry.Point
	End    geometry.Point
}

// IsVisible implements ContainmentPolicy.
func (c DirectCone) IsVisible(p geometry.Point) bool {
	return geometry.InsideSector(p, c.Origin, c.Start, c.End)
}

// ComplementCone is used for fields of view wider than 180 degrees. Start and
// End bound the blind cone; everything outside it is visible.
type ComplementCone struct {
	Origin geometry.Point
	Start  geometry.Point
	End    geometry.Point
}

// IsVisible implements ContainmentPolicy.
func (c ComplementCone) IsVisible(p geometry.Point) bool {
	// Swapped boundaries select the blind cone opposite the facing direction.
	return !geometry.InsideSector(p, c.Origin, c.End, c.Start)
}
