// Package unit defines the oriented point entities whose mutual visibility is
// evaluated.
package unit

import "unitsight/internal/geometry"

// Unit is one observer. ID is its dense index in the scenario and doubles as
// its id in the spatial index.
type Unit struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Position geometry.Point `json:"position"`
	Facing   geometry.Point `json:"facing"`
}

// Positions returns unit positions in slice order.
func Positions(units []Unit) []geometry.Point {
	pts := make([]geometry.Point, len(units))
	for i, u := range units {
		pts[i] = u.Position
	}
	return pts
}
