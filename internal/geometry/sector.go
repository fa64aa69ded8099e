package geometry

// Rotate returns v rotated by the angle whose cosine and sine are given.
// The result keeps the length of v; only its direction is used by sector tests.
func Rotate(v Point, cos, sin float64) Point {
	return Point{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Clockwise reports whether b lies strictly in the clockwise half-plane of a,
// i.e. a.Y*b.X - a.X*b.Y > 0. Collinear vectors are not clockwise.
func Clockwise(a, b Point) bool {
	return a.Y*b.X-a.X*b.Y > 0
}

// InsideSector reports whether point lies in the sector swept clockwise from
// start to end around origin. The swept angle must not exceed 180 degrees.
// A point on the start ray is outside, a point on the end ray is inside.
func InsideSector(point, origin, start, end Point) bool {
	rel := point.Sub(origin)
	return Clockwise(start, rel) && !Clockwise(end, rel)
}
