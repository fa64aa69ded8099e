package geometry

import (
	"math"
	"testing"
)

func TestRotateQuarterTurn(t *testing.T) {
	got := Rotate(Point{X: 1, Y: 0}, 0, 1)
	if got != (Point{X: 0, Y: 1}) {
		t.Fatalf("Rotate((1,0), 90deg) = %+v, want (0,1)", got)
	}
	got = Rotate(Point{X: 1, Y: 0}, 0, -1)
	if got != (Point{X: 0, Y: -1}) {
		t.Fatalf("Rotate((1,0), -90deg) = %+v, want (0,-1)", got)
	}
}

func TestRotateKeepsLength(t *testing.T) {
	v := Point{X: 3, Y: 4}
	a := 0.7
	got := Rotate(v, math.Cos(a), math.Sin(a))
	if math.Abs(got.Len()-5) > 1e-12 {
		t.Fatalf("rotated length = %v, want 5", got.Len())
	}
}

func TestClockwise(t *testing.T) {
	cases := []struct {
		name string
		a, b Point
		want bool
	}{
		{"below x axis", Point{1, 0}, Point{1, -1}, true},
		{"above x axis", Point{1, 0}, Point{1, 1}, false},
		{"collinear", Point{1, 0}, Point{2, 0}, false},
		{"opposite", Point{1, 0}, Point{-1, 0}, false},
		{"right of up", Point{0, 1}, Point{1, 0}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clockwise(tc.a, tc.b); got != tc.want {
				t.Fatalf("Clockwise(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestInsideSector(t *testing.T) {
	// Quarter sector facing +x: start at +45deg, end at -45deg.
	start := Point{1, 1}
	end := Point{1, -1}
	origin := Point{10, 10}
	cases := []struct {
		name  string
		point Point
		want  bool
	}{
		{"ahead", Point{15, 10}, true},
		{"slightly up", Point{15, 12}, true},
		{"behind", Point{5, 10}, false},
		{"above", Point{10, 15}, false},
		{"on start ray", Point{12, 12}, false},
		{"on end ray", Point{12, 8}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InsideSector(tc.point, origin, start, end); got != tc.want {
				t.Fatalf("InsideSector(%v) = %v, want %v", tc.point, got, tc.want)
			}
		})
	}
}

func TestWithinRadiusInclusive(t *testing.T) {
	o := Point{0, 0}
	if !WithinRadius(o, Point{3, 4}, 5) {
		t.Fatal("point at exactly r must be within radius")
	}
	if WithinRadius(o, Point{5 + 1e-9, 0}, 5) {
		t.Fatal("point beyond r must not be within radius")
	}
	if !WithinRadius(o, o, 0) {
		t.Fatal("zero radius must include the centre")
	}
	if WithinRadius(o, Point{1e-200, 0}, 1e-201) {
		t.Fatal("tiny distances must not collapse to zero")
	}
	if WithinRadius(o, Point{1e200, 0}, 1e160) {
		t.Fatal("huge distances must not overflow to +Inf")
	}
	if !WithinRadius(o, Point{1e200, 1e200}, 1.5e200) {
		t.Fatal("huge in-range point must be within radius")
	}
}

func TestIsFinite(t *testing.T) {
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{1, -2}, true},
		{Point{math.NaN(), 0}, false},
		{Point{0, math.Inf(1)}, false},
		{Point{math.Inf(-1), 0}, false},
	}
	for _, tc := range cases {
		if got := tc.p.IsFinite(); got != tc.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestUnit(t *testing.T) {
	u := Point{X: 0, Y: -7}.Unit()
	if u != (Point{X: 0, Y: -1}) {
		t.Fatalf("Unit = %+v", u)
	}
	if (Point{}).Unit() != (Point{}) {
		t.Fatal("zero vector must stay zero")
	}
}
