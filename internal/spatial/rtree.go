package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"unitsight/internal/geometry"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	// rtreePad widens boxes relative to coordinate magnitude so rounding in
	// the box arithmetic can only add candidates, never drop them.
	rtreePad = 1e-9
)

type rtreeItem struct {
	id   int
	rect rtreego.Rect
}

func (it *rtreeItem) Bounds() rtreego.Rect { return it.rect }

// RTree wraps a bulk-loaded rtreego tree. Bounding-box hits are refined with
// the exact distance predicate.
type RTree struct {
	points []geometry.Point
	tree   *rtreego.Rtree
}

// NewRTree bulk-loads an R-tree over points.
func NewRTree(points []geometry.Point) *RTree {
	t := &RTree{points: append([]geometry.Point(nil), points...)}
	items := make([]rtreego.Spatial, len(t.points))
	for i, p := range t.points {
		items[i] = &rtreeItem{id: i, rect: rtreego.Point{p.X, p.Y}.ToRect(pad(p, 0))}
	}
	t.tree = rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, items...)
	return t
}

func pad(p geometry.Point, r float64) float64 {
	return rtreePad*(1+math.Abs(p.X)+math.Abs(p.Y)+r) + math.SmallestNonzeroFloat64
}

// RadiusSearch implements Index.
func (t *RTree) RadiusSearch(center geometry.Point, r float64) ([]int, error) {
	if err := checkRadius(r); err != nil {
		return nil, err
	}
	if len(t.points) == 0 {
		return nil, nil
	}
	if math.IsInf(r, 1) {
		ids := make([]int, len(t.points))
		for i := range ids {
			ids[i] = i
		}
		return ids, nil
	}
	half := r + pad(center, r)
	bb, err := rtreego.NewRect(rtreego.Point{center.X - half, center.Y - half}, []float64{2 * half, 2 * half})
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, s := range t.tree.SearchIntersect(bb) {
		it := s.(*rtreeItem)
		if geometry.WithinRadius(center, t.points[it.id], r) {
			ids = append(ids, it.id)
		}
	}
	return ids, nil
}

// Len implements Index.
func (t *RTree) Len() int { return len(t.points) }
