package spatial

import (
	"cmp"
	"math"

	"unitsight/internal/geometry"
)

// KDTree is a balanced 2-d tree stored implicitly in a slice: the median of
// each sub-range is its root and the split axis alternates x, y, x, ...
type KDTree struct {
	points []geometry.Point
	// order holds point ids arranged so that order[lo:hi] is a subtree rooted
	// at order[(lo+hi)/2].
	order []int
}

// NewKDTree builds a k-d tree over points in expected O(N log N): each level
// places its median with a quickselect partition instead of a full sort. Ties
// on the split coordinate are broken by id so the layout depends only on the
// input.
func NewKDTree(points []geometry.Point) *KDTree {
	t := &KDTree{
		points: append([]geometry.Point(nil), points...),
		order:  make([]int, len(points)),
	}
	for i := range t.order {
		t.order[i] = i
	}
	t.build(0, len(t.order), 0)
	return t
}

func (t *KDTree) build(lo, hi, depth int) {
	if hi-lo <= 1 {
		return
	}
	mid := (lo + hi) / 2
	t.selectNth(t.order[lo:hi], mid-lo, depth%2)
	t.build(lo, mid, depth+1)
	t.build(mid+1, hi, depth+1)
}

// less orders ids by coordinate on axis, then by id. No two ids compare equal.
func (t *KDTree) less(a, b, axis int) bool {
	if c := cmp.Compare(coord(t.points[a], axis), coord(t.points[b], axis)); c != 0 {
		return c < 0
	}
	return a < b
}

// selectNth rearranges ids so that ids[k] holds the element a full sort would
// put there, with smaller elements before it and larger ones after.
func (t *KDTree) selectNth(ids []int, k, axis int) {
	lo, hi := 0, len(ids)-1
	for lo < hi {
		m := lo + (hi-lo)/2
		ids[m], ids[hi] = ids[hi], ids[m]
		pivot := ids[hi]
		store := lo
		for i := lo; i < hi; i++ {
			if t.less(ids[i], pivot, axis) {
				ids[i], ids[store] = ids[store], ids[i]
				store++
			}
		}
		ids[store], ids[hi] = ids[hi], ids[store]
		switch {
		case k == store:
			return
		case k < store:
			hi = store - 1
		default:
			lo = store + 1
		}
	}
}

func coord(p geometry.Point, axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// RadiusSearch implements Index.
func (t *KDTree) RadiusSearch(center geometry.Point, r float64) ([]int, error) {
	if err := checkRadius(r); err != nil {
		return nil, err
	}
	var ids []int
	t.search(0, len(t.order), 0, center, r, &ids)
	return ids, nil
}

func (t *KDTree) search(lo, hi, depth int, center geometry.Point, r float64, ids *[]int) {
	if lo >= hi {
		return
	}
	mid := (lo + hi) / 2
	id := t.order[mid]
	p := t.points[id]
	if geometry.WithinRadius(center, p, r) {
		*ids = append(*ids, id)
	}
	if hi-lo == 1 {
		return
	}

	// Points equal to the split value may sit on either side, so the far
	// side is only pruned when the splitting line is strictly out of reach.
	diff := coord(center, depth%2) - coord(p, depth%2)
	nearLo, nearHi, farLo, farHi := lo, mid, mid+1, hi
	if diff > 0 {
		nearLo, nearHi, farLo, farHi = mid+1, hi, lo, mid
	}
	t.search(nearLo, nearHi, depth+1, center, r, ids)
	if math.Abs(diff) <= r {
		t.search(farLo, farHi, depth+1, center, r, ids)
	}
}

// Len implements Index.
func (t *KDTree) Len() int { return len(t.points) }
