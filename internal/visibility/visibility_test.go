package visibility

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitsight/internal/geometry"
	"unitsight/internal/perception"
	"unitsight/internal/spatial"
	"unitsight/internal/unit"
)

func mustVision(t *testing.T, angle, distance float64) perception.Vision {
	t.Helper()
	v, err := perception.NewVision(angle, distance)
	require.NoError(t, err)
	return v
}

func pair(facingA, facingB geometry.Point) []unit.Unit {
	return []unit.Unit{
		{ID: 0, Name: "alpha", Position: geometry.Point{X: 0, Y: 0}, Facing: facingA},
		{ID: 1, Name: "bravo", Position: geometry.Point{X: 3, Y: 0}, Facing: facingB},
	}
}

func report(t *testing.T, units []unit.Unit, v perception.Vision, opts Options) Report {
	t.Helper()
	eng, err := NewEngine(units, v, opts)
	require.NoError(t, err)
	rep, err := eng.Report(context.Background())
	require.NoError(t, err)
	return rep
}

func counts(r Report) []uint {
	out := make([]uint, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Visible
	}
	return out
}

func randomUnits(seed int64, n int, extent float64) []unit.Unit {
	r := rand.New(rand.NewSource(seed))
	seen := map[geometry.Point]bool{}
	units := make([]unit.Unit, 0, n)
	for len(units) < n {
		p := geometry.Point{X: r.Float64()*2*extent - extent, Y: r.Float64()*2*extent - extent}
		if seen[p] {
			continue
		}
		f := geometry.Point{X: r.Float64()*2 - 1, Y: r.Float64()*2 - 1}
		if f.IsZero() {
			continue
		}
		seen[p] = true
		units = append(units, unit.Unit{ID: len(units), Name: fmt.Sprintf("u%d", len(units)), Position: p, Facing: f})
	}
	return units
}

// reference counts visibility with a plain double loop.
func reference(units []unit.Unit, v perception.Vision) []uint {
	out := make([]uint, len(units))
	for i, u := range units {
		policy := v.Policy(u.Position, u.Facing)
		for j, o := range units {
			if i != j && geometry.WithinRadius(u.Position, o.Position, v.Distance) && policy.IsVisible(o.Position) {
				out[i]++
			}
		}
	}
	return out
}

func TestFacingEachOther(t *testing.T) {
	units := pair(geometry.Point{X: 1}, geometry.Point{X: -1})
	rep := report(t, units, mustVision(t, 180, 5), Options{})
	assert.Equal(t, []uint{1, 1}, counts(rep))
	assert.Equal(t, "alpha: sees 1\nbravo: sees 1\n", rep.Text())
}

func TestZeroAngleSeesNothing(t *testing.T) {
	units := pair(geometry.Point{Y: 1}, geometry.Point{Y: -1})
	rep := report(t, units, mustVision(t, 0, 5), Options{})
	assert.Equal(t, []uint{0, 0}, counts(rep))
}

func TestFacingAway(t *testing.T) {
	units := pair(geometry.Point{X: -1}, geometry.Point{X: 1})
	rep := report(t, units, mustVision(t, 120, 5), Options{})
	assert.Equal(t, []uint{0, 0}, counts(rep))

	// A 300 degree view only misses the 60 degree cone straight behind.
	units = pair(geometry.Point{X: -1}, geometry.Point{X: 1, Y: 0.1})
	rep = report(t, units, mustVision(t, 300, 5), Options{})
	assert.Equal(t, []uint{0, 0}, counts(rep))

	units = pair(geometry.Point{X: -1, Y: 1}, geometry.Point{X: 1, Y: -1})
	rep = report(t, units, mustVision(t, 300, 5), Options{})
	assert.Equal(t, []uint{1, 1}, counts(rep))
}

func TestUnitNeverCountsItself(t *testing.T) {
	units := randomUnits(1, 50, 5)
	rep := report(t, units, mustVision(t, 360, 100), Options{})
	for _, e := range rep.Entries {
		assert.Equal(t, uint(len(units)-1), e.Visible, e.Name)
	}
	single := report(t, units[:1], mustVision(t, 360, 100), Options{})
	assert.Equal(t, []uint{0}, counts(single))
}

func TestBoundaryDistance(t *testing.T) {
	units := []unit.Unit{
		{ID: 0, Name: "observer", Position: geometry.Point{}, Facing: geometry.Point{X: 1}},
		{ID: 1, Name: "edge", Position: geometry.Point{X: 3, Y: 4}, Facing: geometry.Point{X: 1}},
		{ID: 2, Name: "beyond", Position: geometry.Point{X: 5 + 1e-9, Y: 0}, Facing: geometry.Point{X: 1}},
	}
	rep := report(t, units, mustVision(t, 180, 5), Options{})
	assert.Equal(t, uint(1), rep.Entries[0].Visible)

	ids, err := mustEngine(t, units, mustVision(t, 180, 5)).VisibleIDs(0)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)
}

func mustEngine(t *testing.T, units []unit.Unit, v perception.Vision) *Engine {
	t.Helper()
	eng, err := NewEngine(units, v, Options{})
	require.NoError(t, err)
	return eng
}

func TestMatchesReference(t *testing.T) {
	units := randomUnits(11, 400, 10)
	for _, angle := range []float64{0, 45, 90, 179.5, 180, 181, 270, 359, 360} {
		v := mustVision(t, angle, 2.5)
		want := reference(units, v)
		for _, kind := range spatial.Kinds() {
			rep := report(t, units, v, Options{Index: kind, Workers: 4})
			assert.Equal(t, want, counts(rep), "angle %v index %s", angle, kind)
		}
	}
}

func TestReportStableAcrossConcurrency(t *testing.T) {
	units := randomUnits(5, 600, 4)
	v := mustVision(t, 210, 3)
	base := report(t, units, v, Options{Workers: 1, InnerWorkers: 1})
	variants := []Options{
		{Workers: 8, InnerWorkers: 1},
		{Workers: 8, InnerWorkers: 4, ChunkSize: 8},
		{Workers: 2, InnerWorkers: 16, ChunkSize: 1},
		{Workers: 64, InnerWorkers: 3, ChunkSize: 5, Index: spatial.KindRTree},
	}
	for _, opts := range variants {
		rep := report(t, units, v, opts)
		assert.Equal(t, base, rep, "options %+v", opts)
	}
	for i, e := range base.Entries {
		assert.Equal(t, i, e.ID)
		assert.Equal(t, units[i].Name, e.Name)
	}
}

func TestNestedReductionCount(t *testing.T) {
	units := randomUnits(9, 300, 1)
	v := mustVision(t, 150, 10)
	idx, err := spatial.Build(spatial.KindKDTree, unit.Positions(units))
	require.NoError(t, err)
	seq := NewEvaluator(v, units, idx, 1, 0)
	par := NewEvaluator(v, units, idx, 6, 7)
	for _, u := range units[:40] {
		a, err := seq.VisibleCount(context.Background(), u)
		require.NoError(t, err)
		b, err := par.VisibleCount(context.Background(), u)
		require.NoError(t, err)
		ids, err := par.VisibleIDs(u)
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Len(t, ids, int(a))
	}
}

func TestReportErrors(t *testing.T) {
	units := pair(geometry.Point{X: 1}, geometry.Point{X: -1})
	idx, err := spatial.Build(spatial.KindKDTree, unit.Positions(units))
	require.NoError(t, err)

	broken := []unit.Unit{units[1], units[0]}
	_, err = BuildReport(context.Background(), broken, mustVision(t, 90, 1), idx, Options{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	rep, err := BuildReport(context.Background(), units, perception.Vision{Distance: -1}, idx, Options{})
	assert.ErrorIs(t, err, spatial.ErrNegativeRadius)
	assert.Empty(t, rep.Entries)

	_, err = BuildReport(context.Background(), units[:1], mustVision(t, 90, 1), idx, Options{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	eng := mustEngine(t, units, mustVision(t, 90, 1))
	_, err = eng.VisibleIDs(7)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEngineIndexKind(t *testing.T) {
	units := randomUnits(4, 30, 3)
	v := mustVision(t, 90, 1)
	eng, err := NewEngine(units, v, Options{Index: spatial.KindRTree})
	require.NoError(t, err)
	assert.IsType(t, &spatial.RTree{}, eng.Index())
	assert.Equal(t, len(units), eng.Index().Len())

	eng = mustEngine(t, units, v)
	assert.IsType(t, &spatial.KDTree{}, eng.Index())
	assert.Equal(t, spatial.KindKDTree, eng.Options().Index)
}

func TestEmptyScenario(t *testing.T) {
	rep := report(t, nil, mustVision(t, 90, 1), Options{})
	assert.Empty(t, rep.Entries)
	assert.Equal(t, "", rep.Text())
}
