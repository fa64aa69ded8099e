// Package visibility counts, for every unit, the other units inside its
// field of view.
package visibility

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"unitsight/internal/perception"
	"unitsight/internal/spatial"
	"unitsight/internal/unit"
)

const defaultChunkSize = 256

// Evaluator classifies the radius-query candidates of a single unit. It holds
// only read-only state and may be shared by any number of goroutines.
type Evaluator struct {
	vision       perception.Vision
	units        []unit.Unit
	index        spatial.Index
	innerWorkers int
	chunkSize    int
}

// NewEvaluator returns an evaluator over units and an index built from their
// positions. innerWorkers > 1 enables the parallel candidate reduction for
// candidate sets larger than chunkSize.
func NewEvaluator(vision perception.Vision, units []unit.Unit, index spatial.Index, innerWorkers, chunkSize int) *Evaluator {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if innerWorkers < 1 {
		innerWorkers = 1
	}
	return &Evaluator{
		vision:       vision,
		units:        units,
		index:        index,
		innerWorkers: innerWorkers,
		chunkSize:    chunkSize,
	}
}

func (e *Evaluator) candidates(u unit.Unit) ([]int, error) {
	ids, err := e.index.RadiusSearch(u.Position, e.vision.Distance)
	if err != nil {
		return nil, fmt.Errorf("radius search for unit %d: %w", u.ID, err)
	}
	return ids, nil
}

func (e *Evaluator) countVisible(policy perception.ContainmentPolicy, self int, ids []int) uint {
	var n uint
	for _, c := range ids {
		if c != self && policy.IsVisible(e.units[c].Position) {
			n++
		}
	}
	return n
}

// VisibleCount returns how many other units u can see.
func (e *Evaluator) VisibleCount(ctx context.Context, u unit.Unit) (uint, error) {
	ids, err := e.candidates(u)
	if err != nil {
		return 0, err
	}
	policy := e.vision.Policy(u.Position, u.Facing)
	if e.innerWorkers <= 1 || len(ids) <= e.chunkSize {
		return e.countVisible(policy, u.ID, ids), nil
	}

	chunks := (len(ids) + e.chunkSize - 1) / e.chunkSize
	partial := make([]uint, chunks)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.innerWorkers)
	for i := 0; i < chunks; i++ {
		lo := i * e.chunkSize
		hi := min(lo+e.chunkSize, len(ids))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partial[i] = e.countVisible(policy, u.ID, ids[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var total uint
	for _, n := range partial {
		total += n
	}
	return total, nil
}

// VisibleIDs returns the ids of the units u can see in ascending order.
func (e *Evaluator) VisibleIDs(u unit.Unit) ([]int, error) {
	ids, err := e.candidates(u)
	if err != nil {
		return nil, err
	}
	policy := e.vision.Policy(u.Position, u.Facing)
	visible := make([]int, 0, len(ids))
	for _, c := range ids {
		if c != u.ID && policy.IsVisible(e.units[c].Position) {
			visible = append(visible, c)
		}
	}
	slices.Sort(visible)
	return visible, nil
}
