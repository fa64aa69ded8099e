package visibility

import (
	"context"
	"fmt"

	"unitsight/internal/perception"
	"unitsight/internal/spatial"
	"unitsight/internal/unit"
)

// Engine ties a unit set, its perception model and a built spatial index
// together for the reporting and visualisation surfaces.
type Engine struct {
	units     []unit.Unit
	vision    perception.Vision
	index     spatial.Index
	opts      Options
	evaluator *Evaluator
}

// NewEngine builds the spatial index selected by opts over the unit positions.
func NewEngine(units []unit.Unit, vision perception.Vision, opts Options) (*Engine, error) {
	opts = opts.withDefaults()
	idx, err := spatial.Build(opts.Index, unit.Positions(units))
	if err != nil {
		return nil, err
	}
	return &Engine{
		units:     units,
		vision:    vision,
		index:     idx,
		opts:      opts,
		evaluator: NewEvaluator(vision, units, idx, opts.InnerWorkers, opts.ChunkSize),
	}, nil
}

// Report builds the full visibility report.
func (e *Engine) Report(ctx context.Context) (Report, error) {
	return BuildReport(ctx, e.units, e.vision, e.index, e.opts)
}

// VisibleIDs returns the ids the unit with the given id can see.
func (e *Engine) VisibleIDs(id int) ([]int, error) {
	if id < 0 || id >= len(e.units) {
		return nil, fmt.Errorf("%w: no unit with id %d", ErrInvalidArgument, id)
	}
	return e.evaluator.VisibleIDs(e.units[id])
}

// Units returns the evaluated units. Callers must not modify the slice.
func (e *Engine) Units() []unit.Unit { return e.units }

// Vision returns the perception model.
func (e *Engine) Vision() perception.Vision { return e.vision }

// Index returns the spatial index.
func (e *Engine) Index() spatial.Index { return e.index }

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }
