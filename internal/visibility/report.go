package visibility

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"unitsight/internal/logging"
	"unitsight/internal/perception"
	"unitsight/internal/spatial"
	"unitsight/internal/unit"
)

// ErrInvalidArgument is returned when the unit set breaks the dense-id contract.
var ErrInvalidArgument = errors.New("invalid argument")

// Options tunes the two levels of parallelism. Zero values pick defaults.
type Options struct {
	// Workers evaluating units concurrently. Defaults to GOMAXPROCS.
	Workers int
	// InnerWorkers splitting one unit's candidate set. 1 disables it.
	InnerWorkers int
	// ChunkSize is the candidate count handled by one inner task.
	ChunkSize int
	// Index selects the spatial index built by NewEngine.
	Index spatial.Kind
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.InnerWorkers <= 0 {
		o.InnerWorkers = 1
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = defaultChunkSize
	}
	if o.Index == "" {
		o.Index = spatial.KindKDTree
	}
	return o
}

// Entry is one line of the report.
type Entry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Visible uint   `json:"visible"`
}

// Report lists one entry per unit in ascending id order.
type Report struct {
	Entries []Entry `json:"entries"`
}

// Text renders the textual report, one "<name>: sees <n>" line per unit.
func (r Report) Text() string {
	var b strings.Builder
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%s: sees %d\n", e.Name, e.Visible)
	}
	return b.String()
}

// BuildReport evaluates every unit on a worker pool. Each worker writes only
// the slot of the unit it evaluated, so the report order is the id order no
// matter which evaluation finishes first. Any failure fails the whole report.
func BuildReport(ctx context.Context, units []unit.Unit, vision perception.Vision, index spatial.Index, opts Options) (Report, error) {
	opts = opts.withDefaults()
	for i, u := range units {
		if u.ID != i {
			return Report{}, fmt.Errorf("%w: unit %q has id %d at position %d", ErrInvalidArgument, u.Name, u.ID, i)
		}
	}
	if index.Len() != len(units) {
		return Report{}, fmt.Errorf("%w: index holds %d points for %d units", ErrInvalidArgument, index.Len(), len(units))
	}

	log := logging.FromContext(ctx)
	start := time.Now()
	ev := NewEvaluator(vision, units, index, opts.InnerWorkers, opts.ChunkSize)
	counts := make([]uint, len(units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range units {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			n, err := ev.VisibleCount(gctx, units[i])
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, fmt.Errorf("build report: %w", err)
	}

	rep := Report{Entries: make([]Entry, len(units))}
	for i, u := range units {
		rep.Entries[i] = Entry{ID: u.ID, Name: u.Name, Visible: counts[i]}
	}
	log.Debug("visibility report built",
		"units", len(units),
		"workers", opts.Workers,
		"inner_workers", opts.InnerWorkers,
		"took", time.Since(start))
	return rep, nil
}
