// Package scenario generates and stores unit scenarios, either random load
// tests or hand-made layouts.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"unitsight/internal/config"
	"unitsight/internal/geometry"
)

var ErrInvalidOptions = errors.New("invalid generator options")

// Options controls Generate. Positions are drawn uniformly from
// [-Extent, Extent] on both axes.
type Options struct {
	Units    int
	Seed     int64
	Extent   float64
	AngleDeg float64
	Distance float64
}

// DefaultOptions mirrors the classic load test: a 180 degree view with
// distance 2 over a 20x20 field.
func DefaultOptions() Options {
	return Options{Units: 1000, Seed: 1, Extent: 10, AngleDeg: 180, Distance: 2}
}

// Generate builds a random scenario. The same options always produce the
// same scenario.
func Generate(opts Options) (*config.Scenario, error) {
	if opts.Units < 1 {
		return nil, fmt.Errorf("%w: units must be >= 1, got %d", ErrInvalidOptions, opts.Units)
	}
	if !(opts.Extent > 0) || math.IsInf(opts.Extent, 1) {
		return nil, fmt.Errorf("%w: extent must be finite and > 0, got %g", ErrInvalidOptions, opts.Extent)
	}

	r := rand.New(rand.NewSource(opts.Seed))
	coord := func() float64 { return r.Float64()*2*opts.Extent - opts.Extent }

	sc := &config.Scenario{
		Vision: config.VisionConfig{ViewAngle: opts.AngleDeg, Distance: opts.Distance},
		Units:  make([]config.UnitConfig, 0, opts.Units),
	}
	taken := make(map[geometry.Point]struct{}, opts.Units)
	for i := 0; i < opts.Units; i++ {
		var pos geometry.Point
		for {
			pos = geometry.Point{X: coord(), Y: coord()}
			if _, dup := taken[pos]; !dup {
				break
			}
		}
		taken[pos] = struct{}{}

		var dir geometry.Point
		for dir.IsZero() {
			dir = geometry.Point{X: r.Float64()*2 - 1, Y: r.Float64()*2 - 1}
		}
		sc.Units = append(sc.Units, config.UnitConfig{
			Name:          strconv.Itoa(i),
			Position:      pos,
			ViewDirection: dir,
		})
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Save writes the scenario as JSON when path ends in .json, YAML otherwise.
func Save(path string, sc *config.Scenario) error {
	var (
		b   []byte
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		b, err = json.MarshalIndent(sc, "", "  ")
		b = append(b, '\n')
	} else {
		b, err = yaml.Marshal(sc)
	}
	if err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write scenario: %w", err)
	}
	return nil
}
