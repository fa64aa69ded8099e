package scenario

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"unitsight/internal/config"
	"unitsight/internal/visibility"
)

func TestGenerateDeterministic(t *testing.T) {
	opts := Options{Units: 200, Seed: 42, Extent: 10, AngleDeg: 180, Distance: 2}
	a, err := Generate(opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := Generate(opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different scenarios")
	}
	for _, u := range a.Units {
		if u.Position.X < -10 || u.Position.X > 10 || u.Position.Y < -10 || u.Position.Y > 10 {
			t.Fatalf("unit %s outside extent: %+v", u.Name, u.Position)
		}
	}
	opts.Seed = 43
	c, err := Generate(opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical scenarios")
	}
}

func TestGenerateRejects(t *testing.T) {
	cases := map[string]Options{
		"no units":     {Units: 0, Extent: 1, AngleDeg: 90, Distance: 1},
		"zero extent":  {Units: 3, Extent: 0, AngleDeg: 90, Distance: 1},
		"bad angle":    {Units: 3, Extent: 1, AngleDeg: 361, Distance: 1},
		"bad distance": {Units: 3, Extent: 1, AngleDeg: 90, Distance: -2},
		"inf distance": {Units: 3, Extent: 1, AngleDeg: 90, Distance: math.Inf(1)},
		"inf extent":   {Units: 3, Extent: math.Inf(1), AngleDeg: 90, Distance: 1},
		"NaN extent":   {Units: 3, Extent: math.NaN(), AngleDeg: 90, Distance: 1},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Generate(opts); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := Generate(Options{Units: 0, Extent: 1}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
	if _, err := Generate(Options{Units: 3, Extent: math.Inf(1), AngleDeg: 90, Distance: 1}); !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions for infinite extent, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	sc, err := Generate(Options{Units: 25, Seed: 7, Extent: 5, AngleDeg: 270, Distance: 1.5})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, name := range []string{"gen.yaml", "gen.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, sc); err != nil {
				t.Fatalf("save: %v", err)
			}
			loaded, err := config.Load(context.Background(), path, "")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !reflect.DeepEqual(sc, loaded) {
				t.Fatalf("round trip mismatch:\n%+v\n%+v", sc, loaded)
			}
		})
	}
}

func TestBuiltInCounts(t *testing.T) {
	want := map[string][]uint{
		"duel":   {1, 1},
		"patrol": {2, 3, 3, 2},
		"ring":   {5, 5, 5, 5, 5, 5, 5, 5},
	}
	presets := BuiltIn()
	for name, counts := range want {
		t.Run(name, func(t *testing.T) {
			sc, ok := presets[name]
			if !ok {
				t.Fatalf("preset %s not found", name)
			}
			if err := sc.Validate(); err != nil {
				t.Fatalf("preset invalid: %v", err)
			}
			v, err := sc.PerceptionModel()
			if err != nil {
				t.Fatal(err)
			}
			eng, err := visibility.NewEngine(sc.UnitSet(), v, visibility.Options{})
			if err != nil {
				t.Fatal(err)
			}
			rep, err := eng.Report(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			for i, e := range rep.Entries {
				if e.Visible != counts[i] {
					t.Errorf("%s sees %d, want %d", e.Name, e.Visible, counts[i])
				}
			}
		})
	}
}
