// CUE schema validation code
package config

import (
	_ "embed"
	"fmt"
	"math"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"

	"unitsight/internal/geometry"
)

//go:embed schema/scenario.cue
var defaultSchema []byte

// DefaultSchema returns the built-in CUE schema for scenario files.
func DefaultSchema() []byte { return append([]byte(nil), defaultSchema...) }

// ValidateWithCue unifies the YAML or JSON document with the CUE schema and
// requires the result to be concrete.
func ValidateWithCue(filename string, data, schema []byte) error {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileBytes(schema, cue.Filename("scenario.cue"))
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("cannot parse scenario: %w", err)
	}
	configVal := ctx.BuildFile(file)
	if err := configVal.Err(); err != nil {
		return fmt.Errorf("cannot build scenario value: %w", err)
	}

	final := schemaVal.Unify(configVal)
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate runs the checks the schema cannot express.
func (s *Scenario) Validate() error {
	a := s.Vision.ViewAngle
	if !(a >= 0 && a <= 360) {
		return fmt.Errorf("%w: got %g", ErrInvalidAngle, a)
	}
	if d := s.Vision.Distance; !(d >= 0) || math.IsInf(d, 1) {
		return fmt.Errorf("%w: got %g", ErrInvalidDistance, d)
	}
	if len(s.Units) == 0 {
		return ErrNoUnits
	}
	seen := make(map[geometry.Point]int, len(s.Units))
	for i, u := range s.Units {
		if u.Name == "" {
			return fmt.Errorf("%w: unit %d", ErrEmptyName, i)
		}
		if !u.Position.IsFinite() || !u.ViewDirection.IsFinite() {
			return fmt.Errorf("%w: unit %q", ErrNonFinite, u.Name)
		}
		if u.ViewDirection.IsZero() {
			return fmt.Errorf("%w: unit %q", ErrZeroDirection, u.Name)
		}
		if j, ok := seen[u.Position]; ok {
			return fmt.Errorf("%w: %q and %q at (%g, %g)", ErrDuplicatePosition,
				s.Units[j].Name, u.Name, u.Position.X, u.Position.Y)
		}
		seen[u.Position] = i
	}
	return nil
}
