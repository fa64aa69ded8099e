// Scenario loader with CUE validation integration
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"unitsight/internal/geometry"
	"unitsight/internal/logging"
	"unitsight/internal/perception"
	"unitsight/internal/unit"
)

var (
	ErrInvalidAngle      = errors.New("view angle must be within [0, 360]")
	ErrInvalidDistance   = errors.New("view distance must be finite and >= 0")
	ErrDuplicatePosition = errors.New("two units share a position")
	ErrZeroDirection     = errors.New("view direction is the zero vector")
	ErrNoUnits           = errors.New("scenario defines no units")
	ErrEmptyName         = errors.New("unit name is empty")
	ErrNonFinite         = errors.New("position or view direction is not finite")
)

// VisionConfig is the perception model shared by every unit.
type VisionConfig struct {
	ViewAngle float64 `yaml:"viewAngle" json:"viewAngle"`
	Distance  float64 `yaml:"distance" json:"distance"`
}

// UnitConfig describes one unit as it appears in the scenario file.
type UnitConfig struct {
	Name          string         `yaml:"name" json:"name"`
	Position      geometry.Point `yaml:"position" json:"position"`
	ViewDirection geometry.Point `yaml:"viewDirection" json:"viewDirection"`
}

// Scenario is the root of a scenario file. JSON files parse as YAML, so the
// same loader reads both.
type Scenario struct {
	Vision VisionConfig `yaml:"Vision" json:"Vision"`
	Units  []UnitConfig `yaml:"Units" json:"Units"`
}

// Load validates the scenario file against a CUE schema, decodes it and runs
// the semantic checks. An empty schemaPath selects the built-in schema.
func Load(ctx context.Context, path, schemaPath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	schema := defaultSchema
	if schemaPath != "" {
		if schema, err = os.ReadFile(schemaPath); err != nil {
			return nil, fmt.Errorf("read CUE schema: %w", err)
		}
	}
	if err := ValidateWithCue(path, data, schema); err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	logging.FromContext(ctx).Info("loaded scenario",
		"path", path,
		"units", len(sc.Units),
		"view_angle", sc.Vision.ViewAngle,
		"distance", sc.Vision.Distance)
	return &sc, nil
}

// UnitSet converts the configured units to engine units with dense ids.
func (s *Scenario) UnitSet() []unit.Unit {
	out := make([]unit.Unit, len(s.Units))
	for i, u := range s.Units {
		out[i] = unit.Unit{ID: i, Name: u.Name, Position: u.Position, Facing: u.ViewDirection}
	}
	return out
}

// PerceptionModel builds the vision shared by all units.
func (s *Scenario) PerceptionModel() (perception.Vision, error) {
	return perception.NewVision(s.Vision.ViewAngle, s.Vision.Distance)
}
