package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"unitsight/internal/config"
	"unitsight/internal/logging"
	"unitsight/internal/scenario"
)

var (
	genOpts   = scenario.DefaultOptions()
	genOut    string
	genPreset string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a random or built-in scenario file",
	Long:  "generate writes a scenario for load testing: random units over a square field, or one of the built-in layouts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		var sc *config.Scenario
		if genPreset != "" {
			presets := scenario.BuiltIn()
			p, ok := presets[genPreset]
			if !ok {
				names := make([]string, 0, len(presets))
				for n := range presets {
					names = append(names, n)
				}
				sort.Strings(names)
				return fmt.Errorf("unknown preset %q (available: %s)", genPreset, strings.Join(names, ", "))
			}
			sc = &p
		} else {
			var err error
			if sc, err = scenario.Generate(genOpts); err != nil {
				return err
			}
		}
		if err := scenario.Save(genOut, sc); err != nil {
			return err
		}
		logging.FromContext(cmd.Context()).Info("scenario written", "path", genOut, "units", len(sc.Units))
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&genOpts.Units, "units", genOpts.Units, "Number of units")
	f.Int64Var(&genOpts.Seed, "seed", genOpts.Seed, "Random seed")
	f.Float64Var(&genOpts.Extent, "extent", genOpts.Extent, "Half width of the square field")
	f.Float64Var(&genOpts.AngleDeg, "angle", genOpts.AngleDeg, "Field-of-view angle in degrees")
	f.Float64Var(&genOpts.Distance, "distance", genOpts.Distance, "View distance")
	f.StringVar(&genOut, "out", "setting.json", "Output path; .json writes JSON, anything else YAML")
	f.StringVar(&genPreset, "preset", "", "Write a built-in layout instead: duel, patrol or ring")
}
