package main

import (
	"github.com/spf13/cobra"

	"unitsight/internal/tui"
)

var viewScenario string

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore a scenario in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := loadEngine(cmd.Context(), viewScenario)
		if err != nil {
			return err
		}
		rep, err := eng.Report(cmd.Context())
		if err != nil {
			return err
		}
		return tui.Run(eng, rep)
	},
}

func init() {
	viewCmd.Flags().StringVar(&viewScenario, "scenario", "setting.json", "Path to the scenario file (JSON or YAML)")
}
