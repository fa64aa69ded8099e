package main

import (
	"github.com/spf13/cobra"

	"unitsight/internal/logging"
	"unitsight/internal/render"
)

var (
	renderScenario string
	renderOut      string
	renderOpts     = render.DefaultOptions()
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw a scenario as SVG",
	Long:  "render draws every unit with its view radius and visible sector. --focus highlights the units one unit can see.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		eng, err := loadEngine(ctx, renderScenario)
		if err != nil {
			return err
		}
		rep, err := eng.Report(ctx)
		if err != nil {
			return err
		}
		opts := renderOpts
		if opts.Focus >= 0 {
			if opts.Visible, err = eng.VisibleIDs(opts.Focus); err != nil {
				return err
			}
		}
		if err := render.WriteFile(renderOut, eng.Units(), eng.Vision(), rep, opts); err != nil {
			return err
		}
		logging.FromContext(ctx).Info("scene rendered", "path", renderOut)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderScenario, "scenario", "setting.json", "Path to the scenario file (JSON or YAML)")
	renderCmd.Flags().StringVar(&renderOut, "out", "scene.svg", "Output SVG path")
	renderCmd.Flags().IntVar(&renderOpts.Size, "size", renderOpts.Size, "Canvas size in pixels")
	renderCmd.Flags().IntVar(&renderOpts.Focus, "focus", renderOpts.Focus, "Unit id to highlight; -1 for none")
}
