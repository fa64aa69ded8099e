package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"unitsight/internal/logging"
	"unitsight/internal/output"
)

var (
	reportScenario string
	reportOut      string
	reportLogFile  string
	reportPrint    bool
	reportFormat   string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the visibility report for a scenario",
	Long:  "report loads a scenario, counts the units each unit can see and writes the result to result.txt and any other configured sink.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logging.FromContext(ctx)

		eng, err := loadEngine(ctx, reportScenario)
		if err != nil {
			return err
		}
		start := time.Now()
		rep, err := eng.Report(ctx)
		if err != nil {
			return err
		}
		runID := uuid.NewString()
		log.Info("report computed", "run_id", runID, "units", len(rep.Entries), "index", eng.Options().Index, "points", eng.Index().Len(), "took", time.Since(start))

		w, cleanup, err := newWriters(writerOptions{
			TextFile: reportOut,
			LogFile:  reportLogFile,
			Print:    reportPrint,
			Format:   reportFormat,
			Greptime: greptimeSettings(),
		}, log)
		if err != nil {
			return err
		}
		rows := output.NewRows(runID, rep, eng.Units(), eng.Vision(), time.Now().UTC())
		if err := output.WriteAll(w, rows); err != nil {
			_ = cleanup()
			return err
		}
		return cleanup()
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportScenario, "scenario", "setting.json", "Path to the scenario file (JSON or YAML)")
	reportCmd.Flags().StringVar(&reportOut, "out", "result.txt", "Text report path; empty to skip")
	reportCmd.Flags().StringVar(&reportLogFile, "log-file", "", "Path to export visibility rows (JSONL)")
	reportCmd.Flags().BoolVar(&reportPrint, "print", false, "Also print the report to STDOUT")
	reportCmd.Flags().StringVar(&reportFormat, "format", "auto", "STDOUT format: auto, text, json or color")
}
