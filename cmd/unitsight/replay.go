package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"unitsight/internal/logging"
	"unitsight/internal/output"
)

var (
	replayInput     string
	replayPrintOnly bool
	replayFormat    string
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a visibility log file",
	Long:  "replay feeds rows from a JSONL visibility log back into GreptimeDB or STDOUT.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		log := logging.FromContext(cmd.Context())
		opts := writerOptions{Print: true, Format: replayFormat}
		if !replayPrintOnly {
			opts.Greptime = greptimeSettings()
			opts.Print = opts.Greptime.Endpoint == ""
		}
		w, cleanup, err := newWriters(opts, log)
		if err != nil {
			return err
		}
		n, err := output.ReplayLogFile(replayInput, w)
		if cerr := cleanup(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		log.Info("replay finished", "rows", n)
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to visibility log file")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print rows to STDOUT instead of writing to DB")
	replayCmd.Flags().StringVar(&replayFormat, "format", "json", "STDOUT format: auto, text, json or color")
	replayCmd.MarkFlagRequired("input")
}
