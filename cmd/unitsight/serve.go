package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"unitsight/internal/admin"
	"unitsight/internal/logging"
)

var (
	serveScenario string
	serveAddr     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report and renderings over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		eng, err := loadEngine(ctx, serveScenario)
		if err != nil {
			return err
		}
		return admin.NewServer(eng, logging.FromContext(ctx)).Start(ctx, serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveScenario, "scenario", "setting.json", "Path to the scenario file (JSON or YAML)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
}
