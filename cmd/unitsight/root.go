package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"unitsight/internal/config"
	"unitsight/internal/logging"
	"unitsight/internal/spatial"
	"unitsight/internal/visibility"
)

var (
	settingsFile string
	errorFile    string
	settings     *config.Settings
)

var rootCmd = &cobra.Command{
	Use:   "unitsight",
	Short: "Field-of-view visibility toolkit",
	Long:  "unitsight counts, for every unit on a plane, how many other units fall inside its field of view.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.LoadSettings(settingsFile, cmd.Flags())
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		level, err := logging.ParseLevel(s.Log.Level)
		if err != nil {
			return err
		}
		l, err := logging.NewWithOptions(os.Stderr, level, s.Log.Format)
		if err != nil {
			return err
		}
		settings = s
		slog.SetDefault(l)
		cmd.SetContext(logging.NewContext(cmd.Context(), l))
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errorFile != "" {
			if werr := writeErrorFile(errorFile, err); werr != nil {
				fmt.Fprintln(os.Stderr, werr)
			}
		}
		os.Exit(1)
	}
}

// writeErrorFile stores the failure message so batch runs can pick it up
// next to result.txt.
func writeErrorFile(path string, err error) error {
	if werr := os.WriteFile(path, []byte(err.Error()+"\n"), 0o644); werr != nil {
		return fmt.Errorf("write error file: %w", werr)
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsFile, "settings", "", "Path to a settings file (default ./unitsight.yaml if present)")
	pf.StringVar(&errorFile, "error-file", "", "Write the failure message to this file (e.g. error.txt)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.Int("workers", 0, "Units evaluated concurrently (0 = GOMAXPROCS)")
	pf.Int("inner-workers", 1, "Workers splitting one unit's candidate set")
	pf.Int("chunk-size", 256, "Candidates handled by one inner task")
	pf.String("index", string(spatial.KindKDTree), "Spatial index: kdtree, rtree or brute")
	pf.String("schema", "", "CUE schema overriding the built-in scenario schema")
	pf.String("greptime-endpoint", "", "GreptimeDB host[:port]; empty disables the sink")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// loadEngine reads the scenario and builds the engine with the run settings.
func loadEngine(ctx context.Context, path string) (*visibility.Engine, error) {
	s := settings
	if s == nil {
		s = &config.Settings{}
	}
	sc, err := config.Load(ctx, path, s.Schema)
	if err != nil {
		return nil, err
	}
	vision, err := sc.PerceptionModel()
	if err != nil {
		return nil, err
	}
	kind, err := spatial.ParseKind(s.Index)
	if err != nil {
		return nil, err
	}
	return visibility.NewEngine(sc.UnitSet(), vision, visibility.Options{
		Workers:      s.Workers,
		InnerWorkers: s.InnerWorkers,
		ChunkSize:    s.ChunkSize,
		Index:        kind,
	})
}
