package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"unitsight/internal/config"
	"unitsight/internal/output"
)

// writerOptions selects the report sinks.
type writerOptions struct {
	TextFile string
	LogFile  string
	Print    bool
	Format   string
	Greptime config.GreptimeSettings
}

// stdoutWriter picks the STDOUT rendition. "auto" colours terminals and
// prints JSON lines otherwise.
func stdoutWriter(format string) output.ReportWriter {
	switch format {
	case "text":
		return output.NewTextStdoutWriter(nil)
	case "json":
		return output.NewStdoutWriter(nil)
	case "color":
		return output.NewColorStdoutWriter(nil)
	default:
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return output.NewColorStdoutWriter(nil)
		}
		return output.NewStdoutWriter(nil)
	}
}

// buildWriters opens every configured sink. When nothing is selected the
// report goes to STDOUT as text. On error already opened sinks are closed.
func buildWriters(opts writerOptions, log *slog.Logger) ([]output.ReportWriter, error) {
	var ws []output.ReportWriter
	fail := func(err error) ([]output.ReportWriter, error) {
		_ = output.NewMultiWriter(ws...).Close()
		return nil, err
	}
	if opts.TextFile != "" {
		w, err := output.NewTextFileWriter(opts.TextFile)
		if err != nil {
			return fail(err)
		}
		ws = append(ws, w)
	}
	if opts.LogFile != "" {
		w, err := output.NewFileWriter(opts.LogFile)
		if err != nil {
			return fail(err)
		}
		ws = append(ws, w)
	}
	if opts.Greptime.Endpoint != "" {
		w, err := output.NewGreptimeDBWriter(opts.Greptime.Endpoint, opts.Greptime.Database, opts.Greptime.Table, log)
		if err != nil {
			return fail(err)
		}
		log.Info("writing to GreptimeDB", "endpoint", opts.Greptime.Endpoint, "table", opts.Greptime.Table)
		ws = append(ws, w)
	}
	if opts.Print || len(ws) == 0 {
		ws = append(ws, stdoutWriter(opts.Format))
	}
	return ws, nil
}

// newWriters combines the selected sinks. The returned cleanup closes files.
func newWriters(opts writerOptions, log *slog.Logger) (*output.MultiWriter, func() error, error) {
	ws, err := buildWriters(opts, log)
	if err != nil {
		return nil, nil, err
	}
	mw := output.NewMultiWriter(ws...)
	return mw, mw.Close, nil
}

func greptimeSettings() config.GreptimeSettings {
	if settings == nil {
		return config.GreptimeSettings{}
	}
	return settings.Greptime
}
