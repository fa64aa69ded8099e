// ColorStdoutWriter prints human-friendly, colorized reports to STDOUT.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorCyan   = "\x1b[36m"
	colorGray   = "\x1b[90m"
)

// ColorStdoutWriter prints rows using ANSI colors. The first row triggers a
// short overview of the run.
type ColorStdoutWriter struct {
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to out, or
// os.Stdout when out is nil.
func NewColorStdoutWriter(out io.Writer) *ColorStdoutWriter {
	if out == nil {
		out = os.Stdout
	}
	return &ColorStdoutWriter{out: out}
}

func (w *ColorStdoutWriter) printOverview(row VisibilityRow) {
	fmt.Fprintln(w.out, "Visibility Run:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Run ID:\t%s\n", row.RunID)
	fmt.Fprintf(tw, "View Angle (deg):\t%.1f\n", row.AngleDeg)
	fmt.Fprintf(tw, "View Distance:\t%.2f\n", row.Distance)
	fmt.Fprintf(tw, "Evaluated At:\t%s\n", row.Timestamp.Format(time.RFC3339))
	tw.Flush()
	fmt.Fprintln(w.out)
}

func countColor(n uint) string {
	switch {
	case n == 0:
		return colorGray
	case n < 3:
		return colorYellow
	default:
		return colorGreen
	}
}

// Write outputs a single row in colorized format.
func (w *ColorStdoutWriter) Write(row VisibilityRow) error {
	w.once.Do(func() { w.printOverview(row) })
	_, err := fmt.Fprintf(w.out, "%sunit=%s%s %s#%d%s %spos=(%.3f,%.3f)%s %sfacing=(%.3f,%.3f)%s %ssees=%d%s\n",
		colorBlue, row.Name, colorReset,
		colorGray, row.UnitID, colorReset,
		colorCyan, row.X, row.Y, colorReset,
		colorGray, row.FacingX, row.FacingY, colorReset,
		countColor(row.Visible), row.Visible, colorReset)
	return err
}

// WriteBatch outputs rows followed by a totals line.
func (w *ColorStdoutWriter) WriteBatch(rows []VisibilityRow) error {
	var total, blind uint
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
		total += r.Visible
		if r.Visible == 0 {
			blind++
		}
	}
	if len(rows) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w.out, "\n%sunits=%d sightings=%d%s %sblind=%d%s\n",
		colorGreen, len(rows), total, colorReset, colorRed, blind, colorReset)
	return err
}
