// Writers printing visibility rows to STDOUT
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// StdoutWriter prints rows as JSON lines.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a StdoutWriter writing to out, or os.Stdout when
// out is nil.
func NewStdoutWriter(out io.Writer) *StdoutWriter {
	if out == nil {
		out = os.Stdout
	}
	return &StdoutWriter{out: out}
}

// Write outputs a single row.
func (w *StdoutWriter) Write(row VisibilityRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// TextStdoutWriter prints the plain report lines.
type TextStdoutWriter struct {
	out io.Writer
}

// NewTextStdoutWriter creates a TextStdoutWriter writing to out, or
// os.Stdout when out is nil.
func NewTextStdoutWriter(out io.Writer) *TextStdoutWriter {
	if out == nil {
		out = os.Stdout
	}
	return &TextStdoutWriter{out: out}
}

// Write outputs the report line of row.
func (w *TextStdoutWriter) Write(row VisibilityRow) error {
	_, err := fmt.Fprintf(w.out, "%s: sees %d\n", row.Name, row.Visible)
	return err
}
