package output

import (
	"errors"
	"io"
)

// MultiWriter fans rows out to multiple writers.
type MultiWriter struct {
	writers []ReportWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...ReportWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a row to all writers.
func (mw *MultiWriter) Write(row VisibilityRow) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends rows to all writers, using batch mode where supported.
func (mw *MultiWriter) WriteBatch(rows []VisibilityRow) error {
	for _, w := range mw.writers {
		if err := WriteAll(w, rows); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every writer that holds resources and reports all failures.
func (mw *MultiWriter) Close() error {
	var errs []error
	for _, w := range mw.writers {
		if c, ok := w.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
