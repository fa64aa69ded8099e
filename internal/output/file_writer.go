package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// FileWriter writes visibility rows to a JSONL file.
type FileWriter struct {
	file *os.File
	enc  *json.Encoder
}

// NewFileWriter creates or truncates path.
func NewFileWriter(path string) (*FileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &FileWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Write logs a single row.
func (f *FileWriter) Write(row VisibilityRow) error {
	return f.enc.Encode(row)
}

// WriteBatch logs multiple rows.
func (f *FileWriter) WriteBatch(rows []VisibilityRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying file.
func (f *FileWriter) Close() error {
	return f.file.Close()
}

// TextFileWriter writes the plain report, one "<name>: sees <n>" line per
// unit, the format of result.txt.
type TextFileWriter struct {
	file *os.File
	buf  *bufio.Writer
}

// NewTextFileWriter creates or truncates path.
func NewTextFileWriter(path string) (*TextFileWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &TextFileWriter{file: f, buf: bufio.NewWriter(f)}, nil
}

// Write appends the report line of row.
func (w *TextFileWriter) Write(row VisibilityRow) error {
	_, err := fmt.Fprintf(w.buf, "%s: sees %d\n", row.Name, row.Visible)
	return err
}

// Close flushes buffered lines and closes the file.
func (w *TextFileWriter) Close() error {
	ferr := w.buf.Flush()
	cerr := w.file.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}
