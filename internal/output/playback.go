package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"
)

// ReplayLog decodes JSONL rows from r and hands each to writer. It returns
// the number of rows replayed.
func ReplayLog(r io.Reader, writer ReportWriter) (int, error) {
	dec := json.NewDecoder(r)
	n := 0
	for {
		var row VisibilityRow
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, err
		}
		if err := writer.Write(row); err != nil {
			return n, err
		}
		n++
	}
}

// ReplayLogFile opens a file and replays its rows.
func ReplayLogFile(path string, writer ReportWriter) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return ReplayLog(f, writer)
}
