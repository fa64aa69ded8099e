// Package output persists visibility reports: the classic text file, JSON
// lines, terminal views and GreptimeDB.
package output

import (
	"time"

	"unitsight/internal/perception"
	"unitsight/internal/unit"
	"unitsight/internal/visibility"
)

// VisibilityRow is one unit's line of a report together with the inputs that
// produced it.
type VisibilityRow struct {
	RunID     string    `json:"run_id"`
	UnitID    int       `json:"unit_id"`
	Name      string    `json:"name"`
	Visible   uint      `json:"visible"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	FacingX   float64   `json:"facing_x"`
	FacingY   float64   `json:"facing_y"`
	Distance  float64   `json:"distance"`
	AngleDeg  float64   `json:"angle_deg"`
	Timestamp time.Time `json:"ts"`
}

// NewRows joins the report entries with their units. Rows keep report order.
func NewRows(runID string, rep visibility.Report, units []unit.Unit, vision perception.Vision, now time.Time) []VisibilityRow {
	rows := make([]VisibilityRow, 0, len(rep.Entries))
	angle := vision.AngleDeg()
	for _, e := range rep.Entries {
		row := VisibilityRow{
			RunID:     runID,
			UnitID:    e.ID,
			Name:      e.Name,
			Visible:   e.Visible,
			Distance:  vision.Distance,
			AngleDeg:  angle,
			Timestamp: now,
		}
		if e.ID >= 0 && e.ID < len(units) {
			u := units[e.ID]
			row.X, row.Y = u.Position.X, u.Position.Y
			row.FacingX, row.FacingY = u.Facing.X, u.Facing.Y
		}
		rows = append(rows, row)
	}
	return rows
}

// ReportWriter consumes visibility rows.
type ReportWriter interface {
	Write(row VisibilityRow) error
}

type batchWriter interface {
	WriteBatch(rows []VisibilityRow) error
}

// WriteAll hands rows to w, in one batch when w supports it.
func WriteAll(w ReportWriter, rows []VisibilityRow) error {
	if bw, ok := w.(batchWriter); ok {
		return bw.WriteBatch(rows)
	}
	for _, r := range rows {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
