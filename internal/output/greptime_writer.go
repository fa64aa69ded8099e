package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// DefaultGreptimeTable receives visibility rows unless configured otherwise.
const DefaultGreptimeTable = "unit_visibility"

const writeTimeout = 10 * time.Second

type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes visibility rows to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client greptimeClient
	table  string
	log    *slog.Logger
}

// NewGreptimeDBWriter connects to endpoint ("host" or "host:port"). The
// table is created by GreptimeDB on first write.
func NewGreptimeDBWriter(endpoint, database, tableName string, log *slog.Logger) (*GreptimeDBWriter, error) {
	host, port := endpoint, 0
	if h, p, err := net.SplitHostPort(endpoint); err == nil {
		host = h
		if port, err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("greptime endpoint %q: bad port: %w", endpoint, err)
		}
	}
	if host == "" {
		return nil, errors.New("greptime endpoint is empty")
	}
	cfg := greptime.NewConfig(host).WithDatabase(database)
	if port > 0 {
		cfg = cfg.WithPort(port)
	}
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if tableName == "" {
		tableName = DefaultGreptimeTable
	}
	if log == nil {
		log = slog.Default()
	}
	return &GreptimeDBWriter{client: client, table: tableName, log: log}, nil
}

// Write inserts a single row.
func (w *GreptimeDBWriter) Write(row VisibilityRow) error {
	return w.WriteBatch([]VisibilityRow{row})
}

func (w *GreptimeDBWriter) newTable() (*table.Table, error) {
	tbl, err := table.New(w.table)
	if err != nil {
		return nil, err
	}
	err = errors.Join(
		tbl.AddTagColumn("run_id", types.STRING),
		tbl.AddTagColumn("unit_name", types.STRING),
		tbl.AddFieldColumn("unit_id", types.INT64),
		tbl.AddFieldColumn("visible", types.UINT64),
		tbl.AddFieldColumn("x", types.FLOAT64),
		tbl.AddFieldColumn("y", types.FLOAT64),
		tbl.AddFieldColumn("facing_x", types.FLOAT64),
		tbl.AddFieldColumn("facing_y", types.FLOAT64),
		tbl.AddFieldColumn("distance", types.FLOAT64),
		tbl.AddFieldColumn("angle_deg", types.FLOAT64),
		tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND),
	)
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// WriteBatch inserts rows in a single request.
func (w *GreptimeDBWriter) WriteBatch(rows []VisibilityRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := w.newTable()
	if err != nil {
		return fmt.Errorf("greptime table %s: %w", w.table, err)
	}
	for _, r := range rows {
		if err := tbl.AddRow(r.RunID, r.Name, int64(r.UnitID), uint64(r.Visible),
			r.X, r.Y, r.FacingX, r.FacingY, r.Distance, r.AngleDeg, r.Timestamp); err != nil {
			return fmt.Errorf("greptime row %s: %w", r.Name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if _, err := w.client.Write(ctx, tbl); err != nil {
		w.log.Error("greptime write failed", "table", w.table, "err", err)
		return err
	}
	w.log.Debug("greptime rows written", "table", w.table, "rows", len(rows))
	return nil
}
