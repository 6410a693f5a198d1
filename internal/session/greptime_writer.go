package session

import (
	"context"
	"log"

	"adasops/internal/telemetry"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes kinematics rows to GreptimeDB via the ingester
// client.
type GreptimeDBWriter struct {
	client greptime.Client
	db     string
	table  string
}

// NewGreptimeDBWriter creates a GreptimeDB writer and auto-creates the
// kinematics table if needed.
func NewGreptimeDBWriter(endpoint, database, tableName string) (*GreptimeDBWriter, error) {
	if tableName == "" {
		tableName = telemetry.KinematicsTableName
	}
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	ddl := `
CREATE TABLE IF NOT EXISTS ` + tableName + ` (
  session_id STRING TAG,
  vehicle_id STRING TAG,
  map STRING,
  x DOUBLE,
  y DOUBLE,
  z DOUBLE,
  pitch DOUBLE,
  yaw DOUBLE,
  roll DOUBLE,
  vel_x DOUBLE,
  vel_y DOUBLE,
  vel_z DOUBLE,
  acc_x DOUBLE,
  acc_y DOUBLE,
  acc_z DOUBLE,
  speed_mps DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`
	if _, err := client.SQL(ctx, ddl); err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client: client,
		db:     database,
		table:  tableName,
	}, nil
}

// Write inserts a single row.
func (w *GreptimeDBWriter) Write(row telemetry.KinematicsRow) error {
	return w.WriteBatch([]telemetry.KinematicsRow{row})
}

// WriteBatch inserts multiple rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.KinematicsRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(w.table)
	tbl.AddTagColumn("session_id", types.StringType, 0)
	tbl.AddTagColumn("vehicle_id", types.StringType, 0)
	tbl.AddFieldColumn("map", types.StringType)
	tbl.AddFieldColumn("x", types.Float64Type)
	tbl.AddFieldColumn("y", types.Float64Type)
	tbl.AddFieldColumn("z", types.Float64Type)
	tbl.AddFieldColumn("pitch", types.Float64Type)
	tbl.AddFieldColumn("yaw", types.Float64Type)
	tbl.AddFieldColumn("roll", types.Float64Type)
	tbl.AddFieldColumn("vel_x", types.Float64Type)
	tbl.AddFieldColumn("vel_y", types.Float64Type)
	tbl.AddFieldColumn("vel_z", types.Float64Type)
	tbl.AddFieldColumn("acc_x", types.Float64Type)
	tbl.AddFieldColumn("acc_y", types.Float64Type)
	tbl.AddFieldColumn("acc_z", types.Float64Type)
	tbl.AddFieldColumn("speed_mps", types.Float64Type)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range rows {
		tbl.AppendTagValue("session_id", r.SessionID)
		tbl.AppendTagValue("vehicle_id", r.VehicleID)
		tbl.AppendFieldValue("map", r.MapName)
		tbl.AppendFieldValue("x", r.X)
		tbl.AppendFieldValue("y", r.Y)
		tbl.AppendFieldValue("z", r.Z)
		tbl.AppendFieldValue("pitch", r.Pitch)
		tbl.AppendFieldValue("yaw", r.Yaw)
		tbl.AppendFieldValue("roll", r.Roll)
		tbl.AppendFieldValue("vel_x", r.VelX)
		tbl.AppendFieldValue("vel_y", r.VelY)
		tbl.AppendFieldValue("vel_z", r.VelZ)
		tbl.AppendFieldValue("acc_x", r.AccX)
		tbl.AppendFieldValue("acc_y", r.AccY)
		tbl.AppendFieldValue("acc_z", r.AccZ)
		tbl.AppendFieldValue("speed_mps", r.SpeedMPS)
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}
	return nil
}
