// Kinematics row types for the telemetry sinks.
package telemetry

import (
	"os"
	"time"

	"adasops/internal/simulator"
)

// KinematicsRow is one polled vehicle state sample, flattened for the
// timeseries sink.
type KinematicsRow struct {
	SessionID string    `json:"session_id"` // TAG
	VehicleID string    `json:"vehicle_id"` // TAG
	MapName   string    `json:"map"`        // FIELD
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Z         float64   `json:"z"`
	Pitch     float64   `json:"pitch"`
	Yaw       float64   `json:"yaw"`
	Roll      float64   `json:"roll"`
	VelX      float64   `json:"vel_x"`
	VelY      float64   `json:"vel_y"`
	VelZ      float64   `json:"vel_z"`
	AccX      float64   `json:"acc_x"`
	AccY      float64   `json:"acc_y"`
	AccZ      float64   `json:"acc_z"`
	SpeedMPS  float64   `json:"speed_mps"`
	Timestamp time.Time `json:"ts"` // TIME INDEX
}

// KinematicsTableName is the sink table name, overridable via the
// KINEMATICS_TABLE environment variable.
var KinematicsTableName = func() string {
	if env := os.Getenv("KINEMATICS_TABLE"); env != "" {
		return env
	}
	return "vehicle_kinematics"
}()

func (KinematicsRow) TableName() string {
	return KinematicsTableName
}

// NewKinematicsRow flattens a vehicle state snapshot into a row.
func NewKinematicsRow(sessionID, vehicleID, mapName string, st simulator.KinematicState, ts time.Time) KinematicsRow {
	return KinematicsRow{
		SessionID: sessionID,
		VehicleID: vehicleID,
		MapName:   mapName,
		X:         st.Transform.Location.X,
		Y:         st.Transform.Location.Y,
		Z:         st.Transform.Location.Z,
		Pitch:     st.Transform.Rotation.Pitch,
		Yaw:       st.Transform.Rotation.Yaw,
		Roll:      st.Transform.Rotation.Roll,
		VelX:      st.Velocity.X,
		VelY:      st.Velocity.Y,
		VelZ:      st.Velocity.Z,
		AccX:      st.Acceleration.X,
		AccY:      st.Acceleration.Y,
		AccZ:      st.Acceleration.Z,
		SpeedMPS:  st.Velocity.Length(),
		Timestamp: ts,
	}
}
