package telemetry

import (
	"testing"
	"time"

	"adasops/internal/simulator"
)

func TestNewKinematicsRow(t *testing.T) {
	st := simulator.KinematicState{
		Transform: simulator.Transform{
			Location: simulator.Location{X: 1, Y: 2, Z: 3},
			Rotation: simulator.Rotation{Yaw: 90},
		},
		Velocity:     simulator.Vector3{X: 6, Y: 8},
		Acceleration: simulator.Vector3{Z: -9.81},
	}
	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	row := NewKinematicsRow("session-1", "vehicle-7", "Town01", st, ts)

	if row.X != 1 || row.Y != 2 || row.Z != 3 {
		t.Errorf("location = (%v,%v,%v), want (1,2,3)", row.X, row.Y, row.Z)
	}
	if row.Yaw != 90 {
		t.Errorf("yaw = %v, want 90", row.Yaw)
	}
	if row.SpeedMPS != 10 {
		t.Errorf("speed = %v, want 10", row.SpeedMPS)
	}
	if row.AccZ != -9.81 {
		t.Errorf("acc_z = %v, want -9.81", row.AccZ)
	}
	if !row.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", row.Timestamp, ts)
	}
}
