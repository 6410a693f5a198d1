// Geometry and actor state types shared across the simulator API.
package simulator

import "math"

// Location is a point in the world frame, in meters.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation holds Euler angles in degrees.
type Rotation struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Transform combines a location and a rotation.
type Transform struct {
	Location Location `json:"location"`
	Rotation Rotation `json:"rotation"`
}

// Vector3 is a velocity or acceleration vector in world frame.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Length returns the Euclidean norm of the vector.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// KinematicState is the snapshot returned by a vehicle state query.
type KinematicState struct {
	Transform    Transform `json:"transform"`
	Velocity     Vector3   `json:"velocity"`
	Acceleration Vector3   `json:"acceleration"`
}

// RoadSegment is one directed edge of the map topology: the transforms of
// a waypoint pair marking the start and end of a road piece.
type RoadSegment struct {
	Start Location `json:"start"`
	End   Location `json:"end"`
}
