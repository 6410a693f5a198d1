package simulator

// VehicleControl is a single control command for a vehicle.
type VehicleControl struct {
	Throttle  float64 `json:"throttle"`
	Steer     float64 `json:"steer"`
	Brake     float64 `json:"brake"`
	Reverse   bool    `json:"reverse"`
	HandBrake bool    `json:"hand_brake"`
}

// Clamped returns a copy with throttle and brake limited to [0,1] and steer
// to [-1,1]. Values already in range pass through unchanged.
func (c VehicleControl) Clamped() VehicleControl {
	c.Throttle = clamp(c.Throttle, 0, 1)
	c.Steer = clamp(c.Steer, -1, 1)
	c.Brake = clamp(c.Brake, 0, 1)
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
