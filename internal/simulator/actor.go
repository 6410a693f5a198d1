package simulator

// Actor is a handle to a server-side entity with a remote lifecycle.
// Destroying an actor invalidates the handle; the server owns all state.
type Actor struct {
	w         *World
	id        int
	blueprint string
}

// ID returns the server-assigned actor ID.
func (a *Actor) ID() int { return a.id }

// Blueprint returns the blueprint the actor was spawned from.
func (a *Actor) Blueprint() string { return a.blueprint }

type actorParams struct {
	ActorID int `json:"actor_id"`
}

// Destroy removes the actor from the simulation.
func (a *Actor) Destroy() error {
	return a.w.c.call("destroy_actor", actorParams{ActorID: a.id}, nil)
}

// Vehicle is an actor handle with vehicle-specific operations.
type Vehicle struct {
	Actor
}

// SetAutopilot toggles the server-side autopilot for the vehicle.
func (v *Vehicle) SetAutopilot(enabled bool) error {
	params := struct {
		ActorID int  `json:"actor_id"`
		Enabled bool `json:"enabled"`
	}{v.id, enabled}
	return v.w.c.call("set_autopilot", params, nil)
}

// ApplyControl forwards a control command to the vehicle. Values are
// clamped to their valid ranges before sending.
func (v *Vehicle) ApplyControl(ctl VehicleControl) error {
	params := struct {
		ActorID int            `json:"actor_id"`
		Control VehicleControl `json:"control"`
	}{v.id, ctl.Clamped()}
	return v.w.c.call("apply_control", params, nil)
}

// State queries the vehicle's transform, velocity, and acceleration.
func (v *Vehicle) State() (KinematicState, error) {
	var st KinematicState
	err := v.w.c.call("get_vehicle_state", actorParams{ActorID: v.id}, &st)
	return st, err
}

// Sensor is an actor handle for a spawned sensor.
type Sensor struct {
	Actor
}
