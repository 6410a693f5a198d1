package simulator

// World is a handle to the map currently loaded on the server.
type World struct {
	c       *Client
	mapName string
}

// Name returns the name of the loaded map.
func (w *World) Name() string { return w.mapName }

// SetWeather applies the given weather parameters to the world.
func (w *World) SetWeather(p WeatherParams) error {
	return w.c.call("set_weather", p, nil)
}

// Blueprints lists actor blueprint IDs, optionally filtered by a wildcard
// pattern such as "vehicle.*" or "sensor.camera.*".
func (w *World) Blueprints(filter string) ([]string, error) {
	params := map[string]string{"filter": filter}
	var out struct {
		Blueprints []string `json:"blueprints"`
	}
	if err := w.c.call("get_blueprint_library", params, &out); err != nil {
		return nil, err
	}
	return out.Blueprints, nil
}

type spawnParams struct {
	Blueprint string    `json:"blueprint"`
	Transform Transform `json:"transform"`
	ParentID  int       `json:"parent_id,omitempty"`
}

// spawnActor creates an actor on the server and returns its actor ID.
// parentID 0 spawns a free-standing actor; any other value attaches the new
// actor to that parent.
func (w *World) spawnActor(blueprint string, at Transform, parentID int) (int, error) {
	var out struct {
		ActorID int `json:"actor_id"`
	}
	err := w.c.call("spawn_actor", spawnParams{Blueprint: blueprint, Transform: at, ParentID: parentID}, &out)
	if err != nil {
		return 0, err
	}
	return out.ActorID, nil
}

// SpawnVehicle spawns a vehicle actor at the given transform.
func (w *World) SpawnVehicle(blueprint string, at Transform) (*Vehicle, error) {
	id, err := w.spawnActor(blueprint, at, 0)
	if err != nil {
		return nil, err
	}
	return &Vehicle{Actor: Actor{w: w, id: id, blueprint: blueprint}}, nil
}

// SpawnSensor spawns a sensor actor attached to the parent actor. The
// transform is relative to the parent.
func (w *World) SpawnSensor(blueprint string, at Transform, parentID int) (*Sensor, error) {
	id, err := w.spawnActor(blueprint, at, parentID)
	if err != nil {
		return nil, err
	}
	return &Sensor{Actor: Actor{w: w, id: id, blueprint: blueprint}}, nil
}

// SpawnPoints returns the recommended vehicle spawn transforms of the map.
func (w *World) SpawnPoints() ([]Transform, error) {
	var out struct {
		SpawnPoints []Transform `json:"spawn_points"`
	}
	if err := w.c.call("get_spawn_points", nil, &out); err != nil {
		return nil, err
	}
	return out.SpawnPoints, nil
}

// Topology returns the road network as waypoint-pair segments.
func (w *World) Topology() ([]RoadSegment, error) {
	var out struct {
		Segments []RoadSegment `json:"segments"`
	}
	if err := w.c.call("get_topology", nil, &out); err != nil {
		return nil, err
	}
	return out.Segments, nil
}
