package session

import "adasops/internal/simulator"

// liveWorld adapts *simulator.World to the narrow World interface so the
// session can be exercised against fakes in tests.
type liveWorld struct {
	w *simulator.World
}

// WrapWorld wraps a connected simulator world for use by a session.
func WrapWorld(w *simulator.World) World {
	return liveWorld{w: w}
}

func (lw liveWorld) Name() string { return lw.w.Name() }

func (lw liveWorld) SetWeather(p simulator.WeatherParams) error {
	return lw.w.SetWeather(p)
}

func (lw liveWorld) SpawnPoints() ([]simulator.Transform, error) {
	return lw.w.SpawnPoints()
}

func (lw liveWorld) SpawnVehicle(blueprint string, at simulator.Transform) (Vehicle, error) {
	v, err := lw.w.SpawnVehicle(blueprint, at)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (lw liveWorld) SpawnSensor(blueprint string, at simulator.Transform, parentID int) (Sensor, error) {
	s, err := lw.w.SpawnSensor(blueprint, at, parentID)
	if err != nil {
		return nil, err
	}
	return s, nil
}
