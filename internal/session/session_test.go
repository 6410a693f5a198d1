package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"adasops/internal/config"
	"adasops/internal/simulator"
	"adasops/internal/telemetry"
)

// MockWriter collects kinematics rows for validation.
type MockWriter struct {
	Rows []telemetry.KinematicsRow
}

func (w *MockWriter) Write(row telemetry.KinematicsRow) error {
	w.Rows = append(w.Rows, row)
	return nil
}

type fakeVehicle struct {
	id        int
	autopilot bool
	destroys  int
	state     simulator.KinematicState
	stateErr  error
}

func (v *fakeVehicle) ID() int            { return v.id }
func (v *fakeVehicle) Blueprint() string  { return "vehicle.tesla.model3" }
func (v *fakeVehicle) Destroy() error     { v.destroys++; return nil }
func (v *fakeVehicle) SetAutopilot(on bool) error {
	v.autopilot = on
	return nil
}
func (v *fakeVehicle) State() (simulator.KinematicState, error) {
	return v.state, v.stateErr
}

type fakeSensor struct {
	id        int
	blueprint string
	destroys  int
}

func (s *fakeSensor) ID() int           { return s.id }
func (s *fakeSensor) Blueprint() string { return s.blueprint }
func (s *fakeSensor) Destroy() error    { s.destroys++; return nil }

type fakeWorld struct {
	vehicle       *fakeVehicle
	sensors       []*fakeSensor
	spawnPoints   []simulator.Transform
	weather       simulator.WeatherParams
	failSensorAt  int // spawn of the nth sensor fails (1-based, 0 = never)
	sensorSpawned int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		spawnPoints: []simulator.Transform{
			{Location: simulator.Location{X: 10}},
			{Location: simulator.Location{X: 20}},
		},
	}
}

func (w *fakeWorld) Name() string { return "Town01" }

func (w *fakeWorld) SetWeather(p simulator.WeatherParams) error {
	w.weather = p
	return nil
}

func (w *fakeWorld) SpawnPoints() ([]simulator.Transform, error) {
	return w.spawnPoints, nil
}

func (w *fakeWorld) SpawnVehicle(blueprint string, at simulator.Transform) (Vehicle, error) {
	w.vehicle = &fakeVehicle{id: 100}
	return w.vehicle, nil
}

func (w *fakeWorld) SpawnSensor(blueprint string, at simulator.Transform, parentID int) (Sensor, error) {
	w.sensorSpawned++
	if w.failSensorAt > 0 && w.sensorSpawned == w.failSensorAt {
		return nil, errors.New("spawn collision")
	}
	s := &fakeSensor{id: 200 + w.sensorSpawned, blueprint: blueprint}
	w.sensors = append(w.sensors, s)
	return s, nil
}

func testConfig() *config.SessionConfig {
	cfg := config.Default()
	cfg.World.Weather = "CloudyNoon"
	return cfg
}

func TestSession_SetupSpawnsVehicleAndSensors(t *testing.T) {
	world := newFakeWorld()
	s := New(world, testConfig(), &MockWriter{}, time.Second)

	if err := s.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if world.vehicle == nil {
		t.Fatal("no vehicle spawned")
	}
	if !world.vehicle.autopilot {
		t.Error("autopilot not enabled")
	}
	if len(world.sensors) != 3 {
		t.Errorf("spawned %d sensors, want 3", len(world.sensors))
	}
	if got := world.weather.Cloudiness; got != 80 {
		t.Errorf("weather cloudiness = %v, want CloudyNoon's 80", got)
	}
	if len(s.Actors()) != 4 {
		t.Errorf("Actors() = %d entries, want 4", len(s.Actors()))
	}
}

func TestSession_TeardownReleasesEverythingOnce(t *testing.T) {
	world := newFakeWorld()
	s := New(world, testConfig(), &MockWriter{}, time.Second)
	if err := s.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	s.Teardown()
	s.Teardown() // second call must be a no-op

	if world.vehicle.destroys != 1 {
		t.Errorf("vehicle destroyed %d times, want 1", world.vehicle.destroys)
	}
	for _, sensor := range world.sensors {
		if sensor.destroys != 1 {
			t.Errorf("sensor %d destroyed %d times, want 1", sensor.id, sensor.destroys)
		}
	}
	if len(s.sensors) != 0 {
		t.Errorf("tracking map holds %d sensors after teardown", len(s.sensors))
	}
	if len(s.Actors()) != 0 {
		t.Errorf("Actors() = %d entries after teardown, want 0", len(s.Actors()))
	}
}

func TestSession_SetupFailureTearsDownPartialSpawns(t *testing.T) {
	world := newFakeWorld()
	world.failSensorAt = 2
	s := New(world, testConfig(), &MockWriter{}, time.Second)

	if err := s.Setup(); err == nil {
		t.Fatal("Setup succeeded despite sensor failure")
	}
	if world.vehicle.destroys != 1 {
		t.Errorf("vehicle destroyed %d times after failed setup, want 1", world.vehicle.destroys)
	}
	if len(world.sensors) != 1 {
		t.Fatalf("expected 1 sensor spawned before failure, got %d", len(world.sensors))
	}
	if world.sensors[0].destroys != 1 {
		t.Errorf("partial sensor destroyed %d times, want 1", world.sensors[0].destroys)
	}
	if len(s.sensors) != 0 {
		t.Errorf("tracking map holds %d sensors after failed setup", len(s.sensors))
	}
}

func TestSession_SnapshotEmptyBeforeSpawn(t *testing.T) {
	world := newFakeWorld()
	s := New(world, testConfig(), &MockWriter{}, time.Second)

	rows := s.Snapshot()
	if rows == nil {
		t.Fatal("Snapshot returned nil, want empty slice")
	}
	if len(rows) != 0 {
		t.Errorf("Snapshot before setup = %d rows, want 0", len(rows))
	}
}

func TestSession_PollWritesRow(t *testing.T) {
	world := newFakeWorld()
	writer := &MockWriter{}
	s := New(world, testConfig(), writer, time.Second)
	if err := s.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	world.vehicle.state = simulator.KinematicState{
		Velocity: simulator.Vector3{X: 3, Y: 4},
	}

	s.poll()

	if len(writer.Rows) != 1 {
		t.Fatalf("wrote %d rows, want 1", len(writer.Rows))
	}
	row := writer.Rows[0]
	if row.SessionID != s.ID() || row.VehicleID != "100" {
		t.Errorf("row ids = %s/%s", row.SessionID, row.VehicleID)
	}
	if row.SpeedMPS != 5 {
		t.Errorf("speed = %v, want 5", row.SpeedMPS)
	}
	if got := s.Snapshot(); len(got) != 1 {
		t.Errorf("Snapshot after poll = %d rows, want 1", len(got))
	}
}

func TestSession_RunStopsOnCancel(t *testing.T) {
	world := newFakeWorld()
	s := New(world, testConfig(), &MockWriter{}, 10*time.Millisecond)
	if err := s.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
