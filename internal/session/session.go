// Session manager owning the spawned simulator actors and the polling loop.
package session

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"adasops/internal/config"
	"adasops/internal/simulator"
	"adasops/internal/telemetry"

	"github.com/google/uuid"
)

// TelemetryWriter is an interface to support different output writers.
type TelemetryWriter interface {
	Write(telemetry.KinematicsRow) error
}

// Optional: writers can also support batch mode.
type batchWriter interface {
	WriteBatch([]telemetry.KinematicsRow) error
}

// World is the subset of simulator world operations a session uses.
type World interface {
	Name() string
	SetWeather(simulator.WeatherParams) error
	SpawnPoints() ([]simulator.Transform, error)
	SpawnVehicle(blueprint string, at simulator.Transform) (Vehicle, error)
	SpawnSensor(blueprint string, at simulator.Transform, parentID int) (Sensor, error)
}

// Vehicle is the ego vehicle handle a session drives.
type Vehicle interface {
	ID() int
	Blueprint() string
	SetAutopilot(enabled bool) error
	State() (simulator.KinematicState, error)
	Destroy() error
}

// Sensor is a sensor handle tracked for cleanup.
type Sensor interface {
	ID() int
	Blueprint() string
	Destroy() error
}

// ActorInfo describes one spawned actor for status reporting.
type ActorInfo struct {
	Name      string `json:"name"`
	Blueprint string `json:"blueprint"`
	ActorID   int    `json:"actor_id"`
}

// Session owns the handles spawned for one simulator run. All remote state
// lives on the server; the session only guarantees that every tracked
// handle is destroyed on teardown.
type Session struct {
	id       string
	cfg      *config.SessionConfig
	world    World
	writer   TelemetryWriter
	interval time.Duration

	mu      sync.Mutex
	vehicle Vehicle
	sensors map[string]Sensor
	last    *telemetry.KinematicsRow
}

// New creates a session around an already-loaded world.
func New(world World, cfg *config.SessionConfig, writer TelemetryWriter, interval time.Duration) *Session {
	return &Session{
		id:       uuid.New().String(),
		cfg:      cfg,
		world:    world,
		writer:   writer,
		interval: interval,
		sensors:  make(map[string]Sensor),
	}
}

// ID returns the session identifier used to tag telemetry rows.
func (s *Session) ID() string { return s.id }

// Setup configures weather and spawns the vehicle and its sensors. The
// first failing step aborts the sequence; actors spawned up to that point
// are destroyed before returning.
func (s *Session) Setup() error {
	weather := simulator.WeatherPreset(s.cfg.World.Weather)
	if err := s.world.SetWeather(weather); err != nil {
		return fmt.Errorf("set weather: %w", err)
	}

	points, err := s.world.SpawnPoints()
	if err != nil {
		return fmt.Errorf("get spawn points: %w", err)
	}
	if len(points) == 0 {
		return fmt.Errorf("map %s has no spawn points", s.world.Name())
	}
	idx := s.cfg.Vehicle.SpawnIndex
	idx = ((idx % len(points)) + len(points)) % len(points)

	vehicle, err := s.world.SpawnVehicle(s.cfg.Vehicle.Blueprint, points[idx])
	if err != nil {
		return fmt.Errorf("spawn vehicle %s: %w", s.cfg.Vehicle.Blueprint, err)
	}
	s.mu.Lock()
	s.vehicle = vehicle
	s.mu.Unlock()

	for _, sc := range s.cfg.Sensors {
		mount := simulator.Transform{Location: simulator.Location{X: sc.X, Y: sc.Y, Z: sc.Z}}
		sensor, err := s.world.SpawnSensor(sc.Blueprint, mount, vehicle.ID())
		if err != nil {
			s.Teardown()
			return fmt.Errorf("spawn sensor %s: %w", sc.Name, err)
		}
		s.mu.Lock()
		s.sensors[sc.Name] = sensor
		s.mu.Unlock()
	}

	if s.cfg.Vehicle.Autopilot {
		if err := vehicle.SetAutopilot(true); err != nil {
			s.Teardown()
			return fmt.Errorf("enable autopilot: %w", err)
		}
	}

	log.Printf("[Session] %s: vehicle %d with %d sensors on %s",
		s.id, vehicle.ID(), len(s.cfg.Sensors), s.world.Name())
	return nil
}

// Run polls vehicle kinematics on the configured interval until the context
// is canceled. Teardown is the caller's responsibility on every exit path.
func (s *Session) Run(ctx context.Context) error {
	log.Printf("[Session] polling kinematics every %s", s.interval)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.poll()
		case <-ctx.Done():
			log.Println("[Session] stopping...")
			return nil
		}
	}
}

// poll reads the vehicle state and hands one row to the writer. A failed
// query or write is logged and skipped; the loop keeps running.
func (s *Session) poll() {
	s.mu.Lock()
	vehicle := s.vehicle
	s.mu.Unlock()
	if vehicle == nil {
		return
	}

	st, err := vehicle.State()
	if err != nil {
		log.Printf("[Session] state query failed: %v", err)
		return
	}
	row := telemetry.NewKinematicsRow(s.id, strconv.Itoa(vehicle.ID()), s.world.Name(), st, time.Now().UTC())

	s.mu.Lock()
	s.last = &row
	s.mu.Unlock()

	if err := s.writer.Write(row); err != nil {
		log.Printf("[Session] write failed: %v", err)
	}
}

// Teardown destroys tracked sensors, then the vehicle. Each handle is
// released at most once; the tracking map is empty afterwards and calling
// Teardown again is a no-op.
func (s *Session) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, sensor := range s.sensors {
		if err := sensor.Destroy(); err != nil {
			log.Printf("[Session] destroy sensor %s: %v", name, err)
		}
		delete(s.sensors, name)
	}
	if s.vehicle != nil {
		if err := s.vehicle.Destroy(); err != nil {
			log.Printf("[Session] destroy vehicle: %v", err)
		}
		s.vehicle = nil
	}
}

// Snapshot returns the most recent kinematics rows. Before the vehicle
// exists or the first poll completes it returns an empty slice, not an
// error.
func (s *Session) Snapshot() []telemetry.KinematicsRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return []telemetry.KinematicsRow{}
	}
	return []telemetry.KinematicsRow{*s.last}
}

// Actors lists the currently tracked actor handles.
func (s *Session) Actors() []ActorInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var infos []ActorInfo
	if s.vehicle != nil {
		infos = append(infos, ActorInfo{Name: "vehicle", Blueprint: s.vehicle.Blueprint(), ActorID: s.vehicle.ID()})
	}
	for name, sensor := range s.sensors {
		infos = append(infos, ActorInfo{Name: name, Blueprint: sensor.Blueprint(), ActorID: sensor.ID()})
	}
	return infos
}

// MapName reports the loaded map.
func (s *Session) MapName() string { return s.world.Name() }
