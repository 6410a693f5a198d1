// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig locates the simulator RPC endpoint.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// WorldConfig selects the map and weather preset for a session.
type WorldConfig struct {
	Map     string `yaml:"map"`
	Weather string `yaml:"weather"`
}

// VehicleConfig describes the ego vehicle to spawn.
type VehicleConfig struct {
	Blueprint  string `yaml:"blueprint"`
	SpawnIndex int    `yaml:"spawn_index"`
	Autopilot  bool   `yaml:"autopilot"`
}

// SensorConfig describes one sensor attached to the vehicle. The offset is
// relative to the vehicle origin, in meters.
type SensorConfig struct {
	Name      string  `yaml:"name"`
	Blueprint string  `yaml:"blueprint"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
}

// TelemetryConfig controls the kinematics polling loop.
type TelemetryConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"`
}

// BusConfig locates the message broker and the topic to bridge.
type BusConfig struct {
	Broker     string `yaml:"broker"`
	ClientID   string `yaml:"client_id"`
	Topic      string `yaml:"topic"`
	Type       string `yaml:"type"`
	QoS        int    `yaml:"qos"`
	QueueDepth int    `yaml:"queue_depth"`
}

// BagConfig controls where bridged messages are persisted.
type BagConfig struct {
	Dir                 string `yaml:"dir"`
	SerializationFormat string `yaml:"serialization_format"`
}

// SessionConfig is the root configuration for all subcommands.
type SessionConfig struct {
	Server    ServerConfig    `yaml:"server"`
	World     WorldConfig     `yaml:"world"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Sensors   []SensorConfig  `yaml:"sensors"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Bus       BusConfig       `yaml:"bus"`
	Bag       BagConfig       `yaml:"bag"`
}

// Default returns the built-in configuration matching the values the demo
// deployment uses when no config file is given.
func Default() *SessionConfig {
	return &SessionConfig{
		Server: ServerConfig{Host: "localhost", Port: 2000, TimeoutSeconds: 10},
		World:  WorldConfig{Map: "Town01", Weather: "ClearNoon"},
		Vehicle: VehicleConfig{
			Blueprint: "vehicle.tesla.model3",
			Autopilot: true,
		},
		Sensors: []SensorConfig{
			{Name: "rgb", Blueprint: "sensor.camera.rgb", X: 1.5, Z: 2.4},
			{Name: "depth", Blueprint: "sensor.camera.depth", X: 1.5, Z: 2.4},
			{Name: "semantic", Blueprint: "sensor.camera.semantic_segmentation", X: 1.5, Z: 2.4},
		},
		Telemetry: TelemetryConfig{IntervalSeconds: 5},
		Bus: BusConfig{
			Broker:     "tcp://localhost:1883",
			ClientID:   "adasops-bridge",
			Topic:      "chatter",
			Type:       "std_msgs/msg/String",
			QoS:        1,
			QueueDepth: 10,
		},
		Bag: BagConfig{Dir: "my_bag", SerializationFormat: "cdr"},
	}
}

// Load reads a YAML config file, optionally validating it against a CUE
// schema first, and fills unset fields from Default.
func Load(configPath, cueSchemaPath string) (*SessionConfig, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

func (c *SessionConfig) check() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server.host must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Telemetry.IntervalSeconds <= 0 {
		return fmt.Errorf("telemetry.interval_seconds must be positive")
	}
	if c.Bus.QoS < 0 || c.Bus.QoS > 2 {
		return fmt.Errorf("bus.qos %d out of range [0,2]", c.Bus.QoS)
	}
	if c.Bus.QueueDepth <= 0 {
		return fmt.Errorf("bus.queue_depth must be positive")
	}
	for i, s := range c.Sensors {
		if s.Name == "" || s.Blueprint == "" {
			return fmt.Errorf("sensors[%d]: name and blueprint are required", i)
		}
	}
	return nil
}
