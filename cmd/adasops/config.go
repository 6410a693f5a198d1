package main

import "adasops/internal/config"

// loadConfig returns the built-in defaults when no config file is given.
func loadConfig(path, schemaPath string) (*config.SessionConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path, schemaPath)
}
