// Package config holds gridd configuration: defaults, an optional YAML
// config file, and the seed entities registered on a cold start.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds configuration for the gridd daemon.
type Config struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":8080")
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json

	SnapshotPath      string `yaml:"snapshot_path"`      // empty disables persistence
	SnapshotVersioned bool   `yaml:"snapshot_versioned"` // write/require the versioned envelope

	TickIntervalMS int `yaml:"tick_interval_ms"` // pause between ticks (default 500)

	// Seed entities, registered only when no snapshot is restored.
	SeedUsers    []SeedUser    `yaml:"users"`
	SeedMachines []SeedMachine `yaml:"machines"`
}

// SeedUser describes a user to register on a cold start.
type SeedUser struct {
	Name  string `yaml:"name"`
	Quota uint32 `yaml:"quota"` // 0 = unlimited
}

// SeedMachine describes a machine to register on a cold start.
type SeedMachine struct {
	Name    string `yaml:"name"`
	MaxJobs uint32 `yaml:"max_jobs"`
	RAM     uint32 `yaml:"ram"`  // MB
	Disk    uint32 `yaml:"disk"` // MB
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Addr:           ":8080",
		LogLevel:       "info",
		LogFormat:      "text",
		TickIntervalMS: 500,
	}
}

// TickInterval returns the tick interval as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// Load reads a YAML config file over the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.TickIntervalMS <= 0 {
		cfg.TickIntervalMS = 500
	}
	return cfg, nil
}
