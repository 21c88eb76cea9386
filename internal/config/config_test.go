package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridd.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.TickInterval() != 500*time.Millisecond {
		t.Errorf("TickInterval = %v, want 500ms", cfg.TickInterval())
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log defaults = (%s, %s), want (info, text)", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: ":9090"
log_level: debug
snapshot_path: /var/lib/gridd/grid.snap
snapshot_versioned: true
tick_interval_ms: 250
users:
  - name: alice
    quota: 5
machines:
  - name: node-01
    max_jobs: 4
    ram: 8192
    disk: 16384
  - name: node-02
    max_jobs: 2
    ram: 4096
    disk: 8192
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":9090" || cfg.LogLevel != "debug" {
		t.Errorf("overrides not applied: addr=%q level=%q", cfg.Addr, cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want default text for an absent field", cfg.LogFormat)
	}
	if !cfg.SnapshotVersioned || cfg.SnapshotPath != "/var/lib/gridd/grid.snap" {
		t.Error("snapshot settings not applied")
	}
	if cfg.TickInterval() != 250*time.Millisecond {
		t.Errorf("TickInterval = %v, want 250ms", cfg.TickInterval())
	}
	if len(cfg.SeedUsers) != 1 || cfg.SeedUsers[0].Name != "alice" || cfg.SeedUsers[0].Quota != 5 {
		t.Errorf("SeedUsers = %+v", cfg.SeedUsers)
	}
	if len(cfg.SeedMachines) != 2 || cfg.SeedMachines[0].MaxJobs != 4 {
		t.Errorf("SeedMachines = %+v", cfg.SeedMachines)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "addr: [not a string")
	if _, err := Load(path); err == nil {
		t.Fatal("Load of invalid YAML succeeded")
	}
}

func TestTickIntervalFloor(t *testing.T) {
	path := writeConfig(t, "tick_interval_ms: -5")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickIntervalMS != 500 {
		t.Errorf("TickIntervalMS = %d, want floor 500", cfg.TickIntervalMS)
	}
}
