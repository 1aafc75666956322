package pool

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeTempConfig(t, "pool.yaml", `
mode: cached
queue_capacity: 200
max_workers: 20
idle_timeout_seconds: 5
submit_timeout_ms: 250
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() err = %v", err)
	}
	if cfg.Mode != "cached" || cfg.QueueCapacity != 200 || cfg.MaxWorkers != 20 {
		t.Fatalf("LoadConfig() = %+v, unexpected values", cfg)
	}
}

func TestLoadConfigRejectsInvalidMode(t *testing.T) {
	path := writeTempConfig(t, "pool.yaml", `
mode: turbo
queue_capacity: 10
max_workers: 10
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("LoadConfig() with an invalid mode should fail validation")
	}
}

func TestLoadConfigRejectsMaxWorkersBelowInitial(t *testing.T) {
	path := writeTempConfig(t, "pool.yaml", `
mode: cached
queue_capacity: 10
max_workers: 4
initial_workers: 8
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("LoadConfig() with max_workers below initial_workers should fail validation")
	}
}

func TestLoadConfigAllowsMaxWorkersBelowInitialInFixedMode(t *testing.T) {
	// The initial-vs-max check only applies to cached mode, where
	// idle-retire is what would otherwise strand the surplus. Fixed mode
	// never grows past initialWorkers in the first place.
	path := writeTempConfig(t, "pool.yaml", `
mode: fixed
queue_capacity: 10
max_workers: 4
initial_workers: 8
`)

	if _, err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig() in fixed mode should ignore max_workers vs initial_workers: %v", err)
	}
}

func TestConfigOptionsAppliesToPool(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "cached"
	cfg.QueueCapacity = 77
	cfg.MaxWorkers = 9

	p := newTestPool(cfg.Options()...)
	stats := p.Stats()
	if stats.Mode != Cached {
		t.Fatalf("Mode = %v, want Cached", stats.Mode)
	}
	if stats.QueueCapacity != 77 {
		t.Fatalf("QueueCapacity = %d, want 77", stats.QueueCapacity)
	}
}
