package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zylabs/gopool/pkg/config"
)

// This file exercises Load and Validate together, the way
// pkg/pool.LoadConfig actually composes them, rather than either in
// isolation.

type poolTuning struct {
	Mode           string `yaml:"mode" json:"mode"`
	QueueCapacity  int    `yaml:"queue_capacity" json:"queue_capacity"`
	MaxWorkers     int    `yaml:"max_workers" json:"max_workers"`
	InitialWorkers int    `yaml:"initial_workers" json:"initial_workers"`
}

func writeTuningFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}
	return path
}

func TestLoadThenValidateAcceptsWellFormedTuning(t *testing.T) {
	path := writeTuningFile(t, "pool.yaml", `
mode: cached
queue_capacity: 512
max_workers: 64
initial_workers: 8
`)

	var cfg poolTuning
	if err := config.Load(path, &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	err := config.Validate(&cfg,
		config.OneOfValidator("Mode", "fixed", "cached"),
		config.RangeValidator("QueueCapacity", 1, 1<<20),
		config.FieldAtLeastValidator("MaxWorkers", "InitialWorkers"),
	)
	if err != nil {
		t.Fatalf("Validate rejected a well-formed config: %v", err)
	}
}

func TestLoadThenValidateRejectsUndersizedCeiling(t *testing.T) {
	path := writeTuningFile(t, "pool.json", `{
  "mode": "cached",
  "queue_capacity": 512,
  "max_workers": 4,
  "initial_workers": 8
}`)

	var cfg poolTuning
	if err := config.Load(path, &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	err := config.Validate(&cfg,
		config.FieldAtLeastValidator("MaxWorkers", "InitialWorkers"),
	)
	if err == nil {
		t.Fatal("Validate should reject max_workers below initial_workers")
	}
}
