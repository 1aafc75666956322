package config

import (
	"os"
	"testing"
)

// poolConfig mirrors the shape pkg/pool.Config actually loads through
// this package: flat, scalar tuning fields, not a nested Database/Server
// tree.
type poolConfig struct {
	Mode           string `yaml:"mode" json:"mode"`
	QueueCapacity  int    `yaml:"queue_capacity" json:"queue_capacity"`
	MaxWorkers     int    `yaml:"max_workers" json:"max_workers"`
	InitialWorkers int    `yaml:"initial_workers" json:"initial_workers"`
}

func TestLoadYAML(t *testing.T) {
	yamlContent := `
mode: cached
queue_capacity: 256
max_workers: 32
initial_workers: 4
`
	tmpFile := createTempFile(t, "test.yaml", yamlContent)
	defer os.Remove(tmpFile)

	var cfg poolConfig
	if err := LoadYAML(tmpFile, &cfg); err != nil {
		t.Fatalf("LoadYAML failed: %v", err)
	}

	if cfg.Mode != "cached" {
		t.Errorf("Mode = %v, want cached", cfg.Mode)
	}
	if cfg.QueueCapacity != 256 {
		t.Errorf("QueueCapacity = %v, want 256", cfg.QueueCapacity)
	}
	if cfg.MaxWorkers != 32 {
		t.Errorf("MaxWorkers = %v, want 32", cfg.MaxWorkers)
	}
}

func TestLoadJSON(t *testing.T) {
	jsonContent := `{
  "mode": "fixed",
  "queue_capacity": 64,
  "max_workers": 8,
  "initial_workers": 8
}`
	tmpFile := createTempFile(t, "test.json", jsonContent)
	defer os.Remove(tmpFile)

	var cfg poolConfig
	if err := LoadJSON(tmpFile, &cfg); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}

	if cfg.Mode != "fixed" {
		t.Errorf("Mode = %v, want fixed", cfg.Mode)
	}
	if cfg.QueueCapacity != 64 {
		t.Errorf("QueueCapacity = %v, want 64", cfg.QueueCapacity)
	}
}

func TestLoadDispatchesByExtension(t *testing.T) {
	jsonContent := `{"mode": "fixed", "queue_capacity": 1, "max_workers": 1}`
	tmpFile := createTempFile(t, "dispatch.json", jsonContent)
	defer os.Remove(tmpFile)

	var cfg poolConfig
	if err := Load(tmpFile, &cfg); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Mode != "fixed" {
		t.Errorf("Mode = %v, want fixed", cfg.Mode)
	}
}

func TestRangeValidator(t *testing.T) {
	cfg := poolConfig{MaxWorkers: 5}

	validator := RangeValidator("MaxWorkers", 10, 100)
	if err := validator.Validate(&cfg); err == nil {
		t.Error("RangeValidator should fail for value below minimum")
	}

	cfg.MaxWorkers = 50
	if err := validator.Validate(&cfg); err != nil {
		t.Errorf("RangeValidator should pass for value in range: %v", err)
	}
}

func TestOneOfValidator(t *testing.T) {
	cfg := poolConfig{Mode: "turbo"}

	validator := OneOfValidator("Mode", "fixed", "cached")
	if err := validator.Validate(&cfg); err == nil {
		t.Error("OneOfValidator should fail for a value outside the allowed set")
	}

	cfg.Mode = "cached"
	if err := validator.Validate(&cfg); err != nil {
		t.Errorf("OneOfValidator should pass for an allowed value: %v", err)
	}
}

func TestFieldAtLeastValidator(t *testing.T) {
	cfg := poolConfig{MaxWorkers: 4, InitialWorkers: 8}

	validator := FieldAtLeastValidator("MaxWorkers", "InitialWorkers")
	if err := validator.Validate(&cfg); err == nil {
		t.Error("FieldAtLeastValidator should fail when MaxWorkers < InitialWorkers")
	}

	cfg.MaxWorkers = 8
	if err := validator.Validate(&cfg); err != nil {
		t.Errorf("FieldAtLeastValidator should pass when MaxWorkers == InitialWorkers: %v", err)
	}

	cfg.MaxWorkers = 16
	if err := validator.Validate(&cfg); err != nil {
		t.Errorf("FieldAtLeastValidator should pass when MaxWorkers > InitialWorkers: %v", err)
	}
}

func createTempFile(t *testing.T, name, content string) string {
	tmpFile := name
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
