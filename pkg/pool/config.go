package pool

import (
	"fmt"
	"time"

	gopoolconfig "github.com/zylabs/gopool/pkg/config"
)

// Config is the file-loadable counterpart to the functional Options: a
// deployment that wants to tune pool sizing without a recompile drops one
// of these next to its binary instead of threading flags through.
type Config struct {
	Mode               string `yaml:"mode" json:"mode"`
	QueueCapacity      int    `yaml:"queue_capacity" json:"queue_capacity"`
	MaxWorkers         int    `yaml:"max_workers" json:"max_workers"`
	InitialWorkers     int    `yaml:"initial_workers" json:"initial_workers"`
	IdleTimeoutSeconds int    `yaml:"idle_timeout_seconds" json:"idle_timeout_seconds"`
	SubmitTimeoutMS    int    `yaml:"submit_timeout_ms" json:"submit_timeout_ms"`
}

// DefaultConfig mirrors the defaults New applies when no Options are
// given. InitialWorkers defaults to 0, which defers to Start's own
// runtime.NumCPU() fallback.
func DefaultConfig() Config {
	return Config{
		Mode:               "fixed",
		QueueCapacity:      defaultQueueCapacity,
		MaxWorkers:         defaultMaxWorkers,
		InitialWorkers:     0,
		IdleTimeoutSeconds: int(defaultIdleTimeout / time.Second),
		SubmitTimeoutMS:    int(defaultSubmitTimeout / time.Millisecond),
	}
}

// LoadConfig reads a YAML or JSON pool configuration from path and
// validates it. Values not present in the file keep DefaultConfig's
// values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := gopoolconfig.Load(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("pool: loading config from %s: %w", path, err)
	}

	validators := []gopoolconfig.Validator{
		gopoolconfig.OneOfValidator("Mode", "fixed", "cached"),
		gopoolconfig.RangeValidator("QueueCapacity", 1, 1<<20),
		gopoolconfig.RangeValidator("MaxWorkers", 1, 1<<16),
		gopoolconfig.RangeValidator("InitialWorkers", 0, 1<<16),
		gopoolconfig.RangeValidator("IdleTimeoutSeconds", 0, 86400),
		gopoolconfig.RangeValidator("SubmitTimeoutMS", 0, 600000),
	}
	// A cached pool that starts above its own growth ceiling can never
	// shed the surplus: idle-retire only trims workers above
	// InitialWorkers. An explicit InitialWorkers of 0 defers to Start's
	// own default and skips this check.
	if cfg.Mode == "cached" && cfg.InitialWorkers > 0 {
		validators = append(validators, gopoolconfig.FieldAtLeastValidator("MaxWorkers", "InitialWorkers"))
	}

	if err := gopoolconfig.Validate(&cfg, validators...); err != nil {
		return Config{}, fmt.Errorf("pool: invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Options converts a loaded Config into the functional Options New
// expects, so a caller can mix a config file with code-level overrides:
//
//	cfg, err := pool.LoadConfig("pool.yaml")
//	p := pool.New(append(cfg.Options(), pool.WithLogger(myLogger))...)
func (c Config) Options() []Option {
	opts := []Option{
		WithQueueCapacity(c.QueueCapacity),
		WithMaxWorkers(c.MaxWorkers),
	}

	if c.Mode == "cached" {
		opts = append(opts, WithMode(Cached))
	} else {
		opts = append(opts, WithMode(Fixed))
	}

	if c.IdleTimeoutSeconds > 0 {
		opts = append(opts, WithIdleTimeout(time.Duration(c.IdleTimeoutSeconds)*time.Second))
	}
	if c.SubmitTimeoutMS > 0 {
		opts = append(opts, WithSubmitTimeout(time.Duration(c.SubmitTimeoutMS)*time.Millisecond))
	}

	return opts
}

// StartWorkers returns the worker count Start should be called with for
// this Config. A 0 here (the default) tells Start to fall back to
// runtime.NumCPU() on its own.
//
//	cfg, err := pool.LoadConfig("pool.yaml")
//	p := pool.New(cfg.Options()...)
//	p.Start(cfg.StartWorkers())
func (c Config) StartWorkers() int {
	return c.InitialWorkers
}
