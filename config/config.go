// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/warren/scenario"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Scheduler names.
const (
	SchedulerSequential = "sequential"
	SchedulerParallel   = "parallel"
)

// Config holds all run configuration. World parameters come from the
// scenario input, not from here.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Random     RandomConfig     `yaml:"random"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SimulationConfig selects and tunes the step scheduler.
type SimulationConfig struct {
	Scheduler         string `yaml:"scheduler"`
	Workers           int    `yaml:"workers"`            // 0 = GOMAXPROCS
	ParallelThreshold int    `yaml:"parallel_threshold"` // animals below which work runs inline
	CheckInvariants   bool   `yaml:"check_invariants"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogEvery   int `yaml:"log_every"`
	PerfWindow int `yaml:"perf_window"`
}

// RandomConfig describes a generated world for benchmarks and crosschecks.
type RandomConfig struct {
	Seed                 int64            `yaml:"seed"`
	Rows                 int              `yaml:"rows"`
	Cols                 int              `yaml:"cols"`
	Generations          int              `yaml:"generations"`
	PreyReproduction     int              `yaml:"prey_reproduction"`
	PredatorReproduction int              `yaml:"predator_reproduction"`
	PredatorStarvation   int              `yaml:"predator_starvation"`
	Density              scenario.Density `yaml:"density"`
}

// Params returns the scenario parameters of the generated world.
func (r RandomConfig) Params() scenario.Params {
	return scenario.Params{
		PreyReproduction:     r.PreyReproduction,
		PredatorReproduction: r.PredatorReproduction,
		PredatorStarvation:   r.PredatorStarvation,
		Generations:          r.Generations,
		Rows:                 r.Rows,
		Cols:                 r.Cols,
	}
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Workers int // effective worker count
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()
	return cfg, nil
}

// Validate rejects values no scheduler can run with.
func (c *Config) Validate() error {
	switch c.Simulation.Scheduler {
	case SchedulerSequential, SchedulerParallel:
	default:
		return fmt.Errorf("simulation.scheduler: unknown scheduler %q", c.Simulation.Scheduler)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers: must be >= 0, got %d", c.Simulation.Workers)
	}
	if c.Simulation.ParallelThreshold < 0 {
		return fmt.Errorf("simulation.parallel_threshold: must be >= 0, got %d", c.Simulation.ParallelThreshold)
	}
	if c.Telemetry.LogEvery < 0 {
		return fmt.Errorf("telemetry.log_every: must be >= 0, got %d", c.Telemetry.LogEvery)
	}
	if err := c.Random.Params().Validate(); err != nil {
		return fmt.Errorf("random: %w", err)
	}
	return nil
}

// ComputeDerived recalculates derived values. Call it again after
// changing fields in code.
func (c *Config) ComputeDerived() {
	c.Derived.Workers = c.Simulation.Workers
	if c.Derived.Workers == 0 {
		c.Derived.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
