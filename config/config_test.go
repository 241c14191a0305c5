package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if cfg.Simulation.Scheduler != SchedulerParallel {
		t.Errorf("expected default scheduler %q, got %q", SchedulerParallel, cfg.Simulation.Scheduler)
	}
	if !cfg.Simulation.CheckInvariants {
		t.Error("expected invariant checks enabled by default")
	}
	if cfg.Derived.Workers != runtime.GOMAXPROCS(0) {
		t.Errorf("expected derived workers %d, got %d", runtime.GOMAXPROCS(0), cfg.Derived.Workers)
	}
	if cfg.Random.Rows <= 0 || cfg.Random.Cols <= 0 {
		t.Errorf("expected positive random world size, got %dx%d", cfg.Random.Rows, cfg.Random.Cols)
	}
}

func TestLoad_OverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("simulation:\n  scheduler: sequential\n  workers: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	if cfg.Simulation.Scheduler != SchedulerSequential {
		t.Errorf("expected scheduler override, got %q", cfg.Simulation.Scheduler)
	}
	if cfg.Derived.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", cfg.Derived.Workers)
	}
	if cfg.Simulation.ParallelThreshold != 64 {
		t.Errorf("expected default threshold kept, got %d", cfg.Simulation.ParallelThreshold)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown scheduler", "simulation:\n  scheduler: gpu\n"},
		{"negative workers", "simulation:\n  workers: -1\n"},
		{"negative threshold", "simulation:\n  parallel_threshold: -5\n"},
		{"negative log interval", "telemetry:\n  log_every: -2\n"},
		{"malformed yaml", "simulation: [\n"},
		{"oversized random grid", "random:\n  rows: 65536\n  cols: 65536\n"},
		{"zero random rows", "random:\n  rows: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Simulation.Scheduler = SchedulerSequential
	cfg.Telemetry.LogEvery = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if back.Simulation.Scheduler != SchedulerSequential || back.Telemetry.LogEvery != 7 {
		t.Errorf("round trip lost values: %+v", back.Simulation)
	}
}

func TestCfg_AfterInit(t *testing.T) {
	MustInit("")
	if Cfg() == nil {
		t.Fatal("expected global config")
	}
}
