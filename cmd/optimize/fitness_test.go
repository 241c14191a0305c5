package main

import (
	"testing"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

func TestParamVector_RoundClampsToBounds(t *testing.T) {
	pv := NewParamVector()
	got := pv.Round([]float64{-3, 12.6, 99})
	want := []int{1, 13, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("param %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestParamVector_NormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Round(pv.Denormalize(pv.Normalize(raw)))
	for i, v := range raw {
		if back[i] != int(v) {
			t.Errorf("param %d: expected %v, got %d", i, v, back[i])
		}
	}
}

func TestComputeQuality_NeedsBothSpecies(t *testing.T) {
	gens := make([]telemetry.GenerationStats, 20)
	for i := range gens {
		gens[i] = telemetry.GenerationStats{Generation: i + 1, PreyCount: 50, PredCount: 0}
	}
	if q := computeQuality(gens); q != 0 {
		t.Errorf("expected zero quality without predators, got %f", q)
	}
}

func TestComputeQuality_StableRatio(t *testing.T) {
	gens := make([]telemetry.GenerationStats, 20)
	for i := range gens {
		gens[i] = telemetry.GenerationStats{Generation: i + 1, PreyCount: 40, PredCount: 10, Eaten: 10}
	}
	// Ideal ratio, zero variation, every predator ate
	if q := computeQuality(gens); q < 0.99 {
		t.Errorf("expected near-perfect quality, got %f", q)
	}
}

func TestEvaluate_RunsSeeds(t *testing.T) {
	cfg := config.Default()
	cfg.Random.Rows = 12
	cfg.Random.Cols = 12
	cfg.Random.Generations = 10

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, []int64{1, 2}, cfg)
	fitness := fe.Evaluate(pv.DefaultVector())
	if fitness > 0 || fitness < -10*1.2 {
		t.Errorf("fitness %f outside [-12, 0]", fitness)
	}
}
