// Package main searches breeding and starvation thresholds that keep both
// species alive on generated worlds.
package main

import (
	"math"

	"github.com/pthm-cable/warren/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "prey_reproduction", Path: "random.prey_reproduction", Min: 1, Max: 20, Default: 3},
			{Name: "predator_reproduction", Path: "random.predator_reproduction", Min: 1, Max: 30, Default: 6},
			{Name: "predator_starvation", Path: "random.predator_starvation", Min: 1, Max: 30, Default: 5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Round clamps values to their bounds and rounds them to the integer
// thresholds the simulation uses.
func (pv *ParamVector) Round(v []float64) []int {
	out := make([]int, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Round(v[i])
		val = math.Max(spec.Min, math.Min(spec.Max, val))
		out[i] = int(val)
	}
	return out
}

// ApplyToConfig writes rounded parameter values into the random world
// section of cfg. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	rounded := pv.Round(values)
	cfg.Random.PreyReproduction = rounded[0]
	cfg.Random.PredatorReproduction = rounded[1]
	cfg.Random.PredatorStarvation = rounded[2]
}
