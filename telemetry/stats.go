package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one generation.
type GenerationStats struct {
	Generation int `csv:"generation"`

	// Population counts after cleanup
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Prey step
	PreyIntents   int `csv:"prey_intents"`
	PreyMoves     int `csv:"prey_moves"`
	PreyConflicts int `csv:"prey_conflicts"`
	PreyDropped   int `csv:"prey_dropped"`
	PreyBirths    int `csv:"prey_births"`

	// Predator step
	PredIntents   int `csv:"pred_intents"`
	PredMoves     int `csv:"pred_moves"`
	PredConflicts int `csv:"pred_conflicts"`
	PredDropped   int `csv:"pred_dropped"`
	PredBirths    int `csv:"pred_births"`

	// Cleanup
	Eaten   int `csv:"eaten"`
	Starved int `csv:"starved"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("prey_moves", s.PreyMoves),
		slog.Int("prey_conflicts", s.PreyConflicts),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_moves", s.PredMoves),
		slog.Int("pred_conflicts", s.PredConflicts),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("eaten", s.Eaten),
		slog.Int("starved", s.Starved),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"prey", s.PreyCount,
		"pred", s.PredCount,
		"prey_moves", s.PreyMoves,
		"prey_conflicts", s.PreyConflicts,
		"prey_dropped", s.PreyDropped,
		"prey_births", s.PreyBirths,
		"pred_moves", s.PredMoves,
		"pred_conflicts", s.PredConflicts,
		"pred_dropped", s.PredDropped,
		"pred_births", s.PredBirths,
		"eaten", s.Eaten,
		"starved", s.Starved,
	)
}

// Distribution summarizes a sample.
type Distribution struct {
	N    int
	Mean float64
	Std  float64
	P10  float64
	P50  float64
	P90  float64
	Max  float64
}

// Describe computes mean, standard deviation and empirical percentiles.
// An empty sample yields the zero Distribution.
func Describe(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if n < 2 {
		std = 0
	}
	return Distribution{
		N:    n,
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  sorted[n-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (d Distribution) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("n", d.N),
		slog.Float64("mean", d.Mean),
		slog.Float64("std", d.Std),
		slog.Float64("p10", d.P10),
		slog.Float64("p50", d.P50),
		slog.Float64("p90", d.P90),
		slog.Float64("max", d.Max),
	)
}

// Summary describes the population at the end of a run.
type Summary struct {
	Generations int
	Rocks       int
	Prey        int
	Predators   int

	PreyAge        Distribution
	PredatorAge    Distribution
	PredatorHunger Distribution
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generations", s.Generations),
		slog.Int("rocks", s.Rocks),
		slog.Int("prey", s.Prey),
		slog.Int("predators", s.Predators),
		slog.Any("prey_age", s.PreyAge),
		slog.Any("predator_age", s.PredatorAge),
		slog.Any("predator_hunger", s.PredatorHunger),
	)
}
