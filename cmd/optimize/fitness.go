package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/scenario"
	"github.com/pthm-cable/warren/telemetry"
)

// Minimum viable population: if either species stays below this for
// extinctionGrace consecutive generations, it counts as functionally extinct.
const (
	minViablePop    = 3
	extinctionGrace = 10
)

// FitnessEvaluator runs simulations on generated worlds and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survived int // generations before functional extinction
	stats    []telemetry.GenerationStats
	err      error
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(&cfg, s)
			quality := computeQuality(result.stats)
			results[idx] = seedResult{
				fitness: computeFitness(result, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes one run until functional extinction or the
// configured generation count.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	setup := scenario.Random(seed, cfg.Random.Params(), cfg.Random.Density)

	// Seeds already run concurrently; each simulation stays on one goroutine.
	opts := game.OptionsFromConfig(cfg)
	opts.Scheduler = config.SchedulerSequential
	opts.PerfWindow = 0
	opts.LogEvery = 0

	result := &runResult{}
	sim, err := game.New(setup, opts)
	if err != nil {
		result.err = err
		return result
	}
	defer sim.Close()

	var preyBelow, predBelow int
	for sim.Phase() != game.PhaseDone {
		if err := sim.Step(); err != nil {
			result.err = err
			return result
		}

		stats := sim.Stats()
		result.stats = append(result.stats, stats)
		result.survived = stats.Generation

		// Hard extinction: either species completely gone
		if stats.PreyCount == 0 || stats.PredCount == 0 {
			return result
		}

		// Functional extinction: species below minimum viable population too long
		if stats.PreyCount < minViablePop {
			preyBelow++
		} else {
			preyBelow = 0
		}
		if stats.PredCount < minViablePop {
			predBelow++
		} else {
			predBelow = 0
		}
		if preyBelow >= extinctionGrace || predBelow >= extinctionGrace {
			return result
		}
	}
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survived × (1.0 + 0.2 × quality)). Survival dominates;
// quality adds up to 20% bonus to differentiate configs with similar survival.
func computeFitness(r *runResult, quality float64) float64 {
	if r.err != nil {
		return 0
	}
	return -(float64(r.survived) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.40
	qualityWeightStability = 0.35
	qualityWeightHunting   = 0.25

	qualityWarmup = 5 // skip first N generations
)

// computeQuality computes ecosystem quality in [0, 1] from generation stats.
func computeQuality(gens []telemetry.GenerationStats) float64 {
	if len(gens) <= qualityWarmup {
		return 0
	}
	valid := gens[qualityWarmup:]

	var ratioSum, huntSum float64
	var ratioCount, huntCount int
	preyCounts := make([]float64, 0, len(valid))
	predCounts := make([]float64, 0, len(valid))

	for _, g := range valid {
		if g.PreyCount < minViablePop || g.PredCount < minViablePop {
			continue
		}
		preyCounts = append(preyCounts, float64(g.PreyCount))
		predCounts = append(predCounts, float64(g.PredCount))

		// Population ratio score, peaking at four prey per predator
		ratio := float64(g.PreyCount) / float64(g.PredCount)
		logErr := math.Log(ratio / 4.0)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++

		// Hunting: fraction of predators that ate this generation
		huntSum += clamp01(float64(g.Eaten) / float64(g.PredCount))
		huntCount++
	}

	if ratioCount == 0 {
		return 0
	}

	ratioScore := ratioSum / float64(ratioCount)

	stabilityScore := 0.0
	if len(preyCounts) >= 2 {
		cvPrey := cv(preyCounts)
		cvPred := cv(predCounts)
		stabilityScore = math.Exp(-(cvPrey*cvPrey + cvPred*cvPred))
	}

	huntScore := huntSum / float64(huntCount)

	quality := qualityWeightRatio*ratioScore +
		qualityWeightStability*stabilityScore +
		qualityWeightHunting*huntScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
