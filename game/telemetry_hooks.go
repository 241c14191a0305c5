package game

import (
	"log/slog"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/telemetry"
)

// flushTelemetry closes the books on a finished generation. Output
// failures are logged and never stop the simulation.
func (s *Simulation) flushTelemetry() {
	prey, pred := s.world.Counts()
	s.last = s.collector.Flush(s.generation, prey, pred)

	if s.opts.LogEvery > 0 && s.generation%s.opts.LogEvery == 0 {
		s.last.LogStats()
	}
	if err := s.opts.Output.WriteGeneration(s.last); err != nil {
		slog.Error("failed to write generation stats", "error", err)
	}

	s.perf.EndGeneration()
	if s.opts.PerfWindow <= 0 || s.generation%s.opts.PerfWindow != 0 {
		return
	}

	perfStats := s.perf.Stats()
	if s.opts.LogEvery > 0 {
		perfStats.LogStats()
	}
	if err := s.opts.Output.WritePerf(perfStats, s.generation, s.sched.name()); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Summary describes the current population.
func (s *Simulation) Summary() telemetry.Summary {
	var preyAge, predAge, hunger []float64
	for _, a := range s.world.Animals() {
		if a.Life.Eaten {
			continue
		}
		if a.Kind == components.KindPredator {
			predAge = append(predAge, float64(a.Life.Age))
			hunger = append(hunger, float64(a.SinceEat))
		} else {
			preyAge = append(preyAge, float64(a.Life.Age))
		}
	}
	return telemetry.Summary{
		Generations:    s.generation,
		Rocks:          len(s.world.rocks),
		Prey:           len(preyAge),
		Predators:      len(predAge),
		PreyAge:        telemetry.Describe(preyAge),
		PredatorAge:    telemetry.Describe(predAge),
		PredatorHunger: telemetry.Describe(hunger),
	}
}

// LogSummary logs the current population summary.
func (s *Simulation) LogSummary() {
	slog.Info("world state",
		"scheduler", s.sched.name(),
		"summary", s.Summary(),
	)
}
