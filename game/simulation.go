package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/scenario"
	"github.com/pthm-cable/warren/telemetry"
)

// Phase is a state of the generation loop.
type Phase uint8

const (
	PhaseGenerationStart Phase = iota
	PhasePreyStep
	PhasePredatorStep
	PhaseCleanup
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseGenerationStart:
		return "generation_start"
	case PhasePreyStep:
		return "prey_step"
	case PhasePredatorStep:
		return "predator_step"
	case PhaseCleanup:
		return "cleanup"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

// Options tune how a simulation executes. They never change its result.
type Options struct {
	Scheduler         string // config.SchedulerSequential or config.SchedulerParallel
	Workers           int    // parallel workers, 0 = GOMAXPROCS
	ParallelThreshold int    // items below which parallel phases run inline
	CheckInvariants   bool

	LogEvery   int // log generation stats every N generations, 0 = off
	PerfWindow int // generations per perf window, 0 = off

	Output *telemetry.OutputManager // nil disables CSV output
}

// OptionsFromConfig derives options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Scheduler:         cfg.Simulation.Scheduler,
		Workers:           cfg.Derived.Workers,
		ParallelThreshold: cfg.Simulation.ParallelThreshold,
		CheckInvariants:   cfg.Simulation.CheckInvariants,
		LogEvery:          cfg.Telemetry.LogEvery,
		PerfWindow:        cfg.Telemetry.PerfWindow,
	}
}

// Simulation drives a World through its generations.
type Simulation struct {
	world *World
	sched scheduler
	opts  Options

	phase      Phase
	generation int // generation in progress or last finished, from 1
	err        error

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	last      telemetry.GenerationStats
}

// New validates setup and prepares a simulation at generation 0.
func New(setup *scenario.Setup, opts Options) (*Simulation, error) {
	var sched scheduler
	switch opts.Scheduler {
	case config.SchedulerSequential:
		sched = sequentialScheduler{}
	case config.SchedulerParallel, "":
		sched = newParallelScheduler(opts.Workers, opts.ParallelThreshold)
	default:
		return nil, fmt.Errorf("unknown scheduler %q", opts.Scheduler)
	}

	w, err := NewWorld(setup)
	if err != nil {
		return nil, err
	}

	window := opts.PerfWindow
	if window <= 0 {
		window = 1
	}

	s := &Simulation{
		world:     w,
		sched:     sched,
		opts:      opts,
		collector: telemetry.NewCollector(),
		perf:      telemetry.NewPerfCollector(window),
	}
	if w.params.Generations == 0 {
		s.phase = PhaseDone
	}
	return s, nil
}

// Advance executes the pending phase and returns the phase that follows.
// After an error the simulation is stuck and every call returns it.
func (s *Simulation) Advance() (Phase, error) {
	if s.err != nil {
		return s.phase, s.err
	}

	current := s.phase
	next, err := s.execute(current)
	if err != nil {
		var iv *InvariantViolation
		if errors.As(err, &iv) {
			iv.Generation = s.generation
			iv.Phase = current
		}
		s.err = fmt.Errorf("generation %d %s: %w", s.generation, current, err)
		return s.phase, s.err
	}

	s.phase = next
	return next, nil
}

func (s *Simulation) execute(phase Phase) (Phase, error) {
	w := s.world
	switch phase {
	case PhaseGenerationStart:
		s.generation++
		s.perf.StartGeneration()
		return PhasePreyStep, nil

	case PhasePreyStep:
		if err := s.stepSpecies(components.KindPrey); err != nil {
			return phase, err
		}
		return PhasePredatorStep, nil

	case PhasePredatorStep:
		if err := s.stepSpecies(components.KindPredator); err != nil {
			return phase, err
		}
		return PhaseCleanup, nil

	case PhaseCleanup:
		s.perf.StartPhase(telemetry.PhaseCleanup)
		eaten, starved, err := w.cleanup()
		if err != nil {
			return phase, err
		}
		s.collector.RecordCleanup(eaten, starved)
		if err := s.check(); err != nil {
			return phase, err
		}

		s.perf.StartPhase(telemetry.PhaseTelemetry)
		s.flushTelemetry()

		if s.generation >= w.params.Generations {
			return PhaseDone, nil
		}
		return PhaseGenerationStart, nil

	case PhaseDone:
		return PhaseDone, nil
	}
	return phase, fmt.Errorf("unknown phase %s", phase)
}

func (s *Simulation) stepSpecies(kind components.Kind) error {
	tally, err := s.world.stepSpecies(kind, s.generation, s.sched, s.perf)
	if err != nil {
		return err
	}
	s.collector.RecordStep(kind, tally)
	return s.check()
}

func (s *Simulation) check() error {
	if !s.opts.CheckInvariants {
		return nil
	}
	return s.world.checkInvariants()
}

// Step runs until the current generation has finished.
func (s *Simulation) Step() error {
	for s.phase != PhaseDone {
		next, err := s.Advance()
		if err != nil {
			return err
		}
		if next == PhaseGenerationStart {
			break
		}
	}
	return nil
}

// Run executes all remaining generations.
func (s *Simulation) Run() error {
	for s.phase != PhaseDone {
		if _, err := s.Advance(); err != nil {
			return err
		}
	}
	slog.Debug("simulation finished",
		"generations", s.generation,
		"scheduler", s.sched.name(),
		"totals", s.collector.Totals(),
	)
	return nil
}

// Close stops background workers.
func (s *Simulation) Close() {
	s.sched.stop()
}

// Phase returns the phase Advance will execute next.
func (s *Simulation) Phase() Phase { return s.phase }

// Generation returns the generation in progress or last finished.
func (s *Simulation) Generation() int { return s.generation }

// Scheduler returns the scheduler name.
func (s *Simulation) Scheduler() string { return s.sched.name() }

// World exposes the simulated state. Callers must not mutate it.
func (s *Simulation) World() *World { return s.world }

// Params returns the scenario parameters for output, with the generation
// count reported as 0.
func (s *Simulation) Params() scenario.Params {
	p := s.world.params
	p.Generations = 0
	return p
}

// Objects lists the current rocks and animals in row-major order.
func (s *Simulation) Objects() []scenario.Object {
	return s.world.Objects()
}

// Stats returns the statistics of the last finished generation.
func (s *Simulation) Stats() telemetry.GenerationStats { return s.last }

// PerfStats returns timing statistics over the recent window.
func (s *Simulation) PerfStats() telemetry.PerfStats { return s.perf.Stats() }
