package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one generation.
const (
	PhaseCollect   = "collect"   // intent collection
	PhaseCommit    = "commit"    // conflict resolution and commit
	PhaseCarry     = "carry"     // non-moving animals copied to the next buffer
	PhaseRefresh   = "refresh"   // births, buffer swap and reindexing
	PhaseCleanup   = "cleanup"   // starvation and eaten prey removal
	PhaseTelemetry = "telemetry" // stats and output
)

// phaseOrder is the fixed reporting order.
var phaseOrder = []string{
	PhaseCollect, PhaseCommit, PhaseCarry, PhaseRefresh, PhaseCleanup, PhaseTelemetry,
}

// PerfSample holds timing data for a single generation.
type PerfSample struct {
	Duration time.Duration
	Phases   map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window of
// generations. Not safe for concurrent use.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	genStart      time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of generations to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 100
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartGeneration begins timing a new generation.
func (p *PerfCollector) StartGeneration() {
	p.genStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
// Phases may repeat within a generation; their durations add up.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndGeneration finishes timing the current generation and records the sample.
func (p *PerfCollector) EndGeneration() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		Duration: now.Sub(p.genStart),
		Phases:   p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgDuration time.Duration
	MinDuration time.Duration
	MaxDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total generation time
	PhasePct map[string]float64

	GenerationsPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total, minDur, maxDur time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.Duration

		if i == 0 || s.Duration < minDur {
			minDur = s.Duration
		}
		if s.Duration > maxDur {
			maxDur = s.Duration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var perSec float64
	if avg > 0 {
		perSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgDuration:          avg,
		MinDuration:          minDur,
		MaxDuration:          maxDur,
		PhaseAvg:             phaseAvg,
		PhasePct:             phasePct,
		GenerationsPerSecond: perSec,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_gen_us", s.AvgDuration.Microseconds(),
		"min_gen_us", s.MinDuration.Microseconds(),
		"max_gen_us", s.MaxDuration.Microseconds(),
		"gens_per_sec", int(s.GenerationsPerSecond),
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_gen_us", s.AvgDuration.Microseconds()),
		slog.Int64("min_gen_us", s.MinDuration.Microseconds()),
		slog.Int64("max_gen_us", s.MaxDuration.Microseconds()),
		slog.Float64("gens_per_sec", s.GenerationsPerSecond),
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int     `csv:"window_end"`
	Scheduler    string  `csv:"scheduler"`
	AvgGenUS     int64   `csv:"avg_gen_us"`
	MinGenUS     int64   `csv:"min_gen_us"`
	MaxGenUS     int64   `csv:"max_gen_us"`
	GensPerSec   float64 `csv:"gens_per_sec"`
	CollectPct   float64 `csv:"collect_pct"`
	CommitPct    float64 `csv:"commit_pct"`
	CarryPct     float64 `csv:"carry_pct"`
	RefreshPct   float64 `csv:"refresh_pct"`
	CleanupPct   float64 `csv:"cleanup_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int, scheduler string) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		Scheduler:    scheduler,
		AvgGenUS:     s.AvgDuration.Microseconds(),
		MinGenUS:     s.MinDuration.Microseconds(),
		MaxGenUS:     s.MaxDuration.Microseconds(),
		GensPerSec:   s.GenerationsPerSecond,
		CollectPct:   s.PhasePct[PhaseCollect],
		CommitPct:    s.PhasePct[PhaseCommit],
		CarryPct:     s.PhasePct[PhaseCarry],
		RefreshPct:   s.PhasePct[PhaseRefresh],
		CleanupPct:   s.PhasePct[PhaseCleanup],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
