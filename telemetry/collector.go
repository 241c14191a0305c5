package telemetry

import "github.com/pthm-cable/warren/components"

// StepTally counts what happened during one species step. Workers keep
// their own tally and merge with Add.
type StepTally struct {
	Intents   int // intents collected
	Moves     int // winners that changed cell
	Stays     int // winners that kept their cell
	Conflicts int // destinations with more than one intent
	Dropped   int // losing intents
	Births    int
	Eaten     int // prey tombstoned by predators
}

// Add merges o into t.
func (t *StepTally) Add(o StepTally) {
	t.Intents += o.Intents
	t.Moves += o.Moves
	t.Stays += o.Stays
	t.Conflicts += o.Conflicts
	t.Dropped += o.Dropped
	t.Births += o.Births
	t.Eaten += o.Eaten
}

// Collector accumulates events within one generation and produces
// GenerationStats.
type Collector struct {
	prey    StepTally
	pred    StepTally
	eaten   int
	starved int

	totals GenerationStats
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordStep records the tally of a species step.
func (c *Collector) RecordStep(kind components.Kind, t StepTally) {
	if kind == components.KindPredator {
		c.pred.Add(t)
	} else {
		c.prey.Add(t)
	}
}

// RecordCleanup records the animals removed by the cleanup pass.
func (c *Collector) RecordCleanup(eaten, starved int) {
	c.eaten += eaten
	c.starved += starved
}

// Flush produces the stats of the finished generation and resets counters.
func (c *Collector) Flush(generation, preyCount, predCount int) GenerationStats {
	stats := GenerationStats{
		Generation: generation,
		PreyCount:  preyCount,
		PredCount:  predCount,

		PreyIntents:   c.prey.Intents,
		PreyMoves:     c.prey.Moves,
		PreyConflicts: c.prey.Conflicts,
		PreyDropped:   c.prey.Dropped,
		PreyBirths:    c.prey.Births,

		PredIntents:   c.pred.Intents,
		PredMoves:     c.pred.Moves,
		PredConflicts: c.pred.Conflicts,
		PredDropped:   c.pred.Dropped,
		PredBirths:    c.pred.Births,

		Eaten:   c.eaten,
		Starved: c.starved,
	}

	c.totals.PreyBirths += stats.PreyBirths
	c.totals.PredBirths += stats.PredBirths
	c.totals.PreyConflicts += stats.PreyConflicts
	c.totals.PredConflicts += stats.PredConflicts
	c.totals.Eaten += stats.Eaten
	c.totals.Starved += stats.Starved

	c.prey = StepTally{}
	c.pred = StepTally{}
	c.eaten = 0
	c.starved = 0

	return stats
}

// Totals returns births, conflicts and deaths accumulated over all flushed
// generations.
func (c *Collector) Totals() GenerationStats {
	return c.totals
}
