package game

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// stepSpecies advances one species by one generation: intents are
// collected from the current snapshot, resolved per destination and
// committed into the next buffer, which then becomes current.
func (w *World) stepSpecies(kind components.Kind, gen int, sched scheduler, perf *telemetry.PerfCollector) (telemetry.StepTally, error) {
	n := len(w.actors)
	concurrent := sched.concurrent(n)

	w.next.Clear()
	for _, r := range w.rocks {
		w.next.Place(r, components.CellRock)
	}
	w.buckets.Reset()
	w.nextPop.Reset()
	w.births.Reset()

	// Phase A: collect intents (reads the current snapshot only)
	perf.StartPhase(telemetry.PhaseCollect)
	sched.forEach(n, func(start, end int) {
		w.collectRange(kind, gen, start, end, concurrent)
	})

	// Phase B: resolve and commit per destination
	perf.StartPhase(telemetry.PhaseCommit)
	c := &committer{
		w:          w,
		kind:       kind,
		threshold:  w.params.Reproduction(kind),
		concurrent: sched.concurrent(len(w.buckets.Destinations())),
	}
	c.tally.Intents = w.buckets.Len()
	dests := w.buckets.Destinations()
	if err := sched.forEachErr(len(dests), func(start, end int) error {
		return c.commitRange(dests, start, end)
	}); err != nil {
		return c.tally, fmt.Errorf("committing %s step: %w", kind, err)
	}

	// Phase C: carry the idle species (after commit, so eaten prey are known)
	perf.StartPhase(telemetry.PhaseCarry)
	c.concurrent = concurrent
	sched.forEach(n, func(start, end int) {
		for _, a := range w.actors[start:end] {
			if a.kind != kind || a.life.Eaten {
				c.carry(a)
			}
		}
	})

	// Phase D: births, swap and reindex (single-threaded)
	perf.StartPhase(telemetry.PhaseRefresh)
	w.materializeBirths()
	w.cur, w.next = w.next, w.cur
	w.population = append(w.population[:0], w.nextPop.Items()...)
	if err := w.refresh(); err != nil {
		return c.tally, fmt.Errorf("indexing after %s step: %w", kind, err)
	}

	return c.tally, nil
}

// collectRange decides a move for every live actor of kind in
// actors[start:end].
func (w *World) collectRange(kind components.Kind, gen, start, end int, concurrent bool) {
	for i := start; i < end; i++ {
		a := w.actors[i]
		if a.kind != kind || a.life.Eaten {
			continue
		}
		in := systems.Intent{
			Slot:           int32(i),
			From:           *a.pos,
			To:             systems.DecideMove(kind, w.cur, *a.pos, gen),
			SinceReproduce: a.life.SinceReproduce,
		}
		if a.hunger != nil {
			in.SinceEat = a.hunger.SinceEat
		}
		if concurrent {
			w.buckets.Add(in)
		} else {
			w.buckets.Append(in)
		}
	}
}

// sortBirths orders births by cell in row-major order.
func sortBirths(births []birth) {
	sort.Slice(births, func(i, j int) bool {
		return births[i].at.Before(births[j].at)
	})
}
