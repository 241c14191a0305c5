package game

import (
	"sync"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// committer resolves destination buckets and writes the winners into the
// next buffer. Distinct destinations touch distinct cells and actors, so
// ranges of destinations may be committed concurrently.
type committer struct {
	w          *World
	kind       components.Kind
	threshold  int
	concurrent bool

	mu    sync.Mutex
	tally telemetry.StepTally
}

// commitRange handles dests[start:end] and merges its tally.
func (c *committer) commitRange(dests []int, start, end int) error {
	var tally telemetry.StepTally
	for _, idx := range dests[start:end] {
		if err := c.commitDestination(idx, &tally); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.tally.Add(tally)
	c.mu.Unlock()
	return nil
}

func (c *committer) commitDestination(idx int, tally *telemetry.StepTally) error {
	bucket := c.w.buckets.Bucket(idx)
	win, ok := systems.Resolve(c.kind, bucket)
	if !ok {
		p := c.w.cur.PositionOf(idx)
		return violationf("no winner for touched destination (%d,%d)", p.Row, p.Col)
	}

	if len(bucket) > 1 {
		tally.Conflicts++
		for _, in := range bucket {
			if in.Slot == win.Slot {
				continue
			}
			tally.Dropped++
			c.carry(c.w.actors[in.Slot])
		}
	}

	c.apply(win, tally)
	return nil
}

// apply moves the winner, ages it and handles eating and reproduction.
func (c *committer) apply(win systems.Intent, tally *telemetry.StepTally) {
	w := c.w
	a := w.actors[win.Slot]

	ate := false
	if c.kind == components.KindPredator {
		if target := w.cur.At(win.To); target.Kind == components.CellPrey {
			w.actors[target.Slot].life.Eaten = true
			ate = true
			tally.Eaten++
		}
	}

	*a.pos = win.To
	w.next.Place(win.To, components.CellFor(c.kind))

	a.life.Age++
	a.life.SinceReproduce++
	if a.hunger != nil {
		if ate {
			a.hunger.SinceEat = 0
		} else {
			a.hunger.SinceEat++
		}
	}

	if win.Stays() {
		tally.Stays++
	} else {
		tally.Moves++
		if a.life.SinceReproduce >= c.threshold {
			a.life.SinceReproduce = 0
			w.next.Place(win.From, components.CellFor(c.kind))
			c.addBirth(birth{kind: c.kind, at: win.From})
			tally.Births++
		}
	}

	c.addNext(a)
}

// carry copies an actor into the next buffer unchanged. Eaten prey keep
// their population entry but no longer occupy a cell.
func (c *committer) carry(a actor) {
	if !a.life.Eaten {
		c.w.next.Place(*a.pos, components.CellFor(a.kind))
	}
	c.addNext(a)
}

func (c *committer) addNext(a actor) {
	if c.concurrent {
		c.w.nextPop.Add(a.entity)
	} else {
		c.w.nextPop.Append(a.entity)
	}
}

func (c *committer) addBirth(b birth) {
	if c.concurrent {
		c.w.births.Add(b)
	} else {
		c.w.births.Append(b)
	}
}
