// Package game runs the rabbit/fox ecosystem: it owns the animals, the
// double-buffered grid, and the per-generation step.
package game

import (
	"fmt"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/scenario"
	"github.com/pthm-cable/warren/systems"
)

// actor is the per-step view of one population entry. Component pointers
// are resolved single-threaded in refresh and stay valid until the next
// structural ECS change (spawn or removal).
type actor struct {
	entity ecs.Entity
	kind   components.Kind
	pos    *components.Position
	life   *components.Life
	hunger *components.Hunger // nil for prey
}

// birth is an offspring waiting to be materialized after commit.
type birth struct {
	kind components.Kind
	at   components.Position
}

// World holds the complete simulation state.
type World struct {
	params scenario.Params

	world *ecs.World

	// Entity mappers per species
	preyMapper *ecs.Map3[
		components.Organism,
		components.Position,
		components.Life,
	]
	predMapper *ecs.Map4[
		components.Organism,
		components.Position,
		components.Life,
		components.Hunger,
	]
	animalFilter *ecs.Filter1[components.Organism]

	// Individual component mappers for lookups
	orgMap    *ecs.Map1[components.Organism]
	posMap    *ecs.Map1[components.Position]
	lifeMap   *ecs.Map1[components.Life]
	hungerMap *ecs.Map1[components.Hunger]

	// Double-buffered occupancy
	cur   *systems.Grid
	next  *systems.Grid
	rocks []components.Position

	// population owns membership; actors[i] is the view of population[i].
	population []ecs.Entity
	actors     []actor

	// Per-step scratch
	buckets *systems.IntentBuckets
	nextPop systems.SyncList[ecs.Entity]
	births  systems.SyncList[birth]

	nextID uint32
}

// NewWorld builds the initial grid and population from a setup.
func NewWorld(setup *scenario.Setup) (*World, error) {
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	p := setup.Params

	world := ecs.NewWorld()
	w := &World{
		params: p,
		world:  world,
		preyMapper: ecs.NewMap3[
			components.Organism,
			components.Position,
			components.Life,
		](world),
		predMapper: ecs.NewMap4[
			components.Organism,
			components.Position,
			components.Life,
			components.Hunger,
		](world),
		animalFilter: ecs.NewFilter1[components.Organism](world),
		orgMap:       ecs.NewMap1[components.Organism](world),
		posMap:       ecs.NewMap1[components.Position](world),
		lifeMap:      ecs.NewMap1[components.Life](world),
		hungerMap:    ecs.NewMap1[components.Hunger](world),
		cur:          systems.NewGrid(p.Rows, p.Cols),
		next:         systems.NewGrid(p.Rows, p.Cols),
		buckets:      systems.NewIntentBuckets(p.Rows, p.Cols),
	}

	for _, o := range setup.Objects {
		pos := o.Position()
		w.cur.Place(pos, o.Kind.Cell())
		switch o.Kind {
		case components.ObjectRock:
			w.rocks = append(w.rocks, pos)
		case components.ObjectRabbit:
			w.population = append(w.population, w.spawn(components.KindPrey, pos))
		case components.ObjectFox:
			w.population = append(w.population, w.spawn(components.KindPredator, pos))
		}
	}

	if err := w.refresh(); err != nil {
		return nil, fmt.Errorf("indexing initial world: %w", err)
	}
	return w, nil
}

// Params returns the scenario parameters.
func (w *World) Params() scenario.Params {
	return w.params
}

// Grid returns the current snapshot. Callers must not modify it.
func (w *World) Grid() *systems.Grid {
	return w.cur
}

// Population returns the number of animals, including prey eaten in the
// current generation that cleanup has not removed yet.
func (w *World) Population() int {
	return len(w.population)
}

// Counts returns the number of live (not eaten) prey and predators.
func (w *World) Counts() (prey, predators int) {
	for _, a := range w.actors {
		if a.life.Eaten {
			continue
		}
		if a.kind == components.KindPredator {
			predators++
		} else {
			prey++
		}
	}
	return prey, predators
}

// Objects lists rocks and animals in row-major order of the grid.
func (w *World) Objects() []scenario.Object {
	var out []scenario.Object
	w.cur.Scan(func(p components.Position, cell systems.Cell) {
		if kind, ok := components.ObjectForCell(cell.Kind); ok {
			out = append(out, scenario.Object{Kind: kind, Row: p.Row, Col: p.Col})
		}
	})
	return out
}

// Animal is a read-only copy of one animal's state.
type Animal struct {
	ID       uint32
	Kind     components.Kind
	Position components.Position
	Life     components.Life
	SinceEat int
}

// Animals returns a copy of every population entry in population order.
func (w *World) Animals() []Animal {
	out := make([]Animal, 0, len(w.actors))
	for _, a := range w.actors {
		an := Animal{
			ID:       w.orgMap.Get(a.entity).ID,
			Kind:     a.kind,
			Position: *a.pos,
			Life:     *a.life,
		}
		if a.hunger != nil {
			an.SinceEat = a.hunger.SinceEat
		}
		out = append(out, an)
	}
	return out
}

// refresh rebuilds the actor view from the population, sorts both into
// row-major order and reindexes the current grid.
func (w *World) refresh() error {
	w.actors = w.actors[:0]
	for _, e := range w.population {
		w.actors = append(w.actors, w.view(e))
	}

	// Eaten prey share a cell with their predator and sort after it.
	sort.Slice(w.actors, func(i, j int) bool {
		a, b := w.actors[i], w.actors[j]
		if *a.pos != *b.pos {
			return a.pos.Before(*b.pos)
		}
		return !a.life.Eaten && b.life.Eaten
	})
	for i := range w.actors {
		w.population[i] = w.actors[i].entity
	}

	return w.reindex()
}

// view resolves the component pointers of a live entity.
func (w *World) view(e ecs.Entity) actor {
	org := w.orgMap.Get(e)
	a := actor{
		entity: e,
		kind:   org.Kind,
		pos:    w.posMap.Get(e),
		life:   w.lifeMap.Get(e),
	}
	if org.Kind == components.KindPredator {
		a.hunger = w.hungerMap.Get(e)
	}
	return a
}

// reindex points every occupied cell of the current grid at its actor and
// rejects duplicate occupancy or kind mismatches.
func (w *World) reindex() error {
	w.cur.ResetSlots()
	for i, a := range w.actors {
		if a.life.Eaten {
			continue
		}
		p := *a.pos
		cell, ok := w.cur.CellAt(p.Row, p.Col)
		if !ok {
			return violationf("%s at (%d,%d) is off the grid", a.kind, p.Row, p.Col)
		}
		if want := components.CellFor(a.kind); cell.Kind != want {
			return violationf("%s at (%d,%d) but cell holds kind %d", a.kind, p.Row, p.Col, cell.Kind)
		}
		if cell.Slot != systems.NoSlot {
			return violationf("duplicate occupancy at (%d,%d): slots %d and %d", p.Row, p.Col, cell.Slot, i)
		}
		w.cur.SetSlot(p, int32(i))
	}
	return nil
}
