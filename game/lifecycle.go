package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
)

// spawn creates an animal with zeroed counters. It is a structural ECS
// change and must only run single-threaded, outside of any step phase that
// holds actor pointers.
func (w *World) spawn(kind components.Kind, at components.Position) ecs.Entity {
	id := w.nextID
	w.nextID++

	org := components.Organism{ID: id, Kind: kind}
	pos := at
	life := components.Life{}

	if kind == components.KindPredator {
		hunger := components.Hunger{}
		return w.predMapper.NewEntity(&org, &pos, &life, &hunger)
	}
	return w.preyMapper.NewEntity(&org, &pos, &life)
}

// materializeBirths turns the births recorded during commit into entities.
// Births are created in row-major order of their cell so that entity IDs do
// not depend on commit scheduling.
func (w *World) materializeBirths() {
	births := w.births.Items()
	if len(births) == 0 {
		return
	}
	sortBirths(births)
	for _, b := range births {
		w.nextPop.Append(w.spawn(b.kind, b.at))
	}
}

// cleanup removes eaten prey and starved predators after both species
// stepped.
func (w *World) cleanup() (eaten, starved int, err error) {
	// First pass: decide (actors hold pointers that removal invalidates)
	var doomed []ecs.Entity
	kept := w.population[:0]
	for _, a := range w.actors {
		switch {
		case a.life.Eaten:
			eaten++
			doomed = append(doomed, a.entity)
		case a.hunger != nil && a.hunger.SinceEat >= w.params.PredatorStarvation:
			starved++
			w.cur.Place(*a.pos, components.CellEmpty)
			doomed = append(doomed, a.entity)
		default:
			kept = append(kept, a.entity)
		}
	}
	w.population = kept

	// Second pass: remove entities
	for _, e := range doomed {
		w.world.RemoveEntity(e)
	}

	return eaten, starved, w.refresh()
}
