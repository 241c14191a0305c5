package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
)

// checkInvariants verifies the state left by refresh: every animal cell
// references an actor, the ECS world and the population agree, and no
// entity is listed twice. reindex already rejected duplicate occupancy.
func (w *World) checkInvariants() error {
	var orphan *InvariantViolation
	w.cur.Scan(func(p components.Position, cell systems.Cell) {
		if orphan != nil || !cell.Kind.Occupied() {
			return
		}
		if cell.Slot == systems.NoSlot {
			orphan = violationf("orphaned cell at (%d,%d) holds kind %d with no animal", p.Row, p.Col, cell.Kind)
		}
	})
	if orphan != nil {
		return orphan
	}

	alive := 0
	query := w.animalFilter.Query()
	for query.Next() {
		alive++
	}
	if alive != len(w.population) {
		return violationf("population lists %d animals but the world holds %d", len(w.population), alive)
	}

	seen := make(map[ecs.Entity]struct{}, len(w.population))
	for _, e := range w.population {
		if _, dup := seen[e]; dup {
			return violationf("entity %v listed twice in the population", e)
		}
		seen[e] = struct{}{}
	}
	return nil
}
