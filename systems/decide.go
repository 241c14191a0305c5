package systems

import "github.com/pthm-cable/warren/components"

// DecideMove returns the cell an animal of the given kind at pos wants to
// move to in generation gen, looking only at the supplied snapshot.
// Returning pos itself means the animal stays.
func DecideMove(kind components.Kind, g *Grid, pos components.Position, gen int) components.Position {
	var nbuf, pbuf, ebuf [len(compass)]components.Position
	neighbors := g.OrthogonalNeighborsInto(nbuf[:0], pos.Row, pos.Col)

	prey := pbuf[:0]
	empty := ebuf[:0]
	for _, n := range neighbors {
		switch g.At(n).Kind {
		case components.CellEmpty:
			empty = append(empty, n)
		case components.CellPrey:
			prey = append(prey, n)
		}
	}

	if kind == components.KindPredator && len(prey) > 0 {
		return choose(prey, pos, gen)
	}
	if len(empty) == 0 {
		return pos
	}
	return choose(empty, pos, gen)
}

// choose picks candidates[(gen+row+col) mod len].
func choose(candidates []components.Position, pos components.Position, gen int) components.Position {
	idx := (gen + pos.Row + pos.Col) % len(candidates)
	if idx < 0 {
		idx += len(candidates)
	}
	return candidates[idx]
}
