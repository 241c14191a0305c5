package components

// CellKind is what a grid cell holds.
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellRock
	CellPrey
	CellPredator
)

// CellFor returns the cell kind an animal of kind k occupies.
func CellFor(k Kind) CellKind {
	if k == KindPredator {
		return CellPredator
	}
	return CellPrey
}

// Occupied reports whether the cell holds an animal.
func (c CellKind) Occupied() bool {
	return c == CellPrey || c == CellPredator
}
