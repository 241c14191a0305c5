package components

// Position is a cell coordinate on the grid.
type Position struct {
	Row, Col int
}

// Offset returns the position shifted by (dr, dc).
func (p Position) Offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Before reports whether p comes before q in row-major order.
func (p Position) Before(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}
