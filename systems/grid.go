// Package systems provides the per-step building blocks of the simulation:
// the occupancy grid, movement decisions and conflict resolution.
package systems

import (
	"github.com/pthm-cable/warren/components"
)

// NoSlot marks a cell whose occupant has not been indexed.
const NoSlot int32 = -1

// Cell is one grid square. Slot is a non-owning index into the current
// population view and is only meaningful for occupied cells.
type Cell struct {
	Kind components.CellKind
	Slot int32
}

// compass lists the orthogonal offsets clockwise from North.
var compass = [4]components.Position{
	{Row: -1, Col: 0}, // N
	{Row: 0, Col: 1},  // E
	{Row: 1, Col: 0},  // S
	{Row: 0, Col: -1}, // W
}

// Grid is a bounded rows x cols array of cells stored row-major.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	g.Clear()
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Clear empties every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{Kind: components.CellEmpty, Slot: NoSlot}
	}
}

// InBounds reports whether (r, c) lies on the grid.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Index returns the flat index of an in-bounds position.
func (g *Grid) Index(p components.Position) int {
	return p.Row*g.cols + p.Col
}

// PositionOf is the inverse of Index.
func (g *Grid) PositionOf(idx int) components.Position {
	return components.Position{Row: idx / g.cols, Col: idx % g.cols}
}

// CellAt returns the cell at (r, c). ok is false when out of bounds.
func (g *Grid) CellAt(r, c int) (cell Cell, ok bool) {
	if !g.InBounds(r, c) {
		return Cell{Kind: components.CellEmpty, Slot: NoSlot}, false
	}
	return g.cells[r*g.cols+c], true
}

// At returns the cell at an in-bounds position.
func (g *Grid) At(p components.Position) Cell {
	return g.cells[g.Index(p)]
}

// Place marks p as holding kind without an indexed occupant.
func (g *Grid) Place(p components.Position, kind components.CellKind) {
	g.cells[g.Index(p)] = Cell{Kind: kind, Slot: NoSlot}
}

// SetSlot records the population index of the occupant at p.
func (g *Grid) SetSlot(p components.Position, slot int32) {
	g.cells[g.Index(p)].Slot = slot
}

// OrthogonalNeighborsInto appends the in-bounds N, E, S, W neighbors of
// (r, c) to dst and returns the updated slice. Reuse dst to avoid allocations.
func (g *Grid) OrthogonalNeighborsInto(dst []components.Position, r, c int) []components.Position {
	origin := components.Position{Row: r, Col: c}
	for _, d := range compass {
		n := origin.Offset(d.Row, d.Col)
		if g.InBounds(n.Row, n.Col) {
			dst = append(dst, n)
		}
	}
	return dst
}

// OrthogonalNeighbors returns the in-bounds N, E, S, W neighbors of (r, c).
func (g *Grid) OrthogonalNeighbors(r, c int) []components.Position {
	return g.OrthogonalNeighborsInto(make([]components.Position, 0, len(compass)), r, c)
}

// Scan calls fn for every cell in row-major order.
func (g *Grid) Scan(fn func(p components.Position, cell Cell)) {
	for i, cell := range g.cells {
		fn(g.PositionOf(i), cell)
	}
}

// ResetSlots clears every occupant index, keeping cell kinds.
func (g *Grid) ResetSlots() {
	for i := range g.cells {
		g.cells[i].Slot = NoSlot
	}
}
