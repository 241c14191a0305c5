package systems

import (
	"testing"

	"github.com/pthm-cable/warren/components"
)

func pos(r, c int) components.Position {
	return components.Position{Row: r, Col: c}
}

// ---------- bounds ----------

func TestGrid_CellAtOutOfBounds(t *testing.T) {
	g := NewGrid(3, 4)

	tests := []struct {
		r, c int
		ok   bool
	}{
		{0, 0, true},
		{2, 3, true},
		{-1, 0, false},
		{0, -1, false},
		{3, 0, false},
		{0, 4, false},
	}
	for _, tt := range tests {
		cell, ok := g.CellAt(tt.r, tt.c)
		if ok != tt.ok {
			t.Errorf("CellAt(%d,%d): expected ok=%v, got %v", tt.r, tt.c, tt.ok, ok)
		}
		if cell.Kind != components.CellEmpty || cell.Slot != NoSlot {
			t.Errorf("CellAt(%d,%d): expected empty unindexed cell, got %+v", tt.r, tt.c, cell)
		}
	}
}

func TestGrid_IndexRoundTrip(t *testing.T) {
	g := NewGrid(3, 5)
	for i := 0; i < g.Len(); i++ {
		if got := g.Index(g.PositionOf(i)); got != i {
			t.Errorf("Index(PositionOf(%d)) = %d", i, got)
		}
	}
}

// ---------- neighbors ----------

func TestGrid_OrthogonalNeighbors(t *testing.T) {
	g := NewGrid(3, 3)

	tests := []struct {
		name string
		at   components.Position
		want []components.Position
	}{
		{"center", pos(1, 1), []components.Position{pos(0, 1), pos(1, 2), pos(2, 1), pos(1, 0)}},
		{"top left", pos(0, 0), []components.Position{pos(0, 1), pos(1, 0)}},
		{"bottom right", pos(2, 2), []components.Position{pos(1, 2), pos(2, 1)}},
		{"top edge", pos(0, 1), []components.Position{pos(0, 2), pos(1, 1), pos(0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.OrthogonalNeighbors(tt.at.Row, tt.at.Col)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("neighbor %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestGrid_SingleCellHasNoNeighbors(t *testing.T) {
	g := NewGrid(1, 1)
	if n := g.OrthogonalNeighbors(0, 0); len(n) != 0 {
		t.Errorf("expected no neighbors, got %v", n)
	}
}

// ---------- slots ----------

func TestGrid_PlaceAndSlots(t *testing.T) {
	g := NewGrid(2, 2)
	g.Place(pos(0, 1), components.CellPrey)
	g.SetSlot(pos(0, 1), 7)

	if c := g.At(pos(0, 1)); c.Kind != components.CellPrey || c.Slot != 7 {
		t.Errorf("expected prey in slot 7, got %+v", c)
	}

	g.ResetSlots()
	if c := g.At(pos(0, 1)); c.Kind != components.CellPrey || c.Slot != NoSlot {
		t.Errorf("ResetSlots should keep the kind and clear the slot, got %+v", c)
	}

	g.Clear()
	if c := g.At(pos(0, 1)); c.Kind != components.CellEmpty {
		t.Errorf("Clear should empty the cell, got %+v", c)
	}
}

func TestGrid_ScanRowMajor(t *testing.T) {
	g := NewGrid(2, 3)
	var seen []components.Position
	g.Scan(func(p components.Position, _ Cell) {
		seen = append(seen, p)
	})
	for i := 1; i < len(seen); i++ {
		if !seen[i-1].Before(seen[i]) {
			t.Fatalf("scan out of order at %d: %v then %v", i, seen[i-1], seen[i])
		}
	}
	if len(seen) != 6 {
		t.Errorf("expected 6 cells, got %d", len(seen))
	}
}
