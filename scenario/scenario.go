// Package scenario reads and writes the plain-text world description that
// the simulator consumes and produces.
//
// The format is a whitespace separated token stream:
//
//	GEN_PROC_RABBITS GEN_PROC_FOXES GEN_FOOD_FOXES N_GEN R C N
//	KIND row col    (N times, KIND in ROCK, RABBIT, FOX)
package scenario

import (
	"fmt"
	"math"

	"github.com/pthm-cable/warren/components"
)

// Params are the six integers heading every scenario.
type Params struct {
	PreyReproduction     int `yaml:"prey_reproduction" csv:"prey_reproduction"`
	PredatorReproduction int `yaml:"predator_reproduction" csv:"predator_reproduction"`
	PredatorStarvation   int `yaml:"predator_starvation" csv:"predator_starvation"`
	Generations          int `yaml:"generations" csv:"generations"`
	Rows                 int `yaml:"rows" csv:"rows"`
	Cols                 int `yaml:"cols" csv:"cols"`
}

// Reproduction returns the reproduction threshold for a species.
func (p Params) Reproduction(kind components.Kind) int {
	if kind == components.KindPredator {
		return p.PredatorReproduction
	}
	return p.PreyReproduction
}

// Object is one placed item.
type Object struct {
	Kind components.ObjectKind `csv:"kind"`
	Row  int                   `csv:"row"`
	Col  int                   `csv:"col"`
}

// Position returns the object's cell.
func (o Object) Position() components.Position {
	return components.Position{Row: o.Row, Col: o.Col}
}

func (o Object) String() string {
	return fmt.Sprintf("%s %d %d", o.Kind, o.Row, o.Col)
}

// Setup is everything needed to start a simulation.
type Setup struct {
	Params  Params
	Objects []Object
}

// MaxCells bounds rows*cols. Grid slots are int32 population indices, and
// until cleanup an eaten prey shares its cell with the predator, so the
// population can reach twice the cell count.
const MaxCells = math.MaxInt32 / 2

// Validate checks the parameters and returns a *ConfigurationError
// describing the first problem found.
func (p Params) Validate() error {
	checks := []struct {
		field string
		value int
		min   int
	}{
		{"prey_reproduction", p.PreyReproduction, 0},
		{"predator_reproduction", p.PredatorReproduction, 0},
		{"predator_starvation", p.PredatorStarvation, 0},
		{"generations", p.Generations, 0},
		{"rows", p.Rows, 1},
		{"cols", p.Cols, 1},
	}
	for _, c := range checks {
		if c.value < c.min {
			return &ConfigurationError{Field: c.field, Reason: fmt.Sprintf("must be >= %d, got %d", c.min, c.value)}
		}
	}
	if p.Rows > MaxCells/p.Cols {
		return &ConfigurationError{
			Field:  "cols",
			Reason: fmt.Sprintf("%dx%d grid exceeds %d cells", p.Rows, p.Cols, MaxCells),
		}
	}
	return nil
}

// Cells returns rows*cols. Only meaningful for validated parameters.
func (p Params) Cells() int {
	return p.Rows * p.Cols
}

// Validate checks the setup and returns a *ConfigurationError describing
// the first problem found.
func (s *Setup) Validate() error {
	p := s.Params
	if err := p.Validate(); err != nil {
		return err
	}
	if len(s.Objects) > p.Cells() {
		return &ConfigurationError{
			Field:  "object_count",
			Reason: fmt.Sprintf("%d objects do not fit %d cells", len(s.Objects), p.Cells()),
		}
	}

	seen := make(map[components.Position]int, len(s.Objects))
	for i, o := range s.Objects {
		field := fmt.Sprintf("objects[%d]", i)
		if o.Kind > components.ObjectFox {
			return &ConfigurationError{Field: field, Reason: fmt.Sprintf("invalid kind %d", o.Kind)}
		}
		if o.Row < 0 || o.Row >= p.Rows || o.Col < 0 || o.Col >= p.Cols {
			return &ConfigurationError{
				Field:  field,
				Reason: fmt.Sprintf("%s at (%d,%d) is outside the %dx%d grid", o.Kind, o.Row, o.Col, p.Rows, p.Cols),
			}
		}
		if j, dup := seen[o.Position()]; dup {
			return &ConfigurationError{
				Field:  field,
				Reason: fmt.Sprintf("%s at (%d,%d) overlaps objects[%d]", o.Kind, o.Row, o.Col, j),
			}
		}
		seen[o.Position()] = i
	}
	return nil
}

// Counts returns the number of rocks, rabbits and foxes.
func Counts(objects []Object) (rocks, rabbits, foxes int) {
	for _, o := range objects {
		switch o.Kind {
		case components.ObjectRock:
			rocks++
		case components.ObjectRabbit:
			rabbits++
		case components.ObjectFox:
			foxes++
		}
	}
	return rocks, rabbits, foxes
}
