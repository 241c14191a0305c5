package scenario

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestLoad_Valid(t *testing.T) {
	in := `2 4 3 6 5 5 4
ROCK 0 0
RABBIT 0 2
FOX 4 4
RABBIT 2 3`
	s, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Params{PreyReproduction: 2, PredatorReproduction: 4, PredatorStarvation: 3, Generations: 6, Rows: 5, Cols: 5}
	if s.Params != want {
		t.Errorf("expected params %+v, got %+v", want, s.Params)
	}
	if len(s.Objects) != 4 {
		t.Fatalf("expected 4 objects, got %d", len(s.Objects))
	}
	if s.Objects[2] != (Object{Kind: components.ObjectFox, Row: 4, Col: 4}) {
		t.Errorf("unexpected third object %v", s.Objects[2])
	}

	rocks, rabbits, foxes := Counts(s.Objects)
	if rocks != 1 || rabbits != 2 || foxes != 1 {
		t.Errorf("expected counts 1/2/1, got %d/%d/%d", rocks, rabbits, foxes)
	}
}

func TestLoad_WhitespaceIsFree(t *testing.T) {
	in := "1\n1\n1 1\t2 2 1   RABBIT\n\n1 1\n"
	s, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Objects[0].Row != 1 || s.Objects[0].Col != 1 {
		t.Errorf("unexpected object %v", s.Objects[0])
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"empty", "", "prey_reproduction"},
		{"truncated header", "1 1 1 1 3", "cols"},
		{"missing count", "1 1 1 1 3 3", "object_count"},
		{"truncated object", "1 1 1 1 3 3 1 ROCK 0", "objects[0].col"},
		{"missing object", "1 1 1 1 3 3 2 ROCK 0 0", "objects[1].kind"},
		{"not a number", "1 x 1 1 3 3 0", "predator_reproduction"},
		{"negative count", "1 1 1 1 3 3 -1", "object_count"},
		{"unknown kind", "1 1 1 1 3 3 1 WOLF 0 0", "objects[0].kind"},
		{"lower case kind", "1 1 1 1 3 3 1 rock 0 0", "objects[0].kind"},
		{"negative threshold", "-1 1 1 1 3 3 0", "prey_reproduction"},
		{"negative starvation", "1 1 -2 1 3 3 0", "predator_starvation"},
		{"negative generations", "1 1 1 -1 3 3 0", "generations"},
		{"zero rows", "1 1 1 1 0 3 0", "rows"},
		{"zero cols", "1 1 1 1 3 0 0", "cols"},
		{"out of range", "1 1 1 1 3 3 1 FOX 3 0", "objects[0]"},
		{"negative coordinate", "1 1 1 1 3 3 1 FOX 0 -1", "objects[0]"},
		{"overlap", "1 1 1 1 3 3 2 FOX 1 1 ROCK 1 1", "objects[1]"},
		{"grid too large", "1 1 1 1 4294967296 4294967296 1 RABBIT 5 5", "cols"},
		{"grid just too large", "1 1 1 1 2 1073741824 0", "cols"},
		{"more objects than cells", "1 1 1 1 2 2 5 ROCK 0 0", "object_count"},
		{"huge object count", "1 1 1 1 2 2 9223372036854775807", "object_count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.in))
			var ce *ConfigurationError
			if !errors.As(err, &ce) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
			if ce.Field != tt.field {
				t.Errorf("expected field %q, got %q (%v)", tt.field, ce.Field, err)
			}
		})
	}
}

func TestLoad_TruncatedUnwrapsEOF(t *testing.T) {
	_, err := Load(strings.NewReader("1 1 1"))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF in chain, got %v", err)
	}
}

func TestLoad_ZeroThresholdsAndGenerationsAllowed(t *testing.T) {
	if _, err := Load(strings.NewReader("0 0 0 0 1 1 0")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParams_ValidateGridSize(t *testing.T) {
	ok := Params{Rows: 1, Cols: MaxCells}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected %d cells to be accepted, got %v", MaxCells, err)
	}

	tooBig := Params{Rows: 2, Cols: MaxCells/2 + 1}
	var ce *ConfigurationError
	if err := tooBig.Validate(); !errors.As(err, &ce) || ce.Field != "cols" {
		t.Errorf("expected cols *ConfigurationError, got %v", err)
	}
}

func TestSetup_ValidateRejectsTooManyObjects(t *testing.T) {
	s := &Setup{
		Params: Params{Rows: 1, Cols: 1},
		Objects: []Object{
			{Kind: components.ObjectRock, Row: 0, Col: 0},
			{Kind: components.ObjectFox, Row: 0, Col: 0},
		},
	}
	var ce *ConfigurationError
	if err := s.Validate(); !errors.As(err, &ce) || ce.Field != "object_count" {
		t.Errorf("expected object_count *ConfigurationError, got %v", err)
	}
}

func TestSetup_ValidateRejectsInvalidKind(t *testing.T) {
	s := &Setup{
		Params:  Params{Rows: 2, Cols: 2},
		Objects: []Object{{Kind: components.ObjectKind(9), Row: 0, Col: 0}},
	}
	var ce *ConfigurationError
	if err := s.Validate(); !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigurationError, got %v", err)
	}
}

// ---------- Write ----------

func TestWrite_ReportsGenerationZero(t *testing.T) {
	p := Params{PreyReproduction: 2, PredatorReproduction: 4, PredatorStarvation: 3, Generations: 6, Rows: 5, Cols: 5}
	objects := []Object{
		{Kind: components.ObjectRock, Row: 0, Col: 0},
		{Kind: components.ObjectRabbit, Row: 0, Col: 2},
		{Kind: components.ObjectFox, Row: 4, Col: 4},
	}

	var buf bytes.Buffer
	if err := Write(&buf, p, objects); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "2 4 3 0 5 5 3\nROCK 0 0\nRABBIT 0 2\nFOX 4 4\n"
	if buf.String() != want {
		t.Errorf("expected\n%s\ngot\n%s", want, buf.String())
	}

	// The output is itself a valid scenario
	s, err := Load(&buf)
	if err != nil {
		t.Fatalf("reloading output: %v", err)
	}
	if s.Params.Generations != 0 || len(s.Objects) != 3 {
		t.Errorf("unexpected reloaded setup %+v", s)
	}
}

func TestWriteFile(t *testing.T) {
	path := t.TempDir() + "/out.txt"
	p := Params{Rows: 1, Cols: 2}
	if err := WriteFile(path, p, []Object{{Kind: components.ObjectFox, Row: 0, Col: 1}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Objects) != 1 || s.Objects[0].Kind != components.ObjectFox {
		t.Errorf("unexpected objects %v", s.Objects)
	}
}

// ---------- Random ----------

func TestRandom_DeterministicAndValid(t *testing.T) {
	p := Params{PreyReproduction: 3, PredatorReproduction: 6, PredatorStarvation: 5, Generations: 10, Rows: 20, Cols: 30}
	d := Density{Rock: 0.1, Rabbit: 0.3, Fox: 0.1}

	a := Random(7, p, d)
	b := Random(7, p, d)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated setup invalid: %v", err)
	}
	if len(a.Objects) != len(b.Objects) {
		t.Fatalf("same seed gave %d and %d objects", len(a.Objects), len(b.Objects))
	}
	for i := range a.Objects {
		if a.Objects[i] != b.Objects[i] {
			t.Fatalf("object %d differs: %v vs %v", i, a.Objects[i], b.Objects[i])
		}
	}

	rocks, rabbits, foxes := Counts(a.Objects)
	if rocks == 0 || rabbits == 0 || foxes == 0 {
		t.Errorf("expected all kinds on a 600 cell grid, got %d/%d/%d", rocks, rabbits, foxes)
	}

	c := Random(8, p, d)
	same := len(a.Objects) == len(c.Objects)
	for i := 0; same && i < len(a.Objects); i++ {
		same = a.Objects[i] == c.Objects[i]
	}
	if same {
		t.Error("different seeds produced identical worlds")
	}
}
