package scenario

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pthm-cable/warren/components"
)

// tokenReader pulls whitespace separated tokens and keeps the name of the
// field being read for error messages.
type tokenReader struct {
	sc *bufio.Scanner
}

func (r *tokenReader) next(field string) (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", &ConfigurationError{Field: field, Reason: "read failed", Err: err}
	}
	return "", &ConfigurationError{Field: field, Reason: "unexpected end of input", Err: io.ErrUnexpectedEOF}
}

func (r *tokenReader) int(field string) (int, error) {
	tok, err := r.next(field)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, &ConfigurationError{Field: field, Reason: fmt.Sprintf("not an integer: %q", tok), Err: err}
	}
	return v, nil
}

// Load parses a scenario and validates it.
func Load(rd io.Reader) (*Setup, error) {
	sc := bufio.NewScanner(rd)
	sc.Split(bufio.ScanWords)
	r := &tokenReader{sc: sc}

	s := &Setup{}
	header := []struct {
		field string
		dst   *int
	}{
		{"prey_reproduction", &s.Params.PreyReproduction},
		{"predator_reproduction", &s.Params.PredatorReproduction},
		{"predator_starvation", &s.Params.PredatorStarvation},
		{"generations", &s.Params.Generations},
		{"rows", &s.Params.Rows},
		{"cols", &s.Params.Cols},
	}
	for _, h := range header {
		v, err := r.int(h.field)
		if err != nil {
			return nil, err
		}
		*h.dst = v
	}

	n, err := r.int("object_count")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &ConfigurationError{Field: "object_count", Reason: fmt.Sprintf("must be >= 0, got %d", n)}
	}

	// Reject the header before sizing anything from it
	if err := s.Params.Validate(); err != nil {
		return nil, err
	}
	if n > s.Params.Cells() {
		return nil, &ConfigurationError{
			Field:  "object_count",
			Reason: fmt.Sprintf("%d objects do not fit %d cells", n, s.Params.Cells()),
		}
	}

	s.Objects = make([]Object, 0, n)
	for i := 0; i < n; i++ {
		field := fmt.Sprintf("objects[%d]", i)
		tag, err := r.next(field + ".kind")
		if err != nil {
			return nil, err
		}
		kind, err := components.ParseObjectKind(tag)
		if err != nil {
			return nil, &ConfigurationError{Field: field + ".kind", Reason: "unknown kind", Err: err}
		}
		row, err := r.int(field + ".row")
		if err != nil {
			return nil, err
		}
		col, err := r.int(field + ".col")
		if err != nil {
			return nil, err
		}
		s.Objects = append(s.Objects, Object{Kind: kind, Row: row, Col: col})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads a scenario from path, or from stdin when path is "" or "-".
func LoadFile(path string) (*Setup, error) {
	if path == "" || path == "-" {
		return Load(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scenario: %w", err)
	}
	defer f.Close()
	return Load(f)
}
