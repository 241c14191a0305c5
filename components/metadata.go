package components

import "fmt"

// ObjectKind is the tag used for placed objects in scenario files.
type ObjectKind uint8

const (
	ObjectRock ObjectKind = iota
	ObjectRabbit
	ObjectFox
)

// ObjectKindNames returns the scenario tags for all object kinds.
// The order matches the ObjectKind constants.
func ObjectKindNames() []string {
	return []string{"ROCK", "RABBIT", "FOX"}
}

// String returns the scenario tag for an ObjectKind.
func (o ObjectKind) String() string {
	names := ObjectKindNames()
	if int(o) < len(names) {
		return names[o]
	}
	return "UNKNOWN"
}

// ParseObjectKind maps a scenario tag to its ObjectKind.
func ParseObjectKind(s string) (ObjectKind, error) {
	for i, name := range ObjectKindNames() {
		if name == s {
			return ObjectKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown object kind %q", s)
}

// MarshalCSV implements gocsv's TypeMarshaller.
func (o ObjectKind) MarshalCSV() (string, error) {
	return o.String(), nil
}

// Cell returns the grid cell kind for an object.
func (o ObjectKind) Cell() CellKind {
	switch o {
	case ObjectRabbit:
		return CellPrey
	case ObjectFox:
		return CellPredator
	default:
		return CellRock
	}
}

// Object returns the scenario tag for an animal kind.
func (k Kind) Object() ObjectKind {
	if k == KindPredator {
		return ObjectFox
	}
	return ObjectRabbit
}

// String returns the scenario tag for the species.
func (k Kind) String() string {
	return k.Object().String()
}

// ObjectForCell maps an occupied or rock cell to its object tag.
func ObjectForCell(c CellKind) (ObjectKind, bool) {
	switch c {
	case CellRock:
		return ObjectRock, true
	case CellPrey:
		return ObjectRabbit, true
	case CellPredator:
		return ObjectFox, true
	}
	return 0, false
}
