package game

import "fmt"

// InvariantViolation reports an inconsistent world state. It is fatal: the
// simulation stops at the phase that detected it.
type InvariantViolation struct {
	Generation int
	Phase      Phase
	Detail     string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violation in generation %d (%s): %s", e.Generation, e.Phase, e.Detail)
}

func violationf(format string, args ...any) *InvariantViolation {
	return &InvariantViolation{Detail: fmt.Sprintf(format, args...)}
}
