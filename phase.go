package deck

import (
	"encoding"
	"fmt"
)

// Phase is the macro-state of a session.
type Phase int

const (
	Exploring Phase = iota + 1 // Some cards not yet shown; Advance picks randomly among them.
	Completed                  // Every card shown at least once; Advance moves sequentially.
)

var phaseNames = [...]string{Exploring: "Exploring", Completed: "Completed"}

var (
	_ fmt.Stringer           = Phase(0)
	_ encoding.TextMarshaler = Phase(0)
)

// String returns the name of the phase ("Exploring", "Completed").
// For invalid values it returns "Phase(n)".
func (p Phase) String() string {
	if p >= Exploring && p <= Completed {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MarshalText writes the phase name, so JSON and YAML output carry
// "Exploring" or "Completed" rather than a number.
func (p Phase) MarshalText() ([]byte, error) {
	if p < Exploring || p > Completed {
		return nil, fmt.Errorf("deck: invalid phase: %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}
