package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidQuadrant is returned when a quadrant string is not one of the
// four Eisenhower-matrix values.
var ErrInvalidQuadrant = errors.New("invalid quadrant")

// Quadrant is one of the four Eisenhower-matrix categories a task can be
// classified into. The set is closed: any other value is rejected at parse
// time rather than coerced.
type Quadrant string

const (
	// QuadrantDo marks tasks that are both important and urgent.
	QuadrantDo Quadrant = "Do"

	// QuadrantPlan marks tasks that are important but not urgent.
	QuadrantPlan Quadrant = "Plan"

	// QuadrantDelegate marks tasks that are urgent but not important.
	QuadrantDelegate Quadrant = "Delegate"

	// QuadrantEliminate marks tasks that are neither important nor urgent.
	QuadrantEliminate Quadrant = "Eliminate"
)

// ParseQuadrant converts a raw string into a Quadrant. It returns
// ErrInvalidQuadrant for anything outside the four known values, including
// case variants; models are prompted to emit the exact names.
func ParseQuadrant(s string) (Quadrant, error) {
	switch Quadrant(s) {
	case QuadrantDo, QuadrantPlan, QuadrantDelegate, QuadrantEliminate:
		return Quadrant(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidQuadrant, s)
	}
}

// Valid reports whether q is one of the four known quadrants.
func (q Quadrant) Valid() bool {
	_, err := ParseQuadrant(string(q))
	return err == nil
}
