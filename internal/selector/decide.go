// Package selector picks one record from a table given the raw menu
// answer. The decision itself is a pure function of the answer and the
// candidate count; randomness comes from an injected Source.
package selector

import (
	"strconv"
	"strings"
)

// Outcome classifies a menu answer.
type Outcome int

const (
	// Explicit means the answer named a valid 1-based index.
	Explicit Outcome = iota
	// Random means the answer was 0.
	Random
	// Invalid means the answer was not a number or out of range. It is
	// resolved like Random but paired with a warning.
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Explicit:
		return "explicit"
	case Random:
		return "random"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a menu answer. Index is 0-based and only
// meaningful for Explicit.
type Decision struct {
	Outcome Outcome
	Index   int
}

// Decide interprets a raw answer for a menu of count entries.
func Decide(answer string, count int) Decision {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	switch {
	case err != nil:
		return Decision{Outcome: Invalid}
	case n == 0:
		return Decision{Outcome: Random}
	case n >= 1 && n <= count:
		return Decision{Outcome: Explicit, Index: n - 1}
	default:
		return Decision{Outcome: Invalid}
	}
}

// Resolve turns a decision into a concrete 0-based index, drawing
// uniformly from src for Random and Invalid. count must be positive.
func Resolve(d Decision, count int, src Source) int {
	if d.Outcome == Explicit {
		return d.Index
	}
	return src.IntN(count)
}
