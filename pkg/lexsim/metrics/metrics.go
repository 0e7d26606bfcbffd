// Package metrics implements the comparison algorithms.
//
// Every algorithm consumes one container shape (see tokens.Kind) and follows
// the same degenerate-case policy: two empty inputs are identical
// (similarity 1, distance 0) and a single empty input shares nothing with
// the other side (similarity 0). Nil containers are rejected with
// internalerr.ErrInvalidInput.
package metrics

import (
	"fmt"

	"github.com/cognicore/lexsim/pkg/lexsim/internalerr"
	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// Metric scores the similarity of two inputs of shape C in [0, 1].
type Metric[C any] interface {
	Compare(a, b C) (float64, error)
	Kind() tokens.Kind
}

// Distance measures the non-negative distance between two inputs of shape C.
// Zero means a and b are indistinguishable to the algorithm.
type Distance[C any] interface {
	Distance(a, b C) (float64, error)
}

type sized interface {
	comparable
	Len() int
}

// checkNil rejects missing containers before any work is done.
func checkNil[C sized](name string, a, b C) error {
	var zero C
	if a == zero {
		return fmt.Errorf("%s: first input is nil: %w", name, internalerr.ErrInvalidInput)
	}
	if b == zero {
		return fmt.Errorf("%s: second input is nil: %w", name, internalerr.ErrInvalidInput)
	}
	return nil
}

// degenerate applies the shared empty-input policy. ok is false when both
// inputs are non-empty and the algorithm has to do real work.
func degenerate(lenA, lenB int) (score float64, ok bool) {
	switch {
	case lenA == 0 && lenB == 0:
		return 1.0, true
	case lenA == 0 || lenB == 0:
		return 0.0, true
	}
	return 0, false
}

// clamp keeps rounding noise from pushing a similarity outside [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
