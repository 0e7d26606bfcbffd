package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// CosineSimilarity treats each multiset as a vector of token counts and
// returns the cosine of the angle between them: a·b / (||a|| * ||b||).
type CosineSimilarity[T comparable] struct{}

// Kind implements Metric.
func (CosineSimilarity[T]) Kind() tokens.Kind { return tokens.KindMultiset }

// Compare implements Metric.
func (CosineSimilarity[T]) Compare(a, b *tokens.Multiset[T]) (float64, error) {
	if err := checkNil("cosine similarity", a, b); err != nil {
		return 0, err
	}
	if score, ok := degenerate(a.Len(), b.Len()); ok {
		return score, nil
	}

	va, vb := countVectors(a, b)
	// Counts are integers, so the dot products below are exact regardless of
	// the union's iteration order.
	dot := floats.Dot(va, vb)
	magA := floats.Dot(va, va)
	magB := floats.Dot(vb, vb)

	return clamp(dot / (math.Sqrt(magA) * math.Sqrt(magB))), nil
}

func (CosineSimilarity[T]) String() string { return "CosineSimilarity" }
