package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// EuclideanDistance measures the L2 distance between two token count vectors.
// As a similarity it is scaled against the largest distance two multisets of
// the given sizes can have, sqrt(|a|² + |b|²).
type EuclideanDistance[T comparable] struct{}

// Kind implements Metric.
func (EuclideanDistance[T]) Kind() tokens.Kind { return tokens.KindMultiset }

// Compare implements Metric.
func (e EuclideanDistance[T]) Compare(a, b *tokens.Multiset[T]) (float64, error) {
	if err := checkNil("euclidean distance", a, b); err != nil {
		return 0, err
	}
	if score, ok := degenerate(a.Len(), b.Len()); ok {
		return score, nil
	}

	sizeA, sizeB := float64(a.Len()), float64(b.Len())
	maxDistance := math.Sqrt(sizeA*sizeA + sizeB*sizeB)
	return clamp((maxDistance - l2(a, b)) / maxDistance), nil
}

// Distance implements Distance.
func (EuclideanDistance[T]) Distance(a, b *tokens.Multiset[T]) (float64, error) {
	if err := checkNil("euclidean distance", a, b); err != nil {
		return 0, err
	}
	return l2(a, b), nil
}

func l2[T comparable](a, b *tokens.Multiset[T]) float64 {
	va, vb := countVectors(a, b)
	if len(va) == 0 {
		return 0
	}
	diff := make([]float64, len(va))
	floats.SubTo(diff, va, vb)
	return math.Sqrt(floats.Dot(diff, diff))
}

func (EuclideanDistance[T]) String() string { return "EuclideanDistance" }
