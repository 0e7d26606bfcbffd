package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// BlockDistance is the L1 (manhattan) distance between two token count
// vectors. The similarity divides by the largest possible L1 distance,
// |a| + |b|, reached when the multisets share no token.
type BlockDistance[T comparable] struct{}

// Kind implements Metric.
func (BlockDistance[T]) Kind() tokens.Kind { return tokens.KindMultiset }

// Compare implements Metric.
func (BlockDistance[T]) Compare(a, b *tokens.Multiset[T]) (float64, error) {
	if err := checkNil("block distance", a, b); err != nil {
		return 0, err
	}
	if score, ok := degenerate(a.Len(), b.Len()); ok {
		return score, nil
	}
	total := float64(a.Len() + b.Len())
	return clamp((total - l1(a, b)) / total), nil
}

// Distance implements Distance.
func (BlockDistance[T]) Distance(a, b *tokens.Multiset[T]) (float64, error) {
	if err := checkNil("block distance", a, b); err != nil {
		return 0, err
	}
	return l1(a, b), nil
}

func l1[T comparable](a, b *tokens.Multiset[T]) float64 {
	va, vb := countVectors(a, b)
	if len(va) == 0 {
		return 0
	}
	return floats.Distance(va, vb, 1)
}

func (BlockDistance[T]) String() string { return "BlockDistance" }
