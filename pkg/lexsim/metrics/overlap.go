package metrics

import (
	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// JaccardSimilarity is |a ∩ b| / |a ∪ b|.
type JaccardSimilarity[T comparable] struct{}

// Kind implements Metric.
func (JaccardSimilarity[T]) Kind() tokens.Kind { return tokens.KindSet }

// Compare implements Metric.
func (JaccardSimilarity[T]) Compare(a, b *tokens.Set[T]) (float64, error) {
	if err := checkNil("jaccard similarity", a, b); err != nil {
		return 0, err
	}
	if score, ok := degenerate(a.Len(), b.Len()); ok {
		return score, nil
	}
	common := a.IntersectionLen(b)
	union := a.Len() + b.Len() - common
	return clamp(float64(common) / float64(union)), nil
}

func (JaccardSimilarity[T]) String() string { return "JaccardSimilarity" }

// DiceSimilarity is 2|a ∩ b| / (|a| + |b|).
type DiceSimilarity[T comparable] struct{}

// Kind implements Metric.
func (DiceSimilarity[T]) Kind() tokens.Kind { return tokens.KindSet }

// Compare implements Metric.
func (DiceSimilarity[T]) Compare(a, b *tokens.Set[T]) (float64, error) {
	if err := checkNil("dice similarity", a, b); err != nil {
		return 0, err
	}
	if score, ok := degenerate(a.Len(), b.Len()); ok {
		return score, nil
	}
	common := a.IntersectionLen(b)
	return clamp(2 * float64(common) / float64(a.Len()+b.Len())), nil
}

func (DiceSimilarity[T]) String() string { return "DiceSimilarity" }
