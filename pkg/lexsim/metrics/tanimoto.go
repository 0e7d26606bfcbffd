package metrics

import (
	"math"

	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// TanimotoCoefficient is the cosine similarity of two binary vectors:
// |a ∩ b| / (sqrt(|a|) * sqrt(|b|)).
type TanimotoCoefficient[T comparable] struct{}

// Kind implements Metric.
func (TanimotoCoefficient[T]) Kind() tokens.Kind { return tokens.KindSet }

// Compare implements Metric.
func (TanimotoCoefficient[T]) Compare(a, b *tokens.Set[T]) (float64, error) {
	if err := checkNil("tanimoto coefficient", a, b); err != nil {
		return 0, err
	}
	if score, ok := degenerate(a.Len(), b.Len()); ok {
		return score, nil
	}

	// The dot product of two binary vectors is the size of the intersection
	// and the magnitude of a binary vector is the square root of its size.
	common := float64(a.IntersectionLen(b))
	return clamp(common / (math.Sqrt(float64(a.Len())) * math.Sqrt(float64(b.Len())))), nil
}

func (TanimotoCoefficient[T]) String() string { return "TanimotoCoefficient" }
