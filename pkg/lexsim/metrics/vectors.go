package metrics

import (
	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// countVectors lays out the counts of a and b over their union so that
// index i of both vectors refers to the same token.
func countVectors[T comparable](a, b *tokens.Multiset[T]) (va, vb []float64) {
	union := tokens.UnionElements(a, b)
	va = make([]float64, len(union))
	vb = make([]float64, len(union))
	for i, t := range union {
		va[i] = float64(a.Count(t))
		vb[i] = float64(b.Count(t))
	}
	return va, vb
}
