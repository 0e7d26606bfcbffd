package metrics

import (
	"fmt"
	"math"

	"github.com/agnivade/levenshtein"

	"github.com/cognicore/lexsim/pkg/lexsim/internalerr"
	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// Costs assigns a weight to each edit operation. Insertion and deletion
// share one weight so that the distance from a to b equals the distance
// from b to a.
type Costs struct {
	InsertDelete float64
	Substitute   float64
}

// UnitCosts is the classic Levenshtein weighting.
var UnitCosts = Costs{InsertDelete: 1, Substitute: 1}

func (c Costs) validate() error {
	for _, v := range []float64{c.InsertDelete, c.Substitute} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("edit costs must be positive and finite, got %+v: %w", c, internalerr.ErrInvalidConfig)
		}
	}
	return nil
}

func (c Costs) max() float64 {
	return math.Max(c.InsertDelete, c.Substitute)
}

// Levenshtein is the edit distance between two strings measured in runes.
type Levenshtein struct {
	costs Costs
}

// NewLevenshtein returns a unit-cost Levenshtein metric.
func NewLevenshtein() Levenshtein {
	return Levenshtein{costs: UnitCosts}
}

// NewWeightedLevenshtein returns a Levenshtein metric using the given costs.
func NewWeightedLevenshtein(c Costs) (Levenshtein, error) {
	if err := c.validate(); err != nil {
		return Levenshtein{}, err
	}
	return Levenshtein{costs: c}, nil
}

// Kind implements Metric.
func (Levenshtein) Kind() tokens.Kind { return tokens.KindString }

// Compare returns 1 - distance / maxDistance, where maxDistance is the cost of
// rewriting the longer string entirely.
func (l Levenshtein) Compare(a, b string) (float64, error) {
	ra, rb := []rune(a), []rune(b)
	if score, ok := degenerate(len(ra), len(rb)); ok {
		return score, nil
	}
	d := l.distance(a, b, ra, rb)
	return similarityFromEdits(d, len(ra), len(rb), l.costsOrUnit()), nil
}

// Distance implements Distance.
func (l Levenshtein) Distance(a, b string) (float64, error) {
	return l.distance(a, b, []rune(a), []rune(b)), nil
}

func (l Levenshtein) distance(a, b string, ra, rb []rune) float64 {
	c := l.costsOrUnit()
	if c == UnitCosts {
		return float64(levenshtein.ComputeDistance(a, b))
	}
	return editDistance(ra, rb, c)
}

// costsOrUnit lets the zero value behave as the classic metric.
func (l Levenshtein) costsOrUnit() Costs {
	if l.costs == (Costs{}) {
		return UnitCosts
	}
	return l.costs
}

func (l Levenshtein) String() string {
	if c := l.costsOrUnit(); c != UnitCosts {
		return fmt.Sprintf("Levenshtein(indel=%g, sub=%g)", c.InsertDelete, c.Substitute)
	}
	return "Levenshtein"
}

// SequenceLevenshtein is the edit distance between two token sequences. The
// zero value uses unit costs.
type SequenceLevenshtein[T comparable] struct {
	costs Costs
}

// NewSequenceLevenshtein returns a sequence edit distance using the given
// costs.
func NewSequenceLevenshtein[T comparable](c Costs) (SequenceLevenshtein[T], error) {
	if err := c.validate(); err != nil {
		return SequenceLevenshtein[T]{}, err
	}
	return SequenceLevenshtein[T]{costs: c}, nil
}

// Kind implements Metric.
func (SequenceLevenshtein[T]) Kind() tokens.Kind { return tokens.KindSequence }

// Compare implements Metric.
func (s SequenceLevenshtein[T]) Compare(a, b *tokens.Sequence[T]) (float64, error) {
	if err := checkNil("sequence levenshtein", a, b); err != nil {
		return 0, err
	}
	if score, ok := degenerate(a.Len(), b.Len()); ok {
		return score, nil
	}
	c := s.costsOrUnit()
	d := editDistance(a.Items(), b.Items(), c)
	return similarityFromEdits(d, a.Len(), b.Len(), c), nil
}

// Distance implements Distance.
func (s SequenceLevenshtein[T]) Distance(a, b *tokens.Sequence[T]) (float64, error) {
	if err := checkNil("sequence levenshtein", a, b); err != nil {
		return 0, err
	}
	return editDistance(a.Items(), b.Items(), s.costsOrUnit()), nil
}

func (s SequenceLevenshtein[T]) costsOrUnit() Costs {
	if s.costs == (Costs{}) {
		return UnitCosts
	}
	return s.costs
}

func (s SequenceLevenshtein[T]) String() string {
	if c := s.costsOrUnit(); c != UnitCosts {
		return fmt.Sprintf("SequenceLevenshtein(indel=%g, sub=%g)", c.InsertDelete, c.Substitute)
	}
	return "SequenceLevenshtein"
}

func similarityFromEdits(d float64, lenA, lenB int, c Costs) float64 {
	maxDistance := float64(max(lenA, lenB)) * c.max()
	return clamp(1 - d/maxDistance)
}

// editDistance is the two-row dynamic programming formulation of the
// weighted edit distance that turns a into b.
func editDistance[T comparable](a, b []T, c Costs) float64 {
	if len(a) == 0 {
		return float64(len(b)) * c.InsertDelete
	}
	if len(b) == 0 {
		return float64(len(a)) * c.InsertDelete
	}

	prev := make([]float64, len(b)+1)
	curr := make([]float64, len(b)+1)
	for j := range prev {
		prev[j] = float64(j) * c.InsertDelete
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = float64(i) * c.InsertDelete
		for j := 1; j <= len(b); j++ {
			sub := prev[j-1]
			if a[i-1] != b[j-1] {
				sub += c.Substitute
			}
			curr[j] = math.Min(sub, math.Min(prev[j], curr[j-1])+c.InsertDelete)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
