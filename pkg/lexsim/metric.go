package lexsim

import (
	"github.com/cognicore/lexsim/pkg/lexsim/cache"
	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

// Metric is an assembled similarity metric. It is immutable and safe for
// concurrent use; the only shared state is its caches, which synchronize
// internally.
type Metric struct {
	*pipeline
	compareStrings func(a, b string) (float64, error)
	compareTokens  func(a, b []string) (float64, error)
}

// Compare runs a and b independently through the pipeline and scores the
// results in [0, 1]. Errors come only from the comparison algorithm; a
// panicking stage propagates unchanged.
func (m *Metric) Compare(a, b string) (float64, error) {
	a, b = m.simplify(a), m.simplify(b)
	if m.tokenize == nil {
		return m.compareStrings(a, b)
	}
	return m.compareTokens(m.tokenize(a), m.tokenize(b))
}

// DistanceMetric is an assembled distance metric; see Metric.
type DistanceMetric struct {
	*pipeline
	distanceStrings func(a, b string) (float64, error)
	distanceTokens  func(a, b []string) (float64, error)
}

// Distance runs a and b through the pipeline and returns the non-negative
// distance between the results.
func (d *DistanceMetric) Distance(a, b string) (float64, error) {
	a, b = d.simplify(a), d.simplify(b)
	if d.tokenize == nil {
		return d.distanceStrings(a, b)
	}
	return d.distanceTokens(d.tokenize(a), d.tokenize(b))
}

// String describes the algorithm and its stages in order.
func (p *pipeline) String() string {
	return p.description
}

// Kind is the container shape the terminal algorithm consumes.
func (p *pipeline) Kind() tokens.Kind {
	return p.kind
}

// CacheStats reports usage of the simplifier and tokenizer caches. A cache
// that is not configured reports zero values.
func (p *pipeline) CacheStats() (simplifier, tokenizer cache.Stats) {
	if p.simplifierCache != nil {
		simplifier = p.simplifierCache.Stats()
	}
	if p.tokenizerCache != nil {
		tokenizer = p.tokenizerCache.Stats()
	}
	return simplifier, tokenizer
}
