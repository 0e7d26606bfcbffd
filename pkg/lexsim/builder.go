package lexsim

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cognicore/lexsim/pkg/lexsim/cache"
	"github.com/cognicore/lexsim/pkg/lexsim/internalerr"
	"github.com/cognicore/lexsim/pkg/lexsim/metrics"
	"github.com/cognicore/lexsim/pkg/lexsim/stage"
	"github.com/cognicore/lexsim/pkg/lexsim/tokens"
)

type stepKind int

const (
	stepSimplify stepKind = iota
	stepTokenize
	stepFilter
	stepTransform
	stepSimplifierCache
	stepTokenizerCache
)

type step struct {
	kind       stepKind
	simplifier stage.Simplifier
	tokenizer  stage.Tokenizer
	filter     stage.Filter
	transform  stage.Transform
	capacity   int
}

func (s step) String() string {
	switch s.kind {
	case stepSimplify:
		return stage.Name(s.simplifier)
	case stepTokenize:
		return stage.Name(s.tokenizer)
	case stepFilter:
		return "Filter(" + stage.Name(s.filter) + ")"
	case stepTransform:
		return "Transform(" + stage.Name(s.transform) + ")"
	case stepSimplifierCache:
		return fmt.Sprintf("SimplifierCache(%d)", s.capacity)
	default:
		return fmt.Sprintf("TokenizerCache(%d)", s.capacity)
	}
}

// terminal holds the comparison algorithm. Exactly one field matching kind
// is set; the builder entry points guarantee the shape at compile time.
type terminal struct {
	kind     tokens.Kind
	str      metrics.Metric[string]
	seq      metrics.Metric[*tokens.Sequence[string]]
	set      metrics.Metric[*tokens.Set[string]]
	multiset metrics.Metric[*tokens.Multiset[string]]
}

func (t terminal) algorithm() any {
	switch t.kind {
	case tokens.KindString:
		return t.str
	case tokens.KindSequence:
		return t.seq
	case tokens.KindSet:
		return t.set
	default:
		return t.multiset
	}
}

func (t terminal) missing() bool {
	switch t.kind {
	case tokens.KindString:
		return t.str == nil
	case tokens.KindSequence:
		return t.seq == nil
	case tokens.KindSet:
		return t.set == nil
	default:
		return t.multiset == nil
	}
}

// Builder accumulates pipeline stages in call order. Every method returns a
// new Builder; the receiver is never modified, so a partially configured
// Builder can be reused as the base of several metrics.
//
// Legality is checked by Build, not while stages are added.
type Builder struct {
	term      terminal
	steps     []step
	cacheOpts []cache.Option
	logger    *slog.Logger
}

// WithString starts a metric that compares whole strings, such as
// metrics.Levenshtein.
func WithString(m metrics.Metric[string]) Builder {
	return Builder{term: terminal{kind: tokens.KindString, str: m}}
}

// WithSequence starts a metric that compares ordered token lists.
func WithSequence(m metrics.Metric[*tokens.Sequence[string]]) Builder {
	return Builder{term: terminal{kind: tokens.KindSequence, seq: m}}
}

// WithSet starts a metric that compares sets of tokens.
func WithSet(m metrics.Metric[*tokens.Set[string]]) Builder {
	return Builder{term: terminal{kind: tokens.KindSet, set: m}}
}

// WithMultiset starts a metric that compares token multisets.
func WithMultiset(m metrics.Metric[*tokens.Multiset[string]]) Builder {
	return Builder{term: terminal{kind: tokens.KindMultiset, multiset: m}}
}

func (b Builder) with(s step) Builder {
	steps := make([]step, len(b.steps), len(b.steps)+1)
	copy(steps, b.steps)
	b.steps = append(steps, s)
	return b
}

// Simplify appends a whole-string simplifier. Simplifiers must come before
// the first tokenizer.
func (b Builder) Simplify(s stage.Simplifier) Builder {
	return b.with(step{kind: stepSimplify, simplifier: s})
}

// SimplifierCache memoizes the complete simplifier chain in an LRU cache of
// the given capacity. It must follow at least one simplifier.
func (b Builder) SimplifierCache(capacity int) Builder {
	return b.with(step{kind: stepSimplifierCache, capacity: capacity})
}

// Tokenize appends a tokenizer. The first tokenizer splits the simplified
// string; later ones re-tokenize every token produced so far.
func (b Builder) Tokenize(t stage.Tokenizer) Builder {
	return b.with(step{kind: stepTokenize, tokenizer: t})
}

// Filter drops the tokens f does not keep. It must follow a tokenizer.
func (b Builder) Filter(f stage.Filter) Builder {
	return b.with(step{kind: stepFilter, filter: f})
}

// Transform maps every token through t. It must follow a tokenizer.
func (b Builder) Transform(t stage.Transform) Builder {
	return b.with(step{kind: stepTransform, transform: t})
}

// TokenizerCache memoizes the complete token chain (every tokenizer, filter
// and transform) in an LRU cache of the given capacity. It must follow at
// least one tokenizer.
func (b Builder) TokenizerCache(capacity int) Builder {
	return b.with(step{kind: stepTokenizerCache, capacity: capacity})
}

// CacheOptions sets the options used for every cache the builder creates,
// for example cache.WithSingleFlight().
func (b Builder) CacheOptions(opts ...cache.Option) Builder {
	b.cacheOpts = append([]cache.Option(nil), opts...)
	return b
}

// Logger attaches a logger that Build reports the assembled pipeline to.
func (b Builder) Logger(l *slog.Logger) Builder {
	b.logger = l
	return b
}

// pipeline is the validated, executable form of a Builder.
type pipeline struct {
	kind        tokens.Kind
	description string
	simplify    func(string) string
	tokenize    func(string) []string

	simplifierCache *cache.LRU[string, string]
	tokenizerCache  *cache.LRU[string, []string]
}

func compositionError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), internalerr.ErrInvalidComposition)
}

// assemble validates the accumulated steps and compiles them. Every call
// creates fresh caches so metrics built from the same Builder share nothing.
func (b Builder) assemble() (*pipeline, error) {
	if b.term.missing() {
		return nil, compositionError("a metric requires exactly one comparison algorithm")
	}
	name := stage.Name(b.term.algorithm())

	var (
		simplifiers     []stage.Simplifier
		tokenizer       stage.Tokenizer
		tokenOps        []func([]string) []string
		simplifierCache = -1
		tokenizerCache  = -1
	)

	for i, s := range b.steps {
		switch s.kind {
		case stepSimplify:
			if s.simplifier == nil {
				return nil, compositionError("stage %d: simplifier is nil", i)
			}
			if tokenizer != nil {
				return nil, compositionError("stage %d: simplifier %s follows a tokenizer; simplifiers operate on whole strings and must come first", i, s)
			}
			simplifiers = append(simplifiers, s.simplifier)

		case stepTokenize:
			if s.tokenizer == nil {
				return nil, compositionError("stage %d: tokenizer is nil", i)
			}
			if b.term.kind == tokens.KindString {
				return nil, compositionError("stage %d: %s compares whole strings and does not accept tokenizer %s", i, name, s)
			}
			if tokenizer == nil {
				tokenizer = s.tokenizer
				continue
			}
			t := s.tokenizer
			tokenOps = append(tokenOps, func(toks []string) []string { return stage.Retokenize(t, toks) })

		case stepFilter:
			if s.filter == nil {
				return nil, compositionError("stage %d: filter is nil", i)
			}
			if tokenizer == nil {
				return nil, compositionError("stage %d: %s operates on tokens and requires a preceding tokenizer", i, s)
			}
			f := s.filter
			tokenOps = append(tokenOps, func(toks []string) []string { return stage.KeepAll(f, toks) })

		case stepTransform:
			if s.transform == nil {
				return nil, compositionError("stage %d: transform is nil", i)
			}
			if tokenizer == nil {
				return nil, compositionError("stage %d: %s operates on tokens and requires a preceding tokenizer", i, s)
			}
			tr := s.transform
			tokenOps = append(tokenOps, func(toks []string) []string { return stage.ApplyAll(tr, toks) })

		case stepSimplifierCache:
			if len(simplifiers) == 0 {
				return nil, compositionError("stage %d: %s requires a preceding simplifier", i, s)
			}
			if simplifierCache >= 0 {
				return nil, compositionError("stage %d: simplifier cache configured twice", i)
			}
			if s.capacity <= 0 {
				return nil, compositionError("stage %d: %s: capacity must be positive", i, s)
			}
			simplifierCache = s.capacity

		case stepTokenizerCache:
			if tokenizer == nil {
				return nil, compositionError("stage %d: %s requires a preceding tokenizer", i, s)
			}
			if tokenizerCache >= 0 {
				return nil, compositionError("stage %d: tokenizer cache configured twice", i)
			}
			if s.capacity <= 0 {
				return nil, compositionError("stage %d: %s: capacity must be positive", i, s)
			}
			tokenizerCache = s.capacity
		}
	}

	if b.term.kind.Tokenized() && tokenizer == nil {
		return nil, compositionError("%s compares %ss of tokens and requires at least one tokenizer", name, b.term.kind)
	}

	p := &pipeline{
		kind:        b.term.kind,
		description: describe(name, b.steps),
		simplify:    identity,
	}

	if len(simplifiers) > 0 {
		p.simplify = stage.ChainSimplifiers(simplifiers...).Simplify
	}
	if simplifierCache > 0 {
		c, err := cache.NewLRU[string, string](simplifierCache, b.cacheOpts...)
		if err != nil {
			return nil, err
		}
		p.simplifierCache = c
		p.simplify = cache.Memoize[string, string](c, p.simplify)
	}

	if tokenizer != nil {
		first, ops := tokenizer, tokenOps
		p.tokenize = func(s string) []string {
			toks := first.Tokenize(s)
			for _, op := range ops {
				toks = op(toks)
			}
			return toks
		}
	}
	if tokenizerCache > 0 {
		c, err := cache.NewLRU[string, []string](tokenizerCache, b.cacheOpts...)
		if err != nil {
			return nil, err
		}
		p.tokenizerCache = c
		p.tokenize = cache.Memoize[string, []string](c, p.tokenize)
	}

	if b.logger != nil {
		b.logger.Debug("metric assembled",
			slog.String("metric", p.description),
			slog.String("kind", p.kind.String()),
			slog.Int("simplifier_cache", max(simplifierCache, 0)),
			slog.Int("tokenizer_cache", max(tokenizerCache, 0)))
	}

	return p, nil
}

func identity(s string) string { return s }

func describe(name string, steps []step) string {
	if len(steps) == 0 {
		return name
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return name + " [" + strings.Join(parts, " -> ") + "]"
}

// Build validates the pipeline and returns an immutable metric. Invalid
// compositions fail with an error wrapping internalerr.ErrInvalidComposition.
func (b Builder) Build() (*Metric, error) {
	p, err := b.assemble()
	if err != nil {
		return nil, fmt.Errorf("build metric: %w", err)
	}

	m := &Metric{pipeline: p}
	switch b.term.kind {
	case tokens.KindString:
		m.compareStrings = b.term.str.Compare
	case tokens.KindSequence:
		alg := b.term.seq
		m.compareTokens = func(a, b []string) (float64, error) {
			return alg.Compare(tokens.NewSequence(a), tokens.NewSequence(b))
		}
	case tokens.KindSet:
		alg := b.term.set
		m.compareTokens = func(a, b []string) (float64, error) {
			return alg.Compare(tokens.NewSet(a), tokens.NewSet(b))
		}
	case tokens.KindMultiset:
		alg := b.term.multiset
		m.compareTokens = func(a, b []string) (float64, error) {
			return alg.Compare(tokens.NewMultiset(a), tokens.NewMultiset(b))
		}
	}
	return m, nil
}

// BuildDistance is Build for algorithms that also measure an unnormalized
// distance. It fails with internalerr.ErrInvalidComposition when the terminal
// algorithm does not implement metrics.Distance for its shape.
func (b Builder) BuildDistance() (*DistanceMetric, error) {
	p, err := b.assemble()
	if err != nil {
		return nil, fmt.Errorf("build distance: %w", err)
	}

	d := &DistanceMetric{pipeline: p}
	ok := false
	switch b.term.kind {
	case tokens.KindString:
		var alg metrics.Distance[string]
		if alg, ok = b.term.str.(metrics.Distance[string]); ok {
			d.distanceStrings = alg.Distance
		}
	case tokens.KindSequence:
		var alg metrics.Distance[*tokens.Sequence[string]]
		if alg, ok = b.term.seq.(metrics.Distance[*tokens.Sequence[string]]); ok {
			d.distanceTokens = func(a, b []string) (float64, error) {
				return alg.Distance(tokens.NewSequence(a), tokens.NewSequence(b))
			}
		}
	case tokens.KindSet:
		var alg metrics.Distance[*tokens.Set[string]]
		if alg, ok = b.term.set.(metrics.Distance[*tokens.Set[string]]); ok {
			d.distanceTokens = func(a, b []string) (float64, error) {
				return alg.Distance(tokens.NewSet(a), tokens.NewSet(b))
			}
		}
	case tokens.KindMultiset:
		var alg metrics.Distance[*tokens.Multiset[string]]
		if alg, ok = b.term.multiset.(metrics.Distance[*tokens.Multiset[string]]); ok {
			d.distanceTokens = func(a, b []string) (float64, error) {
				return alg.Distance(tokens.NewMultiset(a), tokens.NewMultiset(b))
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("build distance: %w",
			compositionError("%s does not measure distance", stage.Name(b.term.algorithm())))
	}
	return d, nil
}
