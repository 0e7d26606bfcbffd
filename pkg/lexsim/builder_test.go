package lexsim

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/cognicore/lexsim/pkg/lexsim/cache"
	"github.com/cognicore/lexsim/pkg/lexsim/internalerr"
	"github.com/cognicore/lexsim/pkg/lexsim/metrics"
	"github.com/cognicore/lexsim/pkg/lexsim/simplify"
	"github.com/cognicore/lexsim/pkg/lexsim/stage"
	"github.com/cognicore/lexsim/pkg/lexsim/tokenize"
)

var (
	cosine      = metrics.CosineSimilarity[string]{}
	tanimoto    = metrics.TanimotoCoefficient[string]{}
	levenshtein = metrics.NewLevenshtein()
	stopIt      = stage.Not(stage.In("it", "is"))
	reverse     = stage.TransformFunc(func(s string) string {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r)
	})
)

func TestBuildRejectsIllegalCompositions(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
		reason  string
	}{
		{
			name:    "token metric without tokenizer",
			builder: WithMultiset(cosine),
			reason:  "requires at least one tokenizer",
		},
		{
			name:    "token metric with only simplifiers",
			builder: WithSet(tanimoto).Simplify(simplify.ToLower()),
			reason:  "requires at least one tokenizer",
		},
		{
			name:    "whole-string metric with tokenizer",
			builder: WithString(levenshtein).Tokenize(tokenize.Whitespace()),
			reason:  "does not accept tokenizer",
		},
		{
			name:    "filter before tokenizer",
			builder: WithMultiset(cosine).Filter(stopIt).Tokenize(tokenize.Whitespace()),
			reason:  "requires a preceding tokenizer",
		},
		{
			name:    "transform before tokenizer",
			builder: WithMultiset(cosine).Transform(reverse).Tokenize(tokenize.Whitespace()),
			reason:  "requires a preceding tokenizer",
		},
		{
			name:    "filter on whole-string metric",
			builder: WithString(levenshtein).Filter(stopIt),
			reason:  "requires a preceding tokenizer",
		},
		{
			name:    "simplifier after tokenizer",
			builder: WithMultiset(cosine).Tokenize(tokenize.Whitespace()).Simplify(simplify.ToLower()),
			reason:  "must come first",
		},
		{
			name:    "simplifier cache without simplifier",
			builder: WithString(levenshtein).SimplifierCache(8),
			reason:  "requires a preceding simplifier",
		},
		{
			name:    "tokenizer cache without tokenizer",
			builder: WithMultiset(cosine).TokenizerCache(8).Tokenize(tokenize.Whitespace()),
			reason:  "requires a preceding tokenizer",
		},
		{
			name:    "tokenizer cache on whole-string metric",
			builder: WithString(levenshtein).TokenizerCache(8),
			reason:  "requires a preceding tokenizer",
		},
		{
			name: "simplifier cache twice",
			builder: WithString(levenshtein).Simplify(simplify.ToLower()).
				SimplifierCache(8).SimplifierCache(8),
			reason: "configured twice",
		},
		{
			name: "tokenizer cache twice",
			builder: WithMultiset(cosine).Tokenize(tokenize.Whitespace()).
				TokenizerCache(8).TokenizerCache(4),
			reason: "configured twice",
		},
		{
			name:    "non-positive cache capacity",
			builder: WithString(levenshtein).Simplify(simplify.ToLower()).SimplifierCache(0),
			reason:  "capacity must be positive",
		},
		{
			name:    "missing algorithm",
			builder: WithString(nil),
			reason:  "exactly one comparison algorithm",
		},
		{
			name:    "zero builder",
			builder: Builder{},
			reason:  "exactly one comparison algorithm",
		},
		{
			name:    "nil simplifier",
			builder: WithString(levenshtein).Simplify(nil),
			reason:  "simplifier is nil",
		},
		{
			name:    "nil tokenizer",
			builder: WithMultiset(cosine).Tokenize(nil),
			reason:  "tokenizer is nil",
		},
		{
			name:    "nil filter",
			builder: WithMultiset(cosine).Tokenize(tokenize.Whitespace()).Filter(nil),
			reason:  "filter is nil",
		},
		{
			name:    "nil transform",
			builder: WithMultiset(cosine).Tokenize(tokenize.Whitespace()).Transform(nil),
			reason:  "transform is nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.builder.Build()
			if err == nil {
				t.Fatalf("expected error, got metric %s", m)
			}
			if !errors.Is(err, internalerr.ErrInvalidComposition) {
				t.Errorf("expected ErrInvalidComposition, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.reason) {
				t.Errorf("error %q should mention %q", err, tt.reason)
			}

			if _, err := tt.builder.BuildDistance(); !errors.Is(err, internalerr.ErrInvalidComposition) {
				t.Errorf("BuildDistance: expected ErrInvalidComposition, got %v", err)
			}
		})
	}
}

func TestBuildAcceptsLegalCompositions(t *testing.T) {
	tests := []struct {
		name    string
		builder Builder
	}{
		{"bare string metric", WithString(levenshtein)},
		{"string metric with simplifiers", WithString(levenshtein).
			Simplify(simplify.RemoveDiacritics()).Simplify(simplify.ToLower()).SimplifierCache(2)},
		{"token metric", WithMultiset(cosine).Tokenize(tokenize.Whitespace())},
		{"chained tokenizers with filters", WithMultiset(cosine).
			Simplify(simplify.ToLower()).
			Tokenize(tokenize.Whitespace()).
			Filter(stopIt).
			Transform(reverse).
			Tokenize(tokenize.QGram(3)).
			TokenizerCache(4)},
		{"cache placed mid-chain", WithSet(tanimoto).
			Tokenize(tokenize.Whitespace()).TokenizerCache(4).Tokenize(tokenize.QGram(2))},
		{"sequence metric", WithSequence(metrics.SequenceLevenshtein[string]{}).Tokenize(tokenize.Words())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.builder.Build(); err != nil {
				t.Errorf("Build failed: %v", err)
			}
		})
	}
}

func TestBuilderIsImmutable(t *testing.T) {
	base := WithMultiset(cosine).Tokenize(tokenize.Whitespace())

	// Branch twice from the same base; the branches must not share stages.
	withFilter := base.Filter(stopIt)
	withQGrams := base.Tokenize(tokenize.QGram(3))

	words, err := base.Build()
	if err != nil {
		t.Fatal(err)
	}
	filtered, err := withFilter.Build()
	if err != nil {
		t.Fatal(err)
	}
	grams, err := withQGrams.Build()
	if err != nil {
		t.Fatal(err)
	}

	if got, want := words.String(), "CosineSimilarity [Whitespace]"; got != want {
		t.Errorf("base = %q, want %q", got, want)
	}
	if got, want := filtered.String(), "CosineSimilarity [Whitespace -> Filter(stage.FilterFunc)]"; got != want {
		t.Errorf("filtered = %q, want %q", got, want)
	}
	if got, want := grams.String(), "CosineSimilarity [Whitespace -> QGram(3)]"; got != want {
		t.Errorf("grams = %q, want %q", got, want)
	}
}

func TestBuildTwiceGivesIndependentCaches(t *testing.T) {
	b := WithMultiset(cosine).
		Simplify(simplify.ToLower()).SimplifierCache(4).
		Tokenize(tokenize.Whitespace()).TokenizerCache(4)

	m1, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	m2, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if m1.String() != m2.String() {
		t.Errorf("builds differ: %q vs %q", m1, m2)
	}

	if _, err := m1.Compare("Hello World", "hello there"); err != nil {
		t.Fatal(err)
	}

	s1, t1 := m1.CacheStats()
	s2, t2 := m2.CacheStats()
	if s1.Misses != 2 || t1.Misses != 2 {
		t.Errorf("m1 caches: simplifier %+v, tokenizer %+v", s1, t1)
	}
	if s2 != (cache.Stats{}) || t2 != (cache.Stats{}) {
		t.Errorf("m2 caches should be untouched: simplifier %+v, tokenizer %+v", s2, t2)
	}
}

func TestBuildDistanceRequiresDistanceAlgorithm(t *testing.T) {
	_, err := WithMultiset(cosine).Tokenize(tokenize.Whitespace()).BuildDistance()
	if !errors.Is(err, internalerr.ErrInvalidComposition) {
		t.Fatalf("expected ErrInvalidComposition, got %v", err)
	}
	if !strings.Contains(err.Error(), "CosineSimilarity does not measure distance") {
		t.Errorf("unexpected message: %v", err)
	}

	if _, err := WithSet(tanimoto).Tokenize(tokenize.Whitespace()).BuildDistance(); err == nil {
		t.Error("tanimoto has no distance form")
	}
}

func TestBuildLogsPipeline(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := WithMultiset(cosine).
		Tokenize(tokenize.Whitespace()).
		TokenizerCache(16).
		Logger(logger).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"metric assembled", "kind=multiset", "tokenizer_cache=16", "simplifier_cache=0"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}
