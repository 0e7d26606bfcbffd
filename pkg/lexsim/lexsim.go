// Package lexsim composes string similarity metrics.
//
// A metric is a pipeline of whole-string simplifiers, tokenizers and
// per-token filters or transforms, terminated by a comparison algorithm:
//
//	metric, err := lexsim.WithMultiset(metrics.CosineSimilarity[string]{}).
//		Simplify(simplify.ToLower()).
//		Tokenize(tokenize.Whitespace()).
//		Tokenize(tokenize.QGram(3)).
//		Build()
//
//	score, err := metric.Compare("A quirky thing", "a quirky thing")
//
// Build validates the composition, so an illegal pipeline (a token metric
// without a tokenizer, a filter before any tokenizer, ...) fails there and
// never at comparison time.
package lexsim

import (
	"github.com/cognicore/lexsim/pkg/lexsim/metrics"
	"github.com/cognicore/lexsim/pkg/lexsim/tokenize"
)

func mustBuild(b Builder) *Metric {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}

// Identity scores 1 for equal strings and 0 otherwise.
func Identity() *Metric {
	return mustBuild(WithString(metrics.Identity{}))
}

// Levenshtein is the unit-cost edit distance similarity over runes.
func Levenshtein() *Metric {
	return mustBuild(WithString(metrics.NewLevenshtein()))
}

// CosineSimilarity compares whitespace-separated words as count vectors.
func CosineSimilarity() *Metric {
	return mustBuild(WithMultiset(metrics.CosineSimilarity[string]{}).
		Tokenize(tokenize.Whitespace()))
}

// EuclideanDistance compares whitespace-separated words as count vectors.
func EuclideanDistance() *Metric {
	return mustBuild(WithMultiset(metrics.EuclideanDistance[string]{}).
		Tokenize(tokenize.Whitespace()))
}

// BlockDistance compares whitespace-separated words by L1 distance.
func BlockDistance() *Metric {
	return mustBuild(WithMultiset(metrics.BlockDistance[string]{}).
		Tokenize(tokenize.Whitespace()))
}

// TanimotoCoefficient compares the sets of whitespace-separated words.
func TanimotoCoefficient() *Metric {
	return mustBuild(WithSet(metrics.TanimotoCoefficient[string]{}).
		Tokenize(tokenize.Whitespace()))
}

// Jaccard compares the sets of whitespace-separated words.
func Jaccard() *Metric {
	return mustBuild(WithSet(metrics.JaccardSimilarity[string]{}).
		Tokenize(tokenize.Whitespace()))
}

// Dice compares the sets of whitespace-separated words.
func Dice() *Metric {
	return mustBuild(WithSet(metrics.DiceSimilarity[string]{}).
		Tokenize(tokenize.Whitespace()))
}

// QGramsDistance is the block distance between padded trigram multisets.
func QGramsDistance() *Metric {
	return mustBuild(WithMultiset(metrics.BlockDistance[string]{}).
		Tokenize(tokenize.QGramWithPadding(3, "#")))
}
