// Package stage defines the pure transformation units a metric pipeline is
// assembled from. Implementations must be stateless and safe for concurrent use.
package stage

import (
	"fmt"
	"strings"
)

// Simplifier normalizes a whole string before tokenization.
type Simplifier interface {
	Simplify(input string) string
}

// Tokenizer splits a string into tokens.
type Tokenizer interface {
	Tokenize(input string) []string
}

// Filter decides whether a token survives.
type Filter interface {
	Keep(token string) bool
}

// Transform maps a token to a new token.
type Transform interface {
	Apply(token string) string
}

// SimplifierFunc adapts a plain function to a Simplifier.
type SimplifierFunc func(string) string

// Simplify implements Simplifier.
func (f SimplifierFunc) Simplify(input string) string { return f(input) }

// TokenizerFunc adapts a plain function to a Tokenizer.
type TokenizerFunc func(string) []string

// Tokenize implements Tokenizer.
func (f TokenizerFunc) Tokenize(input string) []string { return f(input) }

// FilterFunc adapts a predicate to a Filter.
type FilterFunc func(string) bool

// Keep implements Filter.
func (f FilterFunc) Keep(token string) bool { return f(token) }

// TransformFunc adapts a plain function to a Transform.
type TransformFunc func(string) string

// Apply implements Transform.
func (f TransformFunc) Apply(token string) string { return f(token) }

// Name returns a readable label for a stage: its String method when it has
// one, otherwise its Go type.
func Name(s any) string {
	if st, ok := s.(fmt.Stringer); ok {
		return st.String()
	}
	return fmt.Sprintf("%T", s)
}

// ChainSimplifiers applies simplifiers left to right.
func ChainSimplifiers(simplifiers ...Simplifier) Simplifier {
	if len(simplifiers) == 1 {
		return simplifiers[0]
	}
	return simplifierChain(append([]Simplifier(nil), simplifiers...))
}

type simplifierChain []Simplifier

func (c simplifierChain) Simplify(input string) string {
	for _, s := range c {
		input = s.Simplify(input)
	}
	return input
}

func (c simplifierChain) String() string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = Name(s)
	}
	return strings.Join(names, " -> ")
}

// ChainTokenizers tokenizes with the first tokenizer and re-tokenizes every
// resulting token with the next one, flattening the results in order.
func ChainTokenizers(tokenizers ...Tokenizer) Tokenizer {
	if len(tokenizers) == 1 {
		return tokenizers[0]
	}
	return tokenizerChain(append([]Tokenizer(nil), tokenizers...))
}

type tokenizerChain []Tokenizer

func (c tokenizerChain) Tokenize(input string) []string {
	if len(c) == 0 {
		return []string{input}
	}
	toks := c[0].Tokenize(input)
	for _, t := range c[1:] {
		toks = Retokenize(t, toks)
	}
	return toks
}

func (c tokenizerChain) String() string {
	names := make([]string, len(c))
	for i, t := range c {
		names[i] = Name(t)
	}
	return strings.Join(names, " -> ")
}

// Retokenize runs t over every token and concatenates the results.
func Retokenize(t Tokenizer, tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, t.Tokenize(tok)...)
	}
	return out
}

// KeepAll returns the tokens f keeps, in their original order.
func KeepAll(f Filter, tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if f.Keep(tok) {
			out = append(out, tok)
		}
	}
	return out
}

// ApplyAll maps every token through t.
func ApplyAll(t Transform, tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = t.Apply(tok)
	}
	return out
}

// Not inverts a filter.
func Not(f Filter) Filter {
	return FilterFunc(func(token string) bool { return !f.Keep(token) })
}

// In keeps tokens that are members of words.
func In(words ...string) Filter {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return FilterFunc(func(token string) bool {
		_, ok := set[token]
		return ok
	})
}

// MinLength keeps tokens with at least n runes.
func MinLength(n int) Filter {
	return FilterFunc(func(token string) bool {
		return len([]rune(token)) >= n
	})
}
