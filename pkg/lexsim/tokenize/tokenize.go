// Package tokenize provides tokenizers for metric pipelines.
package tokenize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cognicore/lexsim/pkg/lexsim/stage"
)

// Whitespace splits on runs of Unicode white space. It never yields empty tokens.
func Whitespace() stage.Tokenizer {
	return whitespace{}
}

type whitespace struct{}

func (whitespace) Tokenize(input string) []string { return strings.Fields(input) }
func (whitespace) String() string                 { return "Whitespace" }

// Pattern splits on every match of re, dropping empty tokens.
func Pattern(re *regexp.Regexp) stage.Tokenizer {
	return pattern{re: re}
}

type pattern struct {
	re *regexp.Regexp
}

func (p pattern) Tokenize(input string) []string {
	parts := p.re.Split(input, -1)
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (p pattern) String() string { return "Pattern(" + p.re.String() + ")" }

// QGram splits its input into overlapping runs of q runes. Inputs of at most
// q runes are returned whole so short words still produce a token.
// It panics if q < 1.
func QGram(q int) stage.Tokenizer {
	if q < 1 {
		panic(fmt.Sprintf("tokenize: q must be positive, got %d", q))
	}
	return qgram{q: q}
}

type qgram struct {
	q int
}

func (g qgram) Tokenize(input string) []string {
	if input == "" {
		return []string{}
	}
	r := []rune(input)
	if len(r) <= g.q {
		return []string{input}
	}
	return grams(r, g.q)
}

func (g qgram) String() string { return fmt.Sprintf("QGram(%d)", g.q) }

// QGramWithPadding pads both ends of the input with q-1 copies of pad before
// splitting it into q-grams, so the first and last runes get as many grams as
// the inner ones. It panics if q < 1.
func QGramWithPadding(q int, pad string) stage.Tokenizer {
	if q < 1 {
		panic(fmt.Sprintf("tokenize: q must be positive, got %d", q))
	}
	return paddedQGram{q: q, pad: strings.Repeat(pad, q-1)}
}

type paddedQGram struct {
	q   int
	pad string
}

func (g paddedQGram) Tokenize(input string) []string {
	if input == "" {
		return []string{}
	}
	r := []rune(g.pad + input + g.pad)
	if len(r) <= g.q {
		return []string{string(r)}
	}
	return grams(r, g.q)
}

func (g paddedQGram) String() string {
	return fmt.Sprintf("QGramWithPadding(%d, %q)", g.q, g.pad)
}

func grams(r []rune, q int) []string {
	out := make([]string, 0, len(r)-q+1)
	for i := 0; i+q <= len(r); i++ {
		out = append(out, string(r[i:i+q]))
	}
	return out
}
