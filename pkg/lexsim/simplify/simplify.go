// Package simplify provides whole-string normalizers for metric pipelines.
package simplify

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/lexsim/pkg/lexsim/stage"
)

// named pairs a simplifier function with a readable name.
type named struct {
	name string
	fn   func(string) string
}

func (n named) Simplify(input string) string { return n.fn(input) }
func (n named) String() string                { return n.name }

// ToLower lowercases the input.
func ToLower() stage.Simplifier {
	return named{"ToLower", strings.ToLower}
}

// ToUpper uppercases the input.
func ToUpper() stage.Simplifier {
	return named{"ToUpper", strings.ToUpper}
}

// CaseFold applies Unicode full case folding, which is stronger than
// lowercasing for caseless matching ("Straße" and "STRASSE" fold equally).
func CaseFold() stage.Simplifier {
	return named{"CaseFold", func(s string) string {
		// cases.Caser is stateful; one per call keeps the simplifier reentrant.
		return cases.Fold().String(s)
	}}
}

// RemoveDiacritics strips combining marks: "Chilpéric" becomes "Chilperic".
func RemoveDiacritics() stage.Simplifier {
	return named{"RemoveDiacritics", func(s string) string {
		t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
		out, _, err := transform.String(t, s)
		if err != nil {
			return s
		}
		return out
	}}
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// RemoveNonWord drops every character that is not a letter, digit or underscore.
func RemoveNonWord() stage.Simplifier {
	return named{"RemoveNonWord", func(s string) string {
		return nonWord.ReplaceAllLiteralString(s, "")
	}}
}

// ReplaceNonWord replaces each run of non-word characters with replacement.
func ReplaceNonWord(replacement string) stage.Simplifier {
	return named{fmt.Sprintf("ReplaceNonWord(%q)", replacement), func(s string) string {
		return nonWord.ReplaceAllLiteralString(s, replacement)
	}}
}

// RemoveAll deletes every match of re.
func RemoveAll(re *regexp.Regexp) stage.Simplifier {
	return ReplaceAll(re, "")
}

// ReplaceAll replaces every match of re with the literal replacement.
func ReplaceAll(re *regexp.Regexp, replacement string) stage.Simplifier {
	name := "ReplaceAll(" + re.String() + ", " + replacement + ")"
	if replacement == "" {
		name = "RemoveAll(" + re.String() + ")"
	}
	return named{name, func(s string) string {
		return re.ReplaceAllLiteralString(s, replacement)
	}}
}

// Trim removes leading and trailing white space.
func Trim() stage.Simplifier {
	return named{"Trim", strings.TrimSpace}
}
