package tokenize

import (
	"strings"
	"unicode"

	"github.com/cognicore/lexsim/pkg/lexsim/stage"
)

// Words scans letters, digits and hyphens into lowercase tokens. Everything
// else separates tokens. Leading and trailing hyphens are stripped and
// repeated hyphens collapse to one, so "--state-of--the-art-" yields
// "state-of-the-art".
func Words() stage.Tokenizer {
	return words{}
}

type words struct{}

func (words) String() string { return "Words" }

func (words) Tokenize(text string) []string {
	tokens := []string{}
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := cleanToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// cleanToken strips leading/trailing hyphens and normalizes consecutive hyphens
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}
