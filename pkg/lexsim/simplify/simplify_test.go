package simplify

import (
	"regexp"
	"testing"

	"github.com/cognicore/lexsim/pkg/lexsim/stage"
)

type testCase struct {
	input    string
	expected string
}

func runSimplifier(t *testing.T, s stage.Simplifier, tests []testCase) {
	t.Helper()
	hasEmpty := false
	for _, tt := range tests {
		if tt.input == "" {
			hasEmpty = true
		}
		if got := s.Simplify(tt.input); got != tt.expected {
			t.Errorf("%s(%q) = %q, want %q", stage.Name(s), tt.input, got, tt.expected)
		}
	}
	if !hasEmpty {
		t.Errorf("%s: test table must contain an empty input", stage.Name(s))
	}
}

func TestToLower(t *testing.T) {
	runSimplifier(t, ToLower(), []testCase{
		{"", ""},
		{"Hello World", "hello world"},
		{"ÉCOLE", "école"},
	})
}

func TestToUpper(t *testing.T) {
	runSimplifier(t, ToUpper(), []testCase{
		{"", ""},
		{"Hello World", "HELLO WORLD"},
	})
}

func TestCaseFold(t *testing.T) {
	runSimplifier(t, CaseFold(), []testCase{
		{"", ""},
		{"Straße", "strasse"},
		{"STRASSE", "strasse"},
	})
}

func TestRemoveDiacritics(t *testing.T) {
	runSimplifier(t, RemoveDiacritics(), []testCase{
		{"", ""},
		{"Chilpéric II son of Childeric II", "Chilperic II son of Childeric II"},
		{"crème brûlée", "creme brulee"},
		{"plain ascii", "plain ascii"},
	})
}

func TestRemoveNonWord(t *testing.T) {
	runSimplifier(t, RemoveNonWord(), []testCase{
		{"", ""},
		{"A quirky thing, it is.", "Aquirkythingitis"},
		{"snake_case stays", "snake_casestays"},
	})
}

func TestReplaceNonWord(t *testing.T) {
	runSimplifier(t, ReplaceNonWord(" "), []testCase{
		{"", ""},
		{"similar; a quirky thing", "similar a quirky thing"},
		{"it is.", "it is "},
	})
}

func TestReplaceAll(t *testing.T) {
	runSimplifier(t, ReplaceAll(regexp.MustCompile(`\d+`), "#"), []testCase{
		{"", ""},
		{"route 66 and 101", "route # and #"},
	})
	runSimplifier(t, RemoveAll(regexp.MustCompile(`[aeiou]`)), []testCase{
		{"", ""},
		{"sentence", "sntnc"},
	})
}

func TestTrim(t *testing.T) {
	runSimplifier(t, Trim(), []testCase{
		{"", ""},
		{"  padded\t\n", "padded"},
	})
}

func TestNames(t *testing.T) {
	tests := []struct {
		s    stage.Simplifier
		want string
	}{
		{ToLower(), "ToLower"},
		{RemoveDiacritics(), "RemoveDiacritics"},
		{RemoveAll(regexp.MustCompile(`x`)), "RemoveAll(x)"},
		{ReplaceAll(regexp.MustCompile(`x`), "y"), "ReplaceAll(x, y)"},
		{RemoveNonWord(), "RemoveNonWord"},
		{ReplaceNonWord(" "), `ReplaceNonWord(" ")`},
	}
	for _, tt := range tests {
		if got := stage.Name(tt.s); got != tt.want {
			t.Errorf("name = %q, want %q", got, tt.want)
		}
	}
}
