package stage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var split = TokenizerFunc(strings.Fields)

var chars = TokenizerFunc(func(s string) []string {
	return strings.Split(s, "")
})

func TestChainSimplifiers(t *testing.T) {
	s := ChainSimplifiers(
		SimplifierFunc(strings.TrimSpace),
		SimplifierFunc(strings.ToUpper),
	)
	if got := s.Simplify("  hello "); got != "HELLO" {
		t.Errorf("got %q, want HELLO", got)
	}
	if got := s.Simplify(""); got != "" {
		t.Errorf("empty input: got %q", got)
	}
}

func TestChainSimplifiersOrder(t *testing.T) {
	appendA := SimplifierFunc(func(s string) string { return s + "a" })
	appendB := SimplifierFunc(func(s string) string { return s + "b" })
	if got := ChainSimplifiers(appendA, appendB).Simplify(""); got != "ab" {
		t.Errorf("got %q, want ab", got)
	}
	if got := ChainSimplifiers(appendB, appendA).Simplify(""); got != "ba" {
		t.Errorf("got %q, want ba", got)
	}
}

func TestChainTokenizersFlattensInOrder(t *testing.T) {
	tok := ChainTokenizers(split, chars)
	got := tok.Tokenize("ab cd")
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := tok.Tokenize(""); len(got) != 0 {
		t.Errorf("empty input should yield no tokens, got %v", got)
	}
}

func TestKeepAllPreservesOrder(t *testing.T) {
	toks := []string{"it", "is", "a", "quirky", "thing", "it", "is"}
	got := KeepAll(Not(In("it", "is")), toks)
	if diff := cmp.Diff([]string{"a", "quirky", "thing"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	// input untouched
	if toks[0] != "it" {
		t.Error("KeepAll modified its input")
	}
}

func TestApplyAll(t *testing.T) {
	reverse := TransformFunc(func(s string) string {
		r := []rune(s)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return string(r)
	})
	got := ApplyAll(reverse, []string{"abc", "xy", ""})
	if diff := cmp.Diff([]string{"cba", "yx", ""}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMinLength(t *testing.T) {
	got := KeepAll(MinLength(2), []string{"a", "ab", "é", "éé"})
	if diff := cmp.Diff([]string{"ab", "éé"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

type named struct{ SimplifierFunc }

func (named) String() string { return "Named" }

func TestName(t *testing.T) {
	if got := Name(named{}); got != "Named" {
		t.Errorf("got %q, want Named", got)
	}
	if got := Name(split); got != "stage.TokenizerFunc" {
		t.Errorf("got %q, want stage.TokenizerFunc", got)
	}
	chain := ChainSimplifiers(named{}, named{})
	if got := Name(chain); got != "Named -> Named" {
		t.Errorf("got %q", got)
	}
}
