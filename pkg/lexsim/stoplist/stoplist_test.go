package stoplist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/lexsim/pkg/lexsim/stage"
)

func TestListBasic(t *testing.T) {
	l := New([]string{"the", "a", "and"})

	if !l.IsStop("the") {
		t.Error("'the' should be a stopword")
	}
	if l.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}
	if l.Len() != 3 {
		t.Errorf("Expected 3 stopwords, got %d", l.Len())
	}
}

func TestListAddRemove(t *testing.T) {
	l := New([]string{"the"})

	l.Add("test")
	if !l.IsStop("test") {
		t.Error("'test' should be stopword after adding")
	}

	l.Remove("test")
	if l.IsStop("test") {
		t.Error("'test' should not be stopword after removing")
	}
}

func TestListAllSorted(t *testing.T) {
	l := New([]string{"the", "a", "and", "a"})
	if diff := cmp.Diff([]string{"a", "and", "the"}, l.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterDropsStopwordsInOrder(t *testing.T) {
	f := New([]string{"it", "is", "a"}).Filter()
	toks := []string{"a", "quirky", "thing", "it", "is", "this", "is", "a", "sentence"}
	got := stage.KeepAll(f, toks)
	if diff := cmp.Diff([]string{"quirky", "thing", "this", "sentence"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterIsSnapshot(t *testing.T) {
	l := New([]string{"the"})
	f := l.Filter()

	l.Add("cat")
	l.Remove("the")

	if f.Keep("the") {
		t.Error("snapshot should still drop 'the'")
	}
	if !f.Keep("cat") {
		t.Error("snapshot should not see 'cat' added later")
	}
	if got := f.String(); got != "Stopwords(1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stoplist.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  - the\n  - a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !l.IsStop("the") || !l.IsStop("a") || l.Len() != 2 {
		t.Errorf("unexpected stoplist contents: %v", l.All())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/stoplist.yaml"); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("terms: [unclosed\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("Should error on malformed YAML")
	}
}
