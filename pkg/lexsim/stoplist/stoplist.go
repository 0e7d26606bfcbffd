// Package stoplist manages stopword lists and turns them into token filters.
package stoplist

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// List is a mutable set of stopwords. It is not safe for concurrent
// mutation; pipelines use the immutable snapshot returned by Filter.
type List struct {
	stops map[string]struct{}
}

// New creates a stoplist from the given terms.
func New(terms []string) *List {
	stops := make(map[string]struct{}, len(terms))
	for _, s := range terms {
		stops[s] = struct{}{}
	}
	return &List{stops: stops}
}

// Load reads a stoplist from a YAML file of the form:
//
//	terms:
//	  - the
//	  - a
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl struct {
		Terms []string `yaml:"terms"`
	}
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse stoplist %s: %w", path, err)
	}

	return New(sl.Terms), nil
}

// IsStop checks if a token is a stopword
func (l *List) IsStop(token string) bool {
	_, ok := l.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (l *List) Add(token string) {
	l.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (l *List) Remove(token string) {
	delete(l.stops, token)
}

// All returns all stopwords in sorted order.
func (l *List) All() []string {
	result := make([]string, 0, len(l.stops))
	for s := range l.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of stopwords.
func (l *List) Len() int {
	return len(l.stops)
}

// Filter returns a token filter that drops the current stopwords. Later
// changes to the list do not affect filters already handed out.
func (l *List) Filter() *Filter {
	snapshot := make(map[string]struct{}, len(l.stops))
	for s := range l.stops {
		snapshot[s] = struct{}{}
	}
	return &Filter{stops: snapshot}
}

// Filter keeps tokens that are not stopwords. It is immutable and safe for
// concurrent use.
type Filter struct {
	stops map[string]struct{}
}

// Keep implements stage.Filter.
func (f *Filter) Keep(token string) bool {
	_, stop := f.stops[token]
	return !stop
}

func (f *Filter) String() string {
	return fmt.Sprintf("Stopwords(%d)", len(f.stops))
}
