// Package tokens provides the container shapes comparison algorithms consume:
// ordered sequences, sets and multisets of tokens.
package tokens

// Kind identifies the input shape a comparison algorithm consumes.
type Kind int

const (
	// KindString is a whole-string comparison; no tokenization happens.
	KindString Kind = iota
	// KindSequence is an ordered token list, duplicates allowed.
	KindSequence
	// KindSet holds unique tokens.
	KindSet
	// KindMultiset holds unique tokens with occurrence counts.
	KindMultiset
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindSet:
		return "set"
	case KindMultiset:
		return "multiset"
	default:
		return "unknown"
	}
}

// Tokenized reports whether inputs of this kind must be tokenized first.
func (k Kind) Tokenized() bool {
	return k == KindSequence || k == KindSet || k == KindMultiset
}

// Sequence is an ordered list of tokens.
type Sequence[T comparable] struct {
	items []T
}

// NewSequence wraps items. The slice is not copied; callers must not modify it afterwards.
func NewSequence[T comparable](items []T) *Sequence[T] {
	return &Sequence[T]{items: items}
}

// Len returns the number of tokens. A nil sequence has length 0.
func (s *Sequence[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the token at position i.
func (s *Sequence[T]) At(i int) T {
	return s.items[i]
}

// Items returns the underlying tokens. The result must be treated as read-only.
func (s *Sequence[T]) Items() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// Set is an unordered collection of unique tokens.
type Set[T comparable] struct {
	items map[T]struct{}
}

// NewSet builds a set from items in one pass.
func NewSet[T comparable](items []T) *Set[T] {
	m := make(map[T]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return &Set[T]{items: m}
}

// Len returns the number of unique tokens.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Contains reports whether token is in the set.
func (s *Set[T]) Contains(token T) bool {
	if s == nil {
		return false
	}
	_, ok := s.items[token]
	return ok
}

// Each calls fn for every token in unspecified order.
func (s *Set[T]) Each(fn func(T)) {
	if s == nil {
		return
	}
	for it := range s.items {
		fn(it)
	}
}

// IntersectionLen returns |s ∩ other| without allocating the intersection.
func (s *Set[T]) IntersectionLen(other *Set[T]) int {
	small, large := s, other
	if small.Len() > large.Len() {
		small, large = large, small
	}
	n := 0
	small.Each(func(t T) {
		if large.Contains(t) {
			n++
		}
	})
	return n
}

// Intersection returns a new set holding the tokens present in both sets.
func (s *Set[T]) Intersection(other *Set[T]) *Set[T] {
	out := &Set[T]{items: make(map[T]struct{})}
	s.Each(func(t T) {
		if other.Contains(t) {
			out.items[t] = struct{}{}
		}
	})
	return out
}

// Union returns a new set holding the tokens present in either set.
func (s *Set[T]) Union(other *Set[T]) *Set[T] {
	out := &Set[T]{items: make(map[T]struct{}, s.Len()+other.Len())}
	s.Each(func(t T) { out.items[t] = struct{}{} })
	other.Each(func(t T) { out.items[t] = struct{}{} })
	return out
}

// Multiset tracks unique tokens together with how often each occurred.
type Multiset[T comparable] struct {
	counts map[T]int
	size   int
}

// NewMultiset counts items in one pass.
func NewMultiset[T comparable](items []T) *Multiset[T] {
	m := make(map[T]int, len(items))
	for _, it := range items {
		m[it]++
	}
	return &Multiset[T]{counts: m, size: len(items)}
}

// Len returns the total number of occurrences (sum of counts).
func (m *Multiset[T]) Len() int {
	if m == nil {
		return 0
	}
	return m.size
}

// Distinct returns the number of unique tokens.
func (m *Multiset[T]) Distinct() int {
	if m == nil {
		return 0
	}
	return len(m.counts)
}

// Count returns the number of occurrences of token, 0 if absent.
func (m *Multiset[T]) Count(token T) int {
	if m == nil {
		return 0
	}
	return m.counts[token]
}

// Contains reports whether token occurs at least once.
func (m *Multiset[T]) Contains(token T) bool {
	return m.Count(token) > 0
}

// Each calls fn once per distinct token with its count.
func (m *Multiset[T]) Each(fn func(token T, count int)) {
	if m == nil {
		return
	}
	for t, c := range m.counts {
		fn(t, c)
	}
}

// UnionElements returns the distinct tokens of a and b, each exactly once.
// Tokens of a come first, followed by the tokens only b holds.
func UnionElements[T comparable](a, b *Multiset[T]) []T {
	out := make([]T, 0, a.Distinct()+b.Distinct())
	a.Each(func(t T, _ int) { out = append(out, t) })
	b.Each(func(t T, _ int) {
		if !a.Contains(t) {
			out = append(out, t)
		}
	})
	return out
}
