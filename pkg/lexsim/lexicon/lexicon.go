// Package lexicon maps token variants onto canonical forms so that, for
// example, "colour" and "color" count as the same token.
package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon stores synonym groups:
// - Synonyms: different words with same meaning (car ↔ automobile)
// - Variants: inflections/forms (analyze ↔ analysis ↔ analytical)
// - Acronyms: abbreviations (st ↔ street)
//
// All entries are lowercased. A Lexicon is not safe for concurrent
// mutation; pipelines use the snapshot returned by Transform.
type Lexicon struct {
	// canonical -> all variants (including canonical itself)
	// Example: "street" -> ["street", "st", "str"]
	synonyms map[string][]string

	// variant -> canonical
	// Example: "st" -> "street"
	reverseIndex map[string]string
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{
		synonyms:     make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// LoadFromYAML loads synonym mappings from a YAML file.
//
// Expected format:
//
//	synonyms:
//	  - canonical: street
//	    variants: [st, str]
//	  - canonical: avenue
//	    variants: [ave, av]
func LoadFromYAML(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}

	lex := New()
	for _, entry := range config.Synonyms {
		if strings.TrimSpace(entry.Canonical) == "" {
			return nil, fmt.Errorf("parse lexicon %s: synonym group without canonical form", path)
		}
		lex.AddSynonymGroup(entry.Canonical, entry.Variants)
	}

	return lex, nil
}

// AddSynonymGroup adds a synonym group with a canonical form and its variants.
// The canonical form is always included as the first entry in the variants list.
// If the group already exists, old reverse index entries are cleaned up first.
func (l *Lexicon) AddSynonymGroup(canonical string, variants []string) {
	canonical = strings.ToLower(canonical)

	if oldVariants, exists := l.synonyms[canonical]; exists {
		for _, oldV := range oldVariants {
			delete(l.reverseIndex, oldV)
		}
	}

	normalized := make([]string, 0, len(variants)+1)
	seen := make(map[string]bool)

	normalized = append(normalized, canonical)
	seen[canonical] = true

	for _, v := range variants {
		v = strings.ToLower(v)
		if !seen[v] {
			normalized = append(normalized, v)
			seen[v] = true
		}
	}

	l.synonyms[canonical] = normalized

	for _, v := range normalized {
		l.reverseIndex[v] = canonical
	}
}

// Normalize returns the canonical form of a token.
// If the token is not in the lexicon, returns the lowercased token.
//
// Examples:
//   - Normalize("St") -> "street"
//   - Normalize("unknown") -> "unknown"
func (l *Lexicon) Normalize(token string) string {
	token = strings.ToLower(token)
	if canonical, ok := l.reverseIndex[token]; ok {
		return canonical
	}
	return token
}

// Variants returns all known variants of a token (including the canonical form).
// If the token is not in the lexicon, returns a slice containing only the token itself.
func (l *Lexicon) Variants(token string) []string {
	token = strings.ToLower(token)

	if variants, ok := l.synonyms[token]; ok {
		return variants
	}

	if canonical, ok := l.reverseIndex[token]; ok {
		if variants, ok := l.synonyms[canonical]; ok {
			return variants
		}
	}

	return []string{token}
}

// HasSynonyms returns true if the token has synonyms/variants in the lexicon.
func (l *Lexicon) HasSynonyms(token string) bool {
	_, exists := l.reverseIndex[strings.ToLower(token)]
	return exists
}

// Stats returns statistics about the lexicon contents.
func (l *Lexicon) Stats() Stats {
	totalVariants := 0
	for _, variants := range l.synonyms {
		totalVariants += len(variants)
	}
	return Stats{
		SynonymGroups: len(l.synonyms),
		TotalVariants: totalVariants,
	}
}

// Stats holds statistics about lexicon contents.
type Stats struct {
	SynonymGroups int // Number of canonical forms (synonym groups)
	TotalVariants int // Total number of variants across all groups
}

// Transform returns a token transform that replaces every known variant with
// its canonical form. Like Normalize, it lowercases every token it sees,
// including tokens the lexicon does not know, so a pipeline with a lexicon
// stage is case-insensitive from that stage on. The transform captures the
// lexicon as it is now and is safe for concurrent use.
func (l *Lexicon) Transform() *Transform {
	index := make(map[string]string, len(l.reverseIndex))
	for v, c := range l.reverseIndex {
		index[v] = c
	}
	return &Transform{index: index}
}

// Transform normalizes tokens to their canonical form.
type Transform struct {
	index map[string]string
}

// Apply implements stage.Transform. It returns the canonical form of a known
// variant and the lowercased token otherwise.
func (t *Transform) Apply(token string) string {
	token = strings.ToLower(token)
	if canonical, ok := t.index[token]; ok {
		return canonical
	}
	return token
}

func (t *Transform) String() string {
	return fmt.Sprintf("Lexicon(%d)", len(t.index))
}
