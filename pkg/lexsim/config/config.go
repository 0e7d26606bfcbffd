// Package config loads metric definitions from YAML.
//
// A definition names the comparison algorithm and lists the pipeline stages
// in order:
//
//	metric: cosine
//	simplifiers: [lower, {replace_non_word: " "}]
//	simplifier_cache: 64
//	stages:
//	  - tokenize: whitespace
//	  - filter: {stopwords: [it, is, a]}
//	  - transform: {lexicon: lexicon.yaml}
//	  - tokenize: {qgram: 3}
//	tokenizer_cache: 64
//
// Stages are written either as a bare name or as a single-key mapping that
// carries the stage argument. Relative file paths resolve against the
// directory of the definition file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexsim/pkg/lexsim"
	"github.com/cognicore/lexsim/pkg/lexsim/cache"
	"github.com/cognicore/lexsim/pkg/lexsim/internalerr"
	"github.com/cognicore/lexsim/pkg/lexsim/lexicon"
	"github.com/cognicore/lexsim/pkg/lexsim/metrics"
	"github.com/cognicore/lexsim/pkg/lexsim/simplify"
	"github.com/cognicore/lexsim/pkg/lexsim/stage"
	"github.com/cognicore/lexsim/pkg/lexsim/stoplist"
	"github.com/cognicore/lexsim/pkg/lexsim/tokenize"
)

// Definition is a parsed metric definition.
type Definition struct {
	Metric          string  `yaml:"metric"`
	Costs           *Costs  `yaml:"costs"`
	Simplifiers     []Entry `yaml:"simplifiers"`
	SimplifierCache int     `yaml:"simplifier_cache"`
	Stages          []Stage `yaml:"stages"`
	TokenizerCache  int     `yaml:"tokenizer_cache"`
	SingleFlight    bool    `yaml:"single_flight"`

	// BaseDir anchors relative stoplist and lexicon paths.
	BaseDir string `yaml:"-"`
}

// Costs are edit weights for the levenshtein metrics. Insertions and
// deletions share one weight.
type Costs struct {
	InsertDelete float64 `yaml:"insert_delete"`
	Substitute   float64 `yaml:"substitute"`
}

// Stage is one token-level step. Exactly one field is set.
type Stage struct {
	Tokenize  *Entry `yaml:"tokenize"`
	Filter    *Entry `yaml:"filter"`
	Transform *Entry `yaml:"transform"`
}

// Entry is a stage written as a bare name ("lower") or as a single-key
// mapping carrying an argument ({qgram: 3}).
type Entry struct {
	Name string
	Arg  yaml.Node
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Entry) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		e.Name = n.Value
		return nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("line %d: stage must have exactly one key, got %d", n.Line, len(n.Content)/2)
		}
		e.Name = n.Content[0].Value
		e.Arg = *n.Content[1]
		return nil
	}
	return fmt.Errorf("line %d: expected a stage name or a single-key mapping", n.Line)
}

func (e Entry) decode(v any) error {
	if e.Arg.Kind == 0 {
		return fmt.Errorf("%s requires an argument", e.Name)
	}
	if err := e.Arg.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	return nil
}

func (e Entry) noArg() error {
	if e.Arg.Kind != 0 {
		return fmt.Errorf("%s takes no argument", e.Name)
	}
	return nil
}

// LoadMetric reads a metric definition from a YAML file.
func LoadMetric(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	def, err := ParseMetric(data)
	if err != nil {
		return nil, fmt.Errorf("load metric %s: %w", path, err)
	}
	def.BaseDir = filepath.Dir(path)
	return def, nil
}

// ParseMetric decodes a metric definition. Unknown keys are rejected.
func ParseMetric(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty metric definition: %w", internalerr.ErrInvalidConfig)
		}
		return nil, fmt.Errorf("parse metric: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if def.Metric == "" {
		return nil, fmt.Errorf("parse metric: metric is required: %w", internalerr.ErrInvalidConfig)
	}
	return &def, nil
}

// Builder translates the definition into a lexsim.Builder. Naming errors and
// unreadable stoplist or lexicon files fail here with ErrInvalidConfig;
// composition rules are left to Build.
func (d *Definition) Builder() (lexsim.Builder, error) {
	b, err := d.terminal()
	if err != nil {
		return lexsim.Builder{}, d.fail(err)
	}

	for i, e := range d.Simplifiers {
		s, err := simplifier(e)
		if err != nil {
			return lexsim.Builder{}, d.fail(fmt.Errorf("simplifier %d: %w", i, err))
		}
		b = b.Simplify(s)
	}
	if d.SimplifierCache != 0 {
		b = b.SimplifierCache(d.SimplifierCache)
	}

	for i, st := range d.Stages {
		b, err = d.stage(b, st)
		if err != nil {
			return lexsim.Builder{}, d.fail(fmt.Errorf("stage %d: %w", i, err))
		}
	}
	if d.TokenizerCache != 0 {
		b = b.TokenizerCache(d.TokenizerCache)
	}

	if d.SingleFlight {
		b = b.CacheOptions(cache.WithSingleFlight())
	}
	return b, nil
}

// Build is Builder followed by lexsim.Builder.Build.
func (d *Definition) Build() (*lexsim.Metric, error) {
	b, err := d.Builder()
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// BuildDistance is Builder followed by lexsim.Builder.BuildDistance.
func (d *Definition) BuildDistance() (*lexsim.DistanceMetric, error) {
	b, err := d.Builder()
	if err != nil {
		return nil, err
	}
	return b.BuildDistance()
}

func (d *Definition) fail(err error) error {
	return fmt.Errorf("metric %s: %w: %w", d.Metric, err, internalerr.ErrInvalidConfig)
}

// Metrics lists the algorithm names a definition may use.
var Metrics = []string{
	"identity", "levenshtein", "sequence_levenshtein",
	"cosine", "euclidean", "block", "tanimoto", "jaccard", "dice",
}

func (d *Definition) terminal() (lexsim.Builder, error) {
	if d.Costs != nil && d.Metric != "levenshtein" && d.Metric != "sequence_levenshtein" {
		return lexsim.Builder{}, fmt.Errorf("costs apply only to levenshtein metrics")
	}

	switch d.Metric {
	case "identity":
		return lexsim.WithString(metrics.Identity{}), nil
	case "levenshtein":
		if d.Costs == nil {
			return lexsim.WithString(metrics.NewLevenshtein()), nil
		}
		lev, err := metrics.NewWeightedLevenshtein(metrics.Costs(*d.Costs))
		if err != nil {
			return lexsim.Builder{}, err
		}
		return lexsim.WithString(lev), nil
	case "sequence_levenshtein":
		if d.Costs == nil {
			return lexsim.WithSequence(metrics.SequenceLevenshtein[string]{}), nil
		}
		seq, err := metrics.NewSequenceLevenshtein[string](metrics.Costs(*d.Costs))
		if err != nil {
			return lexsim.Builder{}, err
		}
		return lexsim.WithSequence(seq), nil
	case "cosine":
		return lexsim.WithMultiset(metrics.CosineSimilarity[string]{}), nil
	case "euclidean":
		return lexsim.WithMultiset(metrics.EuclideanDistance[string]{}), nil
	case "block":
		return lexsim.WithMultiset(metrics.BlockDistance[string]{}), nil
	case "tanimoto":
		return lexsim.WithSet(metrics.TanimotoCoefficient[string]{}), nil
	case "jaccard":
		return lexsim.WithSet(metrics.JaccardSimilarity[string]{}), nil
	case "dice":
		return lexsim.WithSet(metrics.DiceSimilarity[string]{}), nil
	}
	return lexsim.Builder{}, fmt.Errorf("unknown metric %q", d.Metric)
}

func simplifier(e Entry) (stage.Simplifier, error) {
	bare := map[string]func() stage.Simplifier{
		"lower":           simplify.ToLower,
		"upper":           simplify.ToUpper,
		"casefold":        simplify.CaseFold,
		"diacritics":      simplify.RemoveDiacritics,
		"remove_non_word": simplify.RemoveNonWord,
		"trim":            simplify.Trim,
	}
	if fn, ok := bare[e.Name]; ok {
		if err := e.noArg(); err != nil {
			return nil, err
		}
		return fn(), nil
	}

	switch e.Name {
	case "replace_non_word":
		var with string
		if err := e.decode(&with); err != nil {
			return nil, err
		}
		return simplify.ReplaceNonWord(with), nil
	case "remove":
		re, err := pattern(e)
		if err != nil {
			return nil, err
		}
		return simplify.RemoveAll(re), nil
	case "replace":
		var arg struct {
			Pattern string `yaml:"pattern"`
			With    string `yaml:"with"`
		}
		if err := e.decode(&arg); err != nil {
			return nil, err
		}
		re, err := regexp.Compile(arg.Pattern)
		if err != nil {
			return nil, fmt.Errorf("replace: %w", err)
		}
		return simplify.ReplaceAll(re, arg.With), nil
	}
	return nil, fmt.Errorf("unknown simplifier %q", e.Name)
}

func (d *Definition) stage(b lexsim.Builder, st Stage) (lexsim.Builder, error) {
	set := 0
	for _, e := range []*Entry{st.Tokenize, st.Filter, st.Transform} {
		if e != nil {
			set++
		}
	}
	if set != 1 {
		return b, fmt.Errorf("expected exactly one of tokenize, filter or transform")
	}

	switch {
	case st.Tokenize != nil:
		t, err := tokenizer(*st.Tokenize)
		if err != nil {
			return b, err
		}
		return b.Tokenize(t), nil
	case st.Filter != nil:
		f, err := d.filter(*st.Filter)
		if err != nil {
			return b, err
		}
		return b.Filter(f), nil
	default:
		t, err := d.transform(*st.Transform)
		if err != nil {
			return b, err
		}
		return b.Transform(t), nil
	}
}

func tokenizer(e Entry) (stage.Tokenizer, error) {
	switch e.Name {
	case "whitespace":
		if err := e.noArg(); err != nil {
			return nil, err
		}
		return tokenize.Whitespace(), nil
	case "words":
		if err := e.noArg(); err != nil {
			return nil, err
		}
		return tokenize.Words(), nil
	case "qgram":
		var q int
		if err := e.decode(&q); err != nil {
			return nil, err
		}
		if q < 1 {
			return nil, fmt.Errorf("qgram: q must be positive, got %d", q)
		}
		return tokenize.QGram(q), nil
	case "qgram_padded":
		arg := struct {
			Q   int    `yaml:"q"`
			Pad string `yaml:"pad"`
		}{Pad: "#"}
		if err := e.decode(&arg); err != nil {
			return nil, err
		}
		if arg.Q < 1 {
			return nil, fmt.Errorf("qgram_padded: q must be positive, got %d", arg.Q)
		}
		return tokenize.QGramWithPadding(arg.Q, arg.Pad), nil
	case "pattern":
		re, err := pattern(e)
		if err != nil {
			return nil, err
		}
		return tokenize.Pattern(re), nil
	}
	return nil, fmt.Errorf("unknown tokenizer %q", e.Name)
}

func (d *Definition) filter(e Entry) (stage.Filter, error) {
	switch e.Name {
	case "stopwords":
		var terms []string
		if err := e.decode(&terms); err != nil {
			return nil, err
		}
		return stoplist.New(terms).Filter(), nil
	case "stoplist":
		var path string
		if err := e.decode(&path); err != nil {
			return nil, err
		}
		sl, err := stoplist.Load(d.resolve(path))
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		return sl.Filter(), nil
	case "min_length":
		var n int
		if err := e.decode(&n); err != nil {
			return nil, err
		}
		return stage.MinLength(n), nil
	}
	return nil, fmt.Errorf("unknown filter %q", e.Name)
}

func (d *Definition) transform(e Entry) (stage.Transform, error) {
	switch e.Name {
	case "lexicon":
		var path string
		if err := e.decode(&path); err != nil {
			return nil, err
		}
		lex, err := lexicon.LoadFromYAML(d.resolve(path))
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		return lex.Transform(), nil
	case "synonyms":
		var groups map[string][]string
		if err := e.decode(&groups); err != nil {
			return nil, err
		}
		// Groups are added in canonical order so that a variant listed
		// under two canonicals always maps to the later one.
		canonicals := make([]string, 0, len(groups))
		for c := range groups {
			canonicals = append(canonicals, c)
		}
		sort.Strings(canonicals)
		lex := lexicon.New()
		for _, c := range canonicals {
			lex.AddSynonymGroup(c, groups[c])
		}
		return lex.Transform(), nil
	}
	return nil, fmt.Errorf("unknown transform %q", e.Name)
}

func pattern(e Entry) (*regexp.Regexp, error) {
	var expr string
	if err := e.decode(&expr); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return re, nil
}

func (d *Definition) resolve(path string) string {
	if filepath.IsAbs(path) || d.BaseDir == "" {
		return path
	}
	return filepath.Join(d.BaseDir, path)
}
