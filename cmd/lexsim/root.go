package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cognicore/lexsim/internal/logging"
	"github.com/cognicore/lexsim/pkg/lexsim"
	"github.com/cognicore/lexsim/pkg/lexsim/config"
)

type rootFlags struct {
	metric    string
	config    string
	debug     bool
	logFormat string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "lexsim",
		Short: "Compare strings with composable similarity metrics",
		Long: "lexsim scores how similar two strings are. A metric is either one of the\n" +
			"built-in presets (--metric) or a YAML pipeline definition (--config).",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Version: version,
	}

	f := root.PersistentFlags()
	f.StringVar(&flags.metric, "metric", "levenshtein", "Preset metric name (see 'lexsim metrics')")
	f.StringVar(&flags.config, "config", "", "YAML metric definition; overrides --metric")
	f.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	f.StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")

	root.AddCommand(newCompareCmd(flags))
	root.AddCommand(newDistanceCmd(flags))
	root.AddCommand(newExplainCmd(flags))
	root.AddCommand(newMetricsCmd())
	return root
}

// setup returns the logger and the builder described by the flags.
func (f *rootFlags) setup(cmd *cobra.Command) (*slog.Logger, lexsim.Builder, error) {
	logger, err := logging.New(cmd.ErrOrStderr(), f.logFormat, f.debug)
	if err != nil {
		return nil, lexsim.Builder{}, err
	}

	def, err := f.definition()
	if err != nil {
		return nil, lexsim.Builder{}, err
	}

	b, err := def.Builder()
	if err != nil {
		return nil, lexsim.Builder{}, err
	}
	return logger, b.Logger(logger), nil
}

func (f *rootFlags) definition() (*config.Definition, error) {
	if f.config != "" {
		def, err := config.LoadMetric(f.config)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return def, nil
	}
	return preset(f.metric)
}

// presets are the definitions behind --metric names that do not simply
// split on white space.
var presets = map[string]string{
	"identity":    "metric: identity\n",
	"levenshtein": "metric: levenshtein\n",
	"qgrams":      "metric: block\nstages:\n  - tokenize: {qgram_padded: {q: 3}}\n",
}

// preset resolves a --metric name. Names without an entry in presets compare
// whitespace-separated words.
func preset(name string) (*config.Definition, error) {
	doc, ok := presets[name]
	if !ok {
		doc = fmt.Sprintf("metric: %q\nstages:\n  - tokenize: whitespace\n", name)
	}
	return config.ParseMetric([]byte(doc))
}
