package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/lexsim/pkg/lexsim"
)

func newCompareCmd(root *rootFlags) *cobra.Command {
	var pairsPath string

	cmd := &cobra.Command{
		Use:   "compare [a b]",
		Short: "Print the similarity of two strings in [0, 1]",
		Long: "Print the similarity of two strings in [0, 1].\n\n" +
			"With --pairs, read tab-separated pairs from a file ('-' for stdin) and\n" +
			"print one score per line followed by the pair.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pairsPath == "" && len(args) != 2 {
				return fmt.Errorf("compare needs two strings or --pairs")
			}
			if pairsPath != "" && len(args) != 0 {
				return fmt.Errorf("compare takes either two strings or --pairs, not both")
			}

			logger, b, err := root.setup(cmd)
			if err != nil {
				return err
			}
			m, err := b.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if pairsPath == "" {
				score, err := m.Compare(args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%.6f\n", score)
				return nil
			}

			in := cmd.InOrStdin()
			if pairsPath != "-" {
				file, err := os.Open(pairsPath)
				if err != nil {
					return fmt.Errorf("open pairs: %w", err)
				}
				defer file.Close()
				in = file
			}
			n, err := comparePairs(m, in, out)
			if err != nil {
				return err
			}

			simplifier, tokenizer := m.CacheStats()
			logger.Debug("pairs compared",
				"pairs", n,
				"simplifier_hits", simplifier.Hits,
				"simplifier_misses", simplifier.Misses,
				"tokenizer_hits", tokenizer.Hits,
				"tokenizer_misses", tokenizer.Misses)
			return nil
		},
	}

	cmd.Flags().StringVar(&pairsPath, "pairs", "", "File of tab-separated string pairs ('-' for stdin)")
	return cmd
}

// maxPairLine bounds a single line of a pairs file.
const maxPairLine = 16 << 20

// comparePairs scores every "a<TAB>b" line of in. Blank lines and lines
// starting with '#' are skipped.
func comparePairs(m *lexsim.Metric, in io.Reader, out io.Writer) (int, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPairLine)
	n, line := 0, 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}

		a, b, ok := strings.Cut(text, "\t")
		if !ok {
			return n, fmt.Errorf("line %d: expected two tab-separated strings", line)
		}
		score, err := m.Compare(a, b)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		fmt.Fprintf(out, "%.6f\t%s\t%s\n", score, a, b)
		n++
	}
	if err := scanner.Err(); err != nil {
		return n, fmt.Errorf("read pairs: %w", err)
	}
	return n, nil
}
