package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/lexsim/pkg/lexsim/config"
)

func newExplainCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain",
		Short: "Validate a metric and print its pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, b, err := root.setup(cmd)
			if err != nil {
				return err
			}
			m, err := b.Build()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Metric: %s\n", m)
			fmt.Fprintf(out, "Input:  %s\n", m.Kind())
			if _, err := b.BuildDistance(); err == nil {
				fmt.Fprintf(out, "Distance: yes\n")
			} else {
				fmt.Fprintf(out, "Distance: no\n")
			}
			return nil
		},
	}
}

func newMetricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List the metric names usable with --metric",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, name := range config.Metrics {
				fmt.Fprintln(out, name)
			}
			fmt.Fprintln(out, "qgrams")
		},
	}
}
