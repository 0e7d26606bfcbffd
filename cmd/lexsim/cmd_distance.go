package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDistanceCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "distance a b",
		Short: "Print the unnormalized distance between two strings",
		Long: "Print the unnormalized distance between two strings. Only metrics that\n" +
			"measure a distance (levenshtein, euclidean, block, identity, ...) qualify.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := root.setup(cmd)
			if err != nil {
				return err
			}
			d, err := b.BuildDistance()
			if err != nil {
				return err
			}
			dist, err := d.Distance(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", dist)
			return nil
		},
	}
}
