// lexsim scores the similarity of two strings with a composed metric.
//
// Usage:
//
//	lexsim compare [--metric=<name>|--config=<file.yaml>] <a> <b>
//	lexsim compare [--metric=<name>|--config=<file.yaml>] --pairs=<file.tsv>
//	lexsim distance [--metric=<name>|--config=<file.yaml>] <a> <b>
//	lexsim explain [--metric=<name>|--config=<file.yaml>]
//	lexsim metrics
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
