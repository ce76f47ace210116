package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/heap/alloc"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect the memkit heap allocator",
	Long: `memctl drives the memkit allocator from the command line: it runs
randomized stress workloads with invariant checking and renders the block
layout of scripted allocation scenarios. Useful for eyeballing free-space
behavior and for soak-testing either allocation strategy.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// makeAllocator builds the requested strategy over a fresh arena. The
// mapped host is preferred for large limits; tests and small runs use the
// slice host.
func makeAllocator(strategy string, limit int32, mapped bool) (alloc.Allocator, error) {
	var mem heap.Memory
	if mapped {
		m, err := heap.NewMapped(limit)
		if err != nil {
			return nil, err
		}
		mem = m
	} else {
		mem = heap.NewBuffer(limit)
	}

	switch strategy {
	case "implicit":
		return alloc.NewImplicit(mem)
	case "explicit":
		return alloc.NewExplicit(mem)
	default:
		return nil, fmt.Errorf("unknown strategy %q (want implicit or explicit)", strategy)
	}
}

// printJSON outputs data as indented JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
