package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override profile file values
var (
	profileFile string
	algorithm   string
	inputSize   int
	seed        int64
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "sortlab",
	Short: "Instrumented sorting laboratory",
	Long: `Runs distribution-family sorting algorithms (counting, radix, bucket,
pigeonhole) under a tracker that records every array operation: reads,
writes, swaps, cache behavior, element movement, phases, and recursion.

Each run produces a full report with derived statistics: comparison and
cache hit ratios, access hotspots, farthest-moving elements, and per-phase
operation breakdowns.`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFile, "profile", "p", "",
		"Path to a YAML run profile")
	rootCmd.PersistentFlags().StringVarP(&algorithm, "algorithm", "a", "",
		"Override algorithm (counting, radix, bucket, pigeonhole)")
	rootCmd.PersistentFlags().IntVarP(&inputSize, "size", "n", 0,
		"Override generated input size")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0,
		"Override input generation seed (0 = random)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Emit the full report as JSON instead of formatted text")
}
