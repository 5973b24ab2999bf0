package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mvoloshin/sortlab/profile"
	"github.com/mvoloshin/sortlab/tracker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one instrumented sort and print its report",
	Long: `Run executes the profiled algorithm over the profiled input and prints
the full instrumentation report: operation counts, cache behavior, phase
breakdown, access hotspots, and farthest-moving elements.

Example:
  sortlab run --profile profiles/radix-lsd.yaml
  sortlab run -a bucket -n 10000 --seed 42`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// loadProfile reads the profile file when given, otherwise starts from
// defaults, then applies CLI flag overrides.
func loadProfile() (*profile.Profile, error) {
	var (
		prof *profile.Profile
		err  error
	)
	if profileFile != "" {
		prof, err = profile.Load(profileFile)
		if err != nil {
			return nil, err
		}
	} else {
		prof = profile.DefaultProfile()
	}

	if algorithm != "" {
		prof.Algorithm = algorithm
	}
	if inputSize > 0 {
		prof.Input.Spec.Size = inputSize
	}
	if seed != 0 {
		prof.Input.Spec.Seed = seed
	}
	return prof, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	prof, err := loadProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	input, err := prof.BuildInput()
	if err != nil {
		return fmt.Errorf("failed to build input: %w", err)
	}

	tc := prof.TrackerOptions()
	tc.Logger = logger
	alg, err := prof.BuildAlgorithmWithTracker(tc)
	if err != nil {
		return fmt.Errorf("failed to build algorithm: %w", err)
	}

	logger.Info("starting run",
		zap.String("algorithm", alg.Name()),
		zap.Int("n", len(input)))

	start := time.Now()
	sorted := alg.Execute(input)
	elapsed := time.Since(start)

	rep := alg.Report()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	printReport(alg.Name(), len(input), sorted, rep, elapsed)
	return nil
}

func printReport(name string, n int, sorted []int, rep *tracker.Report, elapsed time.Duration) {
	m := rep.Metrics

	color.Bold.Printf("=== %s ===\n", name)
	fmt.Printf("Elements: %d   Wall time: %v   Tracked time: %v\n\n", n, elapsed, rep.ExecutionTime)

	color.Cyan.Println("Operations")
	fmt.Printf("  comparisons: %d   swaps: %d\n", m.Comparisons, m.Swaps)
	fmt.Printf("  reads: %d   writes: %d   memory accesses: %d\n", m.Reads, m.Writes, m.MemoryAccesses)
	fmt.Printf("  auxiliary space (peak): %d elements\n", m.MaxAuxiliarySpace)
	fmt.Printf("  function calls: %d   recursive: %d   max depth: %d\n\n",
		m.FunctionCalls, m.RecursiveCalls, m.MaxRecursionDepth)

	color.Cyan.Println("Memory behavior")
	fmt.Printf("  cache: %d hits / %d misses / %d evictions (hit ratio %.2f)\n",
		m.CacheHits, m.CacheMisses, m.CacheEvictions, rep.CacheHitRatio)
	fmt.Printf("  access pattern: %.0f%% sequential\n", rep.SequentialAccessRatio*100)
	fmt.Printf("  element moves: %d   total distance: %d   max distance: %d\n\n",
		m.ElementMoves, m.TotalMoveDistance, m.MaxMoveDistance)

	if len(rep.Phases) > 0 {
		color.Cyan.Println("Phases")
		for _, p := range rep.Phases {
			fmt.Printf("  %-22s visits: %d   reads: %d   writes: %d\n",
				p.Phase, p.Visits, p.Ops.Reads, p.Ops.Writes)
		}
		fmt.Println()
	}

	if len(rep.Hotspots) > 0 {
		color.Cyan.Println("Access hotspots")
		for _, h := range rep.Hotspots {
			fmt.Printf("  [%d..%d]  %d accesses (%.0f%%)\n",
				h.StartIndex, h.EndIndex, h.Accesses, h.Density*100)
		}
		fmt.Println()
	}

	if len(rep.FarthestMovers) > 0 {
		color.Cyan.Println("Farthest movers")
		for _, mv := range rep.FarthestMovers {
			fmt.Printf("  value %d: %d moves, distance %d (index %d -> %d)\n",
				mv.Value, mv.Moves, mv.TotalDistance, mv.FirstIndex, mv.LastIndex)
		}
		fmt.Println()
	}

	if rep.TimelineDropped > 0 {
		color.Yellow.Printf("Timeline kept %d events, dropped %d\n", rep.TimelineEvents, rep.TimelineDropped)
	} else {
		fmt.Printf("Timeline events: %d\n", rep.TimelineEvents)
	}

	preview := sorted
	if len(preview) > 16 {
		preview = preview[:16]
	}
	color.Green.Printf("Sorted (first %d): %v\n", len(preview), preview)
}
