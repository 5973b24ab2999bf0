package algorithms

import (
	"math"

	"github.com/mvoloshin/sortlab/tracker"
)

// BucketOptions configures BucketSort.
type BucketOptions struct {
	// BucketCount fixes the bucket count when Sizing is "uniform".
	BucketCount int          `json:"bucketCount"`
	Sizing      BucketSizing `json:"bucketSizing"`

	// Inner selects the comparison sort applied inside each bucket. Bucket
	// sort's stability is exactly the inner sort's stability.
	Inner InnerSort `json:"bucketSort"`

	// OptimizeSingleton skips the inner sort for single-element buckets.
	OptimizeSingleton bool `json:"optimizeSingleton"`

	Tracker tracker.Config `json:"tracker"`
}

// DefaultBucketOptions returns adaptive sizing with insertion inner sort.
func DefaultBucketOptions() BucketOptions {
	return BucketOptions{
		Sizing:            SizingAdaptive,
		Inner:             InnerInsertion,
		OptimizeSingleton: true,
		Tracker:           tracker.DefaultConfig(),
	}
}

// Validate checks option consistency.
func (o *BucketOptions) Validate() error {
	if o.Sizing == SizingUniform && o.BucketCount < 1 {
		return tracker.ErrInvalidConfig("bucket sort: bucketCount must be >= 1 with uniform sizing")
	}
	return nil
}

// distStats summarizes the value distribution of a slice.
type distStats struct {
	min, max          int
	average, variance float64
	stdDev            float64
	coefficient       float64 // stdDev / average
	isUniform         bool    // coefficient < 0.25 heuristic
	hasNegative       bool
}

// uniformityCutoff: below this coefficient of variation the data is treated
// as near-uniform.
const uniformityCutoff = 0.25

// BucketSort scatters values into range-keyed buckets, sorts each non-empty
// bucket with a configurable inner sort, and concatenates the buckets in
// index order. Average O(n+k) for near-uniform data; worst case O(n^2) when
// everything collides into one bucket.
type BucketSort struct {
	base
	opts BucketOptions
}

// NewBucketSort creates a bucket sort instance.
func NewBucketSort(opts BucketOptions) (*BucketSort, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(opts.Tracker)
	if err != nil {
		return nil, err
	}
	return &BucketSort{base: b, opts: opts}, nil
}

func (s *BucketSort) Name() string { return "bucket" }

// Stable is exactly the inner sort's stability: insertion and merge are
// stable, the in-place quicksort is not.
func (s *BucketSort) Stable() bool { return s.opts.Inner != InnerQuick }

func (s *BucketSort) InPlace() bool { return false }

func (s *BucketSort) Complexity() Complexity {
	return Complexity{
		Time:  ComplexityBound{Best: "O(n+k)", Average: "O(n+k)", Worst: "O(n^2)"},
		Space: ComplexityBound{Best: "O(n+k)", Average: "O(n+k)", Worst: "O(n+k)"},
	}
}

// Execute sorts a copy of input and returns it. The input is never mutated.
func (s *BucketSort) Execute(input []int) []int {
	t := s.trk
	t.Reset()

	arr := cloneInput(input)
	if len(arr) <= 1 {
		return arr
	}

	sorted := s.sortValues(arr)
	t.SetPhase("collection")
	for i, v := range sorted {
		t.Write(arr, i, v)
	}

	t.SetPhase("completed")
	t.Finish()
	return arr
}

// sortValues sorts vals and returns a new sorted slice. Negative-containing
// inputs are split into negative/zero/positive partitions; the negative and
// positive partitions go through the whole procedure independently.
func (s *BucketSort) sortValues(vals []int) []int {
	t := s.trk
	n := len(vals)
	if n <= 1 {
		return append([]int(nil), vals...)
	}

	t.SetPhase("analysis")
	stats := s.analyze(vals)
	t.RecordState(nil, "distribution analyzed", map[string]any{
		"min": stats.min, "max": stats.max,
		"average": stats.average, "stdDev": stats.stdDev,
		"coefficientOfVariation": stats.coefficient,
		"isUniform":              stats.isUniform,
		"hasNegative":            stats.hasNegative,
	})

	if stats.hasNegative {
		return s.sortWithNegatives(vals)
	}

	if stats.max == stats.min {
		// All equal: nothing to scatter.
		return append([]int(nil), vals...)
	}

	t.SetPhase("distribution")
	bucketCount := s.bucketCount(n)
	buckets := make([][]int, bucketCount)
	span := stats.max - stats.min
	for i := 0; i < n; i++ {
		v := t.Read(vals, i)
		idx := int(float64(v-stats.min) / float64(span) * float64(bucketCount))
		if idx < 0 {
			idx = 0
		}
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		buckets[idx] = append(buckets[idx], v)
		t.RecordState(nil, "bucket filled", map[string]any{
			"bucket": idx, "value": v, "size": len(buckets[idx]),
		})
	}
	t.AddAuxiliary(n + bucketCount)

	// Empty buckets are skipped outright; singleton buckets skip the inner
	// sort when the optimization is on.
	t.SetPhase("sorting-buckets")
	for idx, b := range buckets {
		if len(b) == 0 {
			continue
		}
		if len(b) == 1 && s.opts.OptimizeSingleton {
			continue
		}
		innerSortRange(t, b, 0, len(b)-1, s.opts.Inner)
		t.RecordState(nil, "bucket sorted", map[string]any{
			"bucket": idx, "size": len(b),
		})
	}

	out := make([]int, 0, n)
	for _, b := range buckets {
		out = append(out, b...)
	}
	t.ReleaseAuxiliary(n + bucketCount)
	return out
}

// sortWithNegatives splits vals into negative magnitudes, zeros, and
// positives, sorts the negative and positive partitions independently, and
// concatenates [negatives reversed-and-renegated, zeros, positives].
func (s *BucketSort) sortWithNegatives(vals []int) []int {
	t := s.trk
	t.SetPhase("partition")

	var negs, poss []int
	zeros := 0
	for i := 0; i < len(vals); i++ {
		v := t.Read(vals, i)
		switch {
		case v < 0:
			negs = append(negs, -v)
		case v == 0:
			zeros++
		default:
			poss = append(poss, v)
		}
	}
	t.AddAuxiliary(len(vals))

	t.EnterFunction("bucketSort")
	negs = s.sortValues(negs)
	t.ExitFunction("bucketSort")

	t.EnterFunction("bucketSort")
	poss = s.sortValues(poss)
	t.ExitFunction("bucketSort")

	out := make([]int, 0, len(vals))
	for i := len(negs) - 1; i >= 0; i-- {
		out = append(out, -negs[i])
	}
	for i := 0; i < zeros; i++ {
		out = append(out, 0)
	}
	out = append(out, poss...)
	t.ReleaseAuxiliary(len(vals))
	return out
}

// analyze computes distribution statistics through tracked reads.
func (s *BucketSort) analyze(vals []int) distStats {
	t := s.trk
	n := len(vals)

	var stats distStats
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		v := t.Read(vals, i)
		if i == 0 || v < stats.min {
			stats.min = v
		}
		if i == 0 || v > stats.max {
			stats.max = v
		}
		if v < 0 {
			stats.hasNegative = true
		}
		f := float64(v)
		sum += f
		sumSq += f * f
	}

	stats.average = sum / float64(n)
	stats.variance = sumSq/float64(n) - stats.average*stats.average
	if stats.variance < 0 {
		stats.variance = 0 // Float cancellation on near-constant data
	}
	stats.stdDev = math.Sqrt(stats.variance)
	if stats.average != 0 {
		stats.coefficient = stats.stdDev / math.Abs(stats.average)
	}
	stats.isUniform = stats.coefficient < uniformityCutoff
	return stats
}

// bucketCount applies the configured sizing strategy.
func (s *BucketSort) bucketCount(n int) int {
	switch s.opts.Sizing {
	case SizingUniform:
		return s.opts.BucketCount
	case SizingSqrt:
		c := int(math.Sqrt(float64(n)))
		if c < 1 {
			c = 1
		}
		return c
	default:
		return adaptiveBucketCount(n)
	}
}

// adaptiveBucketCount is a staged heuristic keyed on n: small inputs get a
// handful of buckets, mid-size inputs cap at 10, large inputs scale with
// n/50, and very large ones with sqrt(n).
func adaptiveBucketCount(n int) int {
	switch {
	case n < 10:
		if n < 5 {
			return n
		}
		return 5
	case n < 100:
		return 10
	case n < 1000:
		c := n / 50
		if c < 10 {
			c = 10
		}
		return c
	default:
		c := int(math.Sqrt(float64(n)))
		if c < 20 {
			c = 20
		}
		return c
	}
}
