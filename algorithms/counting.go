package algorithms

import (
	"github.com/mvoloshin/sortlab/tracker"
)

// CountingOptions configures CountingSort. Unknown or inconsistent
// combinations are rejected at construction, not mid-run.
type CountingOptions struct {
	// AutoDetectRange scans the input for min/max. When false, MinValue and
	// MaxValue must bound every input element; out-of-range elements are the
	// caller's responsibility.
	AutoDetectRange bool `json:"autoDetectRange"`
	MinValue        int  `json:"minValue"`
	MaxValue        int  `json:"maxValue"`

	Tracker tracker.Config `json:"tracker"`
}

// DefaultCountingOptions returns counting sort defaults.
func DefaultCountingOptions() CountingOptions {
	return CountingOptions{
		AutoDetectRange: true,
		Tracker:         tracker.DefaultConfig(),
	}
}

// Validate checks option consistency.
func (o *CountingOptions) Validate() error {
	if !o.AutoDetectRange && o.MinValue > o.MaxValue {
		return tracker.ErrInvalidConfig("counting sort: minValue must be <= maxValue when autoDetectRange is off")
	}
	return nil
}

// CountingSort sorts by tallying value occurrences into a dense counting
// array of size max-min+1, then rebuilding the output from prefix sums.
// Stable by construction; never in place (requires the output buffer).
type CountingSort struct {
	base
	opts CountingOptions
}

// NewCountingSort creates a counting sort instance.
func NewCountingSort(opts CountingOptions) (*CountingSort, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(opts.Tracker)
	if err != nil {
		return nil, err
	}
	return &CountingSort{base: b, opts: opts}, nil
}

func (s *CountingSort) Name() string { return "counting" }

func (s *CountingSort) Stable() bool { return true }

func (s *CountingSort) InPlace() bool { return false }

func (s *CountingSort) Complexity() Complexity {
	return Complexity{
		Time:  ComplexityBound{Best: "O(n+k)", Average: "O(n+k)", Worst: "O(n+k)"},
		Space: ComplexityBound{Best: "O(n+k)", Average: "O(n+k)", Worst: "O(n+k)"},
	}
}

// Execute sorts a copy of input and returns it. The input is never mutated.
func (s *CountingSort) Execute(input []int) []int {
	t := s.trk
	t.Reset()

	arr := cloneInput(input)
	n := len(arr)
	if n <= 1 {
		return arr
	}

	t.SetPhase("range-detection")
	min, max := s.opts.MinValue, s.opts.MaxValue
	if s.opts.AutoDetectRange {
		min, max = scanBounds(t, arr)
	}
	rangeSize := max - min + 1
	t.RecordState(nil, "range detected", map[string]any{
		"min": min, "max": max, "range": rangeSize,
	})

	t.SetPhase("counting")
	counts := make([]int, rangeSize)
	t.AddAuxiliary(rangeSize)
	for i := 0; i < n; i++ {
		v := t.Read(arr, i)
		counts[v-min]++
		t.RecordState(nil, "counting array updated", map[string]any{
			"value": v, "slot": v - min, "count": counts[v-min],
		})
	}

	t.SetPhase("cumulative-counting")
	for v := 1; v < rangeSize; v++ {
		counts[v] += counts[v-1]
	}
	t.RecordState(nil, "cumulative counts ready", map[string]any{"range": rangeSize})

	// Traversing the input right-to-left is what makes this stable: equal
	// values keep their relative input order in the output.
	t.SetPhase("building-output")
	out := make([]int, n)
	t.AddAuxiliary(n)
	for i := n - 1; i >= 0; i-- {
		v := t.Read(arr, i)
		pos := counts[v-min] - 1
		counts[v-min]--
		t.Write(out, pos, v)
	}
	for i := 0; i < n; i++ {
		t.Write(arr, i, t.Read(out, i))
	}
	t.ReleaseAuxiliary(rangeSize + n)

	t.SetPhase("completed")
	t.Finish()
	return arr
}

// scanBounds finds min and max through tracked reads.
func scanBounds(t *tracker.Tracker, arr []int) (min, max int) {
	min = t.Read(arr, 0)
	max = min
	for i := 1; i < len(arr); i++ {
		v := t.Read(arr, i)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
