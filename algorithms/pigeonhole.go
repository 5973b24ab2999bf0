package algorithms

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/mvoloshin/sortlab/tracker"
)

// HoleStore holds pigeonhole contents keyed by normalized value (value -
// min). Add must preserve per-hole append order; Each must visit occupied
// holes in ascending hole order. Those two properties together are what
// make pigeonhole sort unconditionally stable.
type HoleStore interface {
	Add(hole, value int)
	Each(fn func(hole int, values []int))
	Holes() int // Number of occupied holes
}

// denseHoles backs every hole in the range with a slice.
type denseHoles struct {
	holes [][]int
}

func newDenseHoles(rangeSize int) *denseHoles {
	return &denseHoles{holes: make([][]int, rangeSize)}
}

func (d *denseHoles) Add(hole, value int) {
	d.holes[hole] = append(d.holes[hole], value)
}

func (d *denseHoles) Each(fn func(hole int, values []int)) {
	for h, vals := range d.holes {
		if len(vals) > 0 {
			fn(h, vals)
		}
	}
}

func (d *denseHoles) Holes() int {
	n := 0
	for _, vals := range d.holes {
		if len(vals) > 0 {
			n++
		}
	}
	return n
}

// sparseHoles only allocates occupied holes, for ranges much larger than n.
// Collection sorts the occupied hole indices to recover ascending order;
// that ordering is internal bookkeeping, not a tracked sorting operation.
type sparseHoles struct {
	holes map[int][]int
}

func newSparseHoles() *sparseHoles {
	return &sparseHoles{holes: make(map[int][]int)}
}

func (s *sparseHoles) Add(hole, value int) {
	s.holes[hole] = append(s.holes[hole], value)
}

func (s *sparseHoles) Each(fn func(hole int, values []int)) {
	keys := make([]int, 0, len(s.holes))
	for h := range s.holes {
		keys = append(keys, h)
	}
	sort.Ints(keys)
	for _, h := range keys {
		fn(h, s.holes[h])
	}
}

func (s *sparseHoles) Holes() int {
	return len(s.holes)
}

// PigeonholeOptions configures PigeonholeSort.
type PigeonholeOptions struct {
	// AutoDetectRange scans the input for min/max; otherwise MinValue and
	// MaxValue must bound every element.
	AutoDetectRange bool `json:"autoDetectRange"`
	MinValue        int  `json:"minValue"`
	MaxValue        int  `json:"maxValue"`

	// DynamicPigeonholes selects sparse hole storage, avoiding a dense
	// allocation when range greatly exceeds n.
	DynamicPigeonholes bool `json:"dynamicPigeonholes"`

	// Factory overrides hole storage construction entirely. When set it
	// takes precedence over DynamicPigeonholes.
	Factory func(rangeSize int) HoleStore `json:"-"`

	Tracker tracker.Config `json:"tracker"`
}

// DefaultPigeonholeOptions returns dense auto-ranged defaults.
func DefaultPigeonholeOptions() PigeonholeOptions {
	return PigeonholeOptions{
		AutoDetectRange: true,
		Tracker:         tracker.DefaultConfig(),
	}
}

// Validate checks option consistency.
func (o *PigeonholeOptions) Validate() error {
	if !o.AutoDetectRange && o.MinValue > o.MaxValue {
		return tracker.ErrInvalidConfig("pigeonhole sort: minValue must be <= maxValue when autoDetectRange is off")
	}
	return nil
}

// poorFitFactor: ranges beyond n*log2(n)*poorFitFactor draw a non-fatal
// poor-fit warning. The algorithm still runs.
const poorFitFactor = 4.0

// PigeonholeSort drops each value into the hole keyed by its exact
// normalized value, then collects holes in order. Append order plus
// in-order collection makes it unconditionally stable. O(n+range) time and
// space; never in place.
type PigeonholeSort struct {
	base
	opts PigeonholeOptions
}

// NewPigeonholeSort creates a pigeonhole sort instance.
func NewPigeonholeSort(opts PigeonholeOptions) (*PigeonholeSort, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(opts.Tracker)
	if err != nil {
		return nil, err
	}
	return &PigeonholeSort{base: b, opts: opts}, nil
}

func (s *PigeonholeSort) Name() string { return "pigeonhole" }

func (s *PigeonholeSort) Stable() bool { return true }

func (s *PigeonholeSort) InPlace() bool { return false }

func (s *PigeonholeSort) Complexity() Complexity {
	return Complexity{
		Time:  ComplexityBound{Best: "O(n+k)", Average: "O(n+k)", Worst: "O(n+k)"},
		Space: ComplexityBound{Best: "O(n+k)", Average: "O(n+k)", Worst: "O(n+k)"},
	}
}

// Execute sorts a copy of input and returns it. The input is never mutated.
func (s *PigeonholeSort) Execute(input []int) []int {
	t := s.trk
	t.Reset()

	arr := cloneInput(input)
	n := len(arr)
	if n <= 1 {
		return arr
	}

	t.SetPhase("analysis")
	min, max := s.opts.MinValue, s.opts.MaxValue
	if s.opts.AutoDetectRange {
		min, max = scanBounds(t, arr)
	}
	rangeSize := max - min + 1
	t.RecordState(nil, "range detected", map[string]any{
		"min": min, "max": max, "range": rangeSize,
	})

	if fit := float64(n) * math.Log2(float64(n)+1) * poorFitFactor; float64(rangeSize) > fit {
		t.Logger().Warn("pigeonhole range is much larger than n*log(n); a comparison sort would likely do better",
			zap.Int("range", rangeSize),
			zap.Int("n", n))
		t.RecordState(nil, "poor fit warning", map[string]any{
			"range": rangeSize, "n": n,
		})
	}

	store := s.newStore(rangeSize)
	t.AddAuxiliary(n)

	t.SetPhase("distribution")
	for i := 0; i < n; i++ {
		v := t.Read(arr, i)
		hole := v - min
		store.Add(hole, v)
		t.RecordState(nil, "hole filled", map[string]any{
			"hole": hole, "value": v,
		})
	}

	t.SetPhase("collection")
	pos := 0
	store.Each(func(hole int, values []int) {
		for _, v := range values {
			t.Write(arr, pos, v)
			pos++
		}
	})
	t.ReleaseAuxiliary(n)

	t.SetPhase("completed")
	t.Finish()
	return arr
}

func (s *PigeonholeSort) newStore(rangeSize int) HoleStore {
	if s.opts.Factory != nil {
		return s.opts.Factory(rangeSize)
	}
	if s.opts.DynamicPigeonholes {
		return newSparseHoles()
	}
	return newDenseHoles(rangeSize)
}
