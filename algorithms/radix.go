package algorithms

import (
	"math"

	"github.com/mvoloshin/sortlab/tracker"
)

// msdCutoff is the subrange size below which MSD recursion falls back to
// insertion sort. A performance optimization, not a correctness requirement.
const msdCutoff = 16

// RadixOptions configures RadixSort.
type RadixOptions struct {
	Variant RadixVariant `json:"variant"`
	Radix   int          `json:"radix"`

	// UseCountingSort selects counting-based digit distribution for MSD;
	// when false, MSD collects per-digit buckets instead. Ignored by LSD.
	UseCountingSort bool `json:"useCountingSort"`

	// Stable requests stable digit distribution for MSD. LSD is stable
	// unconditionally. When false, MSD's counting distribution permutes in
	// place (American-flag style) and gives up stability for memory.
	Stable bool `json:"stable"`

	Tracker tracker.Config `json:"tracker"`
}

// DefaultRadixOptions returns LSD base-10 defaults.
func DefaultRadixOptions() RadixOptions {
	return RadixOptions{
		Variant:         VariantLSD,
		Radix:           10,
		UseCountingSort: true,
		Stable:          true,
		Tracker:         tracker.DefaultConfig(),
	}
}

// Validate checks option consistency.
func (o *RadixOptions) Validate() error {
	if o.Radix < 2 {
		return tracker.ErrInvalidConfig("radix must be >= 2")
	}
	return nil
}

// RadixSort sorts by distributing elements digit by digit. The LSD variant
// runs one stable counting pass per digit position from least to most
// significant and is stable overall because stable passes compose. The MSD
// variant distributes on the most significant digit and recurses into each
// digit bucket via an explicit work stack; its stability is contingent on
// the Stable option and the chosen digit-distribution method.
type RadixSort struct {
	base
	opts RadixOptions
}

// NewRadixSort creates a radix sort instance.
func NewRadixSort(opts RadixOptions) (*RadixSort, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b, err := newBase(opts.Tracker)
	if err != nil {
		return nil, err
	}
	return &RadixSort{base: b, opts: opts}, nil
}

func (s *RadixSort) Name() string { return "radix-" + s.opts.Variant.String() }

func (s *RadixSort) Stable() bool {
	if s.opts.Variant == VariantLSD {
		return true
	}
	return s.opts.Stable
}

func (s *RadixSort) InPlace() bool { return false }

func (s *RadixSort) Complexity() Complexity {
	return Complexity{
		Time:  ComplexityBound{Best: "O(d(n+k))", Average: "O(d(n+k))", Worst: "O(d(n+k))"},
		Space: ComplexityBound{Best: "O(n+k)", Average: "O(n+k)", Worst: "O(n+k)"},
	}
}

// Execute sorts a copy of input and returns it. The input is never mutated.
func (s *RadixSort) Execute(input []int) []int {
	t := s.trk
	t.Reset()

	arr := cloneInput(input)
	n := len(arr)
	if n <= 1 {
		return arr
	}

	t.SetPhase("analysis")
	maxAbs, hasNegative := 0, false
	for i := 0; i < n; i++ {
		v := t.Read(arr, i)
		if v < 0 {
			hasNegative = true
			v = -v
		}
		if v > maxAbs {
			maxAbs = v
		}
	}
	t.RecordState(nil, "analysis complete", map[string]any{
		"max": maxAbs, "hasNegative": hasNegative,
		"digits": digitCount(maxAbs, s.opts.Radix),
	})

	if !hasNegative {
		s.sortMagnitudes(arr)
		t.SetPhase("completed")
		t.Finish()
		return arr
	}

	// Digit-wise comparison is magnitude-only, so negatives are split off,
	// sorted by absolute value, then reversed and re-negated on the way
	// back: [negatives descending-becomes-ascending, positives].
	t.SetPhase("partition")
	var negs, poss []int
	for i := 0; i < n; i++ {
		v := t.Read(arr, i)
		if v < 0 {
			negs = append(negs, -v)
		} else {
			poss = append(poss, v)
		}
	}
	t.AddAuxiliary(n)

	s.sortMagnitudes(negs)
	s.sortMagnitudes(poss)

	t.SetPhase("collection")
	pos := 0
	for i := len(negs) - 1; i >= 0; i-- {
		t.Write(arr, pos, -negs[i])
		pos++
	}
	for i := 0; i < len(poss); i++ {
		t.Write(arr, pos, poss[i])
		pos++
	}
	t.ReleaseAuxiliary(n)

	t.SetPhase("completed")
	t.Finish()
	return arr
}

// sortMagnitudes sorts a slice of non-negative values with the configured
// variant. Operates in place on a.
func (s *RadixSort) sortMagnitudes(a []int) {
	if len(a) <= 1 {
		return
	}
	max := 0
	for i := 0; i < len(a); i++ {
		if v := s.trk.Read(a, i); v > max {
			max = v
		}
	}
	if s.opts.Variant == VariantMSD {
		s.msdSort(a, max)
		return
	}
	s.lsdSort(a, max)
}

// lsdSort runs one stable counting pass per digit position, least
// significant first, while exp <= max.
func (s *RadixSort) lsdSort(a []int, max int) {
	t := s.trk
	n := len(a)
	radix := s.opts.Radix

	for exp := 1; max/exp > 0; exp *= radix {
		t.SetPhase("counting")
		counts := make([]int, radix)
		t.AddAuxiliary(radix)
		for i := 0; i < n; i++ {
			v := t.Read(a, i)
			counts[(v/exp)%radix]++
		}

		t.SetPhase("cumulative-counting")
		for d := 1; d < radix; d++ {
			counts[d] += counts[d-1]
		}

		// Right-to-left placement keeps each pass stable, which is what
		// makes LSD stable overall.
		t.SetPhase("distribution")
		out := make([]int, n)
		t.AddAuxiliary(n)
		for i := n - 1; i >= 0; i-- {
			v := t.Read(a, i)
			d := (v / exp) % radix
			counts[d]--
			t.Write(out, counts[d], v)
		}
		for i := 0; i < n; i++ {
			t.Write(a, i, t.Read(out, i))
		}
		t.ReleaseAuxiliary(radix + n)
		t.RecordState(nil, "digit pass complete", map[string]any{"exp": exp})
	}
}

// msdFrame is one unit of MSD work. The explicit stack replaces host-stack
// recursion so very skewed inputs cannot exhaust it; exit markers keep the
// tracker's call bookkeeping nested the way logical recursion would be.
type msdFrame struct {
	lo, hi, exp int
	exit        bool
}

func (s *RadixSort) msdSort(a []int, max int) {
	t := s.trk
	radix := s.opts.Radix

	exp := 1
	for d := 1; d < digitCount(max, radix); d++ {
		exp *= radix
	}

	stack := []msdFrame{{lo: 0, hi: len(a) - 1, exp: exp}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			t.ExitFunction("msdRadixSort")
			continue
		}
		if f.lo >= f.hi || f.exp < 1 {
			continue
		}

		t.EnterFunction("msdRadixSort")
		stack = append(stack, msdFrame{exit: true})

		if f.hi-f.lo+1 < msdCutoff {
			insertionSortRange(t, a, f.lo, f.hi)
			continue
		}

		bounds := s.distributeDigit(a, f.lo, f.hi, f.exp)
		// Push children in reverse so lower digits process first; order only
		// affects traversal, not the result.
		for d := radix - 1; d >= 0; d-- {
			clo := f.lo + bounds[d]
			chi := f.lo + bounds[d+1] - 1
			if chi > clo {
				stack = append(stack, msdFrame{lo: clo, hi: chi, exp: f.exp / radix})
			}
		}
	}
}

// distributeDigit partitions a[lo..hi] by the digit at exp and returns the
// bucket boundary offsets relative to lo (len radix+1).
func (s *RadixSort) distributeDigit(a []int, lo, hi, exp int) []int {
	t := s.trk
	radix := s.opts.Radix
	n := hi - lo + 1

	if !s.opts.UseCountingSort {
		// Bucket distribution: collect per-digit slices in input order, then
		// write them back digit by digit.
		buckets := make([][]int, radix)
		for i := lo; i <= hi; i++ {
			v := t.Read(a, i)
			d := (v / exp) % radix
			buckets[d] = append(buckets[d], v)
		}
		t.AddAuxiliary(n)

		bounds := make([]int, radix+1)
		pos := lo
		for d := 0; d < radix; d++ {
			for _, v := range buckets[d] {
				t.Write(a, pos, v)
				pos++
			}
			bounds[d+1] = bounds[d] + len(buckets[d])
		}
		t.ReleaseAuxiliary(n)
		t.RecordState(nil, "digit buckets written", map[string]any{"exp": exp})
		return bounds
	}

	counts := make([]int, radix+1)
	t.AddAuxiliary(radix + 1)
	for i := lo; i <= hi; i++ {
		v := t.Read(a, i)
		counts[(v/exp)%radix+1]++
	}
	for d := 0; d < radix; d++ {
		counts[d+1] += counts[d]
	}
	bounds := make([]int, radix+1)
	copy(bounds, counts)

	if s.opts.Stable {
		// Stable counting distribution through a scratch buffer,
		// right-to-left like the LSD pass.
		ends := make([]int, radix)
		for d := 0; d < radix; d++ {
			ends[d] = counts[d+1]
		}
		out := make([]int, n)
		t.AddAuxiliary(n)
		for i := hi; i >= lo; i-- {
			v := t.Read(a, i)
			d := (v / exp) % radix
			ends[d]--
			t.Write(out, ends[d], v)
		}
		for i := 0; i < n; i++ {
			t.Write(a, lo+i, t.Read(out, i))
		}
		t.ReleaseAuxiliary(n)
	} else {
		// American-flag permutation: in place, no scratch buffer, and not
		// stable. next[d] walks each bucket; misplaced values swap into
		// their home bucket until the current slot holds a d-digit value.
		next := make([]int, radix)
		copy(next, counts[:radix])
		for d := 0; d < radix; d++ {
			for next[d] < counts[d+1] {
				v := t.Read(a, lo+next[d])
				dd := (v / exp) % radix
				if dd == d {
					next[d]++
					continue
				}
				t.Swap(a, lo+next[d], lo+next[dd])
				next[dd]++
			}
		}
	}

	t.ReleaseAuxiliary(radix + 1)
	t.RecordState(nil, "digit distribution complete", map[string]any{"exp": exp})
	return bounds
}

// digitCount returns the number of base-radix digits in max, with max == 0
// defined as exactly 1 digit (log(0) is undefined).
func digitCount(max, radix int) int {
	if max == 0 {
		return 1
	}
	d := int(math.Log(float64(max))/math.Log(float64(radix))) + 1
	if d < 1 {
		d = 1
	}
	// Correct for float drift at exact powers of the radix.
	for intPow(radix, d) <= max {
		d++
	}
	for d > 1 && intPow(radix, d-1) > max {
		d--
	}
	return d
}

// intPow returns base^k, saturating instead of overflowing.
func intPow(base, k int) int {
	result := 1
	for i := 0; i < k; i++ {
		if result > math.MaxInt/base {
			return math.MaxInt
		}
		result *= base
	}
	return result
}
