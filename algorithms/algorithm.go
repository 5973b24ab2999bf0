// Package algorithms implements the distribution-family sorting algorithms
// (counting, radix LSD/MSD, bucket, pigeonhole) on top of the tracker
// instrumentation core. Every array access goes through tracker primitives,
// so a run can be replayed and measured after the fact.
package algorithms

import (
	"github.com/mvoloshin/sortlab/tracker"
)

// ComplexityBound describes asymptotic bounds as display strings.
type ComplexityBound struct {
	Best    string `json:"best"`
	Average string `json:"average"`
	Worst   string `json:"worst"`
}

// Complexity is static metadata, not measured.
type Complexity struct {
	Time  ComplexityBound `json:"time"`
	Space ComplexityBound `json:"space"`
}

// Algorithm is the contract every sorting algorithm exposes to its
// collaborators (renderers, metrics panels, comparison tools).
//
// Execute clones its input and never mutates it. A single Algorithm value
// owns its tracker state exclusively; do not call Execute concurrently on
// the same instance. Metrics and History are readable after Execute returns,
// and incrementally during execution via the tracker's OnStep callback.
type Algorithm interface {
	Name() string
	Execute(input []int) []int
	Complexity() Complexity
	Stable() bool
	InPlace() bool
	Metrics() tracker.Metrics
	History() []tracker.StepRecord
	Report() *tracker.Report
}

// base wires an algorithm to its tracker and provides the shared accessors.
type base struct {
	trk *tracker.Tracker
}

func newBase(cfg tracker.Config) (base, error) {
	trk, err := tracker.New(cfg)
	if err != nil {
		return base{}, err
	}
	return base{trk: trk}, nil
}

// Tracker exposes the underlying tracker, e.g. for Pause/Resume around
// setup code a caller wants excluded from measurement.
func (b *base) Tracker() *tracker.Tracker {
	return b.trk
}

func (b *base) Metrics() tracker.Metrics {
	return b.trk.Metrics()
}

func (b *base) History() []tracker.StepRecord {
	return b.trk.History()
}

func (b *base) Report() *tracker.Report {
	return b.trk.Report()
}

// cloneInput copies the caller's array so Execute never mutates its
// argument. The copy itself is setup, not a measured operation.
func cloneInput(input []int) []int {
	out := make([]int, len(input))
	copy(out, input)
	return out
}

// SortKeyed sorts items by an extracted integer key using alg. Items with
// equal keys always keep their relative input order: the decorator
// re-attaches items to sorted keys through per-key input-order queues, so
// the result is stable even when alg itself is not.
func SortKeyed[T any](alg Algorithm, items []T, key func(T) int) []T {
	if len(items) <= 1 {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	keys := make([]int, len(items))
	queues := make(map[int][]int, len(items))
	for i, it := range items {
		k := key(it)
		keys[i] = k
		queues[k] = append(queues[k], i)
	}

	sorted := alg.Execute(keys)

	out := make([]T, len(items))
	for i, k := range sorted {
		q := queues[k]
		out[i] = items[q[0]]
		queues[k] = q[1:]
	}
	return out
}
