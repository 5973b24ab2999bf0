// Package tracker is the instrumented execution core for sortlab. Sorting
// algorithms route every primitive array operation (reads, writes,
// comparisons, swaps) through a Tracker, which maintains operation counters,
// an access-pattern log, a simulated LRU cache, phase timings, and a bounded
// step timeline suitable for replay and visualization.
//
// A Tracker is owned by exactly one run at a time: execution is
// single-threaded and synchronous, and no two concurrent runs may share a
// Tracker. Reset reinitializes all run state while preserving configuration.
package tracker

import (
	"time"

	"go.uber.org/zap"
)

// Tracker records every primitive operation of one algorithm run.
type Tracker struct {
	cfg   Config
	clock Clock
	log   *zap.Logger

	metrics  Metrics
	timeline *Timeline
	cache    *CacheModel
	phases   *PhaseTracker
	movement *movementTable
	calls    *callStack

	// filter holds the step types that may emit records; nil means all.
	filter map[StepType]bool

	seq         int
	start       time.Time
	paused      bool
	pausedAt    time.Time
	pausedTotal time.Duration

	// Access-pattern state
	lastIndex    int // Previous read/write index, -1 before the first access
	accessCounts map[int]int64
	maxIndex     int
	totalTracked int64

	// Branch predictability: how often a comparison repeats the previous
	// result. A perfectly sorted scan predicts every branch.
	lastCompare      int
	compareRepeats   int64
	compareObserved  int64
}

// New creates a tracker from cfg, validating it up front. Configuration is
// the only failure path; primitives never fail for normal inputs.
func New(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	var filter map[StepType]bool
	if len(cfg.OperationFilter) > 0 {
		filter = make(map[StepType]bool, len(cfg.OperationFilter))
		for _, op := range cfg.OperationFilter {
			st, _ := ParseStepType(op) // Already validated
			filter[st] = true
		}
	}

	t := &Tracker{
		cfg:    cfg,
		clock:  cfg.Clock,
		log:    cfg.Logger,
		filter: filter,
	}
	t.Reset()
	return t, nil
}

// Reset reinitializes all run state to empty/zero, preserving only static
// configuration. Call it (or construct a fresh Tracker) before every run.
func (t *Tracker) Reset() {
	t.metrics = Metrics{}
	t.timeline = NewTimeline(t.cfg.MaxTimelineEvents)
	t.cache = NewCacheModel(t.cfg.CacheSize)
	t.phases = NewPhaseTracker()
	t.movement = newMovementTable()
	t.calls = newCallStack(t.log)
	t.seq = 0
	t.start = t.clock()
	t.paused = false
	t.pausedTotal = 0
	t.lastIndex = -1
	t.accessCounts = make(map[int]int64)
	t.maxIndex = -1
	t.totalTracked = 0
	t.lastCompare = 0
	t.compareRepeats = 0
	t.compareObserved = 0
}

// now returns elapsed run time with paused intervals subtracted.
func (t *Tracker) now() time.Duration {
	if t.paused {
		return t.pausedAt.Sub(t.start) - t.pausedTotal
	}
	return t.clock().Sub(t.start) - t.pausedTotal
}

// Read returns array[index], counting the access, classifying it as
// sequential or random, and feeding the cache model. It never mutates array.
func (t *Tracker) Read(array []int, index int) int {
	v := array[index]
	if t.paused {
		return v
	}

	t.metrics.Reads++
	t.metrics.MemoryAccesses++
	t.classifyAccess(index)
	hit := t.SimulateCacheAccess(index, StepRead)

	t.appendStep(StepRecord{
		Type:     StepRead,
		Indices:  []int{index},
		Values:   []int{v},
		CacheHit: &hit,
	})
	return v
}

// Write stores value at array[index]. Bookkeeping (counters, movement
// tracking, cache) happens first; the actual mutation is the last effect.
func (t *Tracker) Write(array []int, index, value int) {
	if t.paused {
		array[index] = value
		return
	}

	t.metrics.Writes++
	t.metrics.MemoryAccesses++
	t.classifyAccess(index)
	hit := t.SimulateCacheAccess(index, StepWrite)
	t.recordMove(value, index)

	t.appendStep(StepRecord{
		Type:     StepWrite,
		Indices:  []int{index},
		Values:   []int{value},
		CacheHit: &hit,
	})

	array[index] = value
}

// Compare returns -1, 0, or 1 for a < b, a == b, a > b, counting the
// comparison. It never mutates anything.
func (t *Tracker) Compare(a, b int) int {
	result := 0
	if a < b {
		result = -1
	} else if a > b {
		result = 1
	}
	if t.paused {
		return result
	}

	t.metrics.Comparisons++
	if t.compareObserved > 0 && result == t.lastCompare {
		t.compareRepeats++
	}
	t.compareObserved++
	t.lastCompare = result

	t.appendStep(StepRecord{
		Type:    StepCompare,
		Values:  []int{a, b},
		Details: map[string]any{"result": result},
	})
	return result
}

// Swap exchanges array[i] and array[j]. Swapping an index with itself is a
// no-op. Each index is charged a read and a write, so one swap accounts for
// two reads, two writes, and four memory/cache accesses.
func (t *Tracker) Swap(array []int, i, j int) {
	if i == j {
		return
	}
	if t.paused {
		array[i], array[j] = array[j], array[i]
		return
	}

	vi, vj := array[i], array[j]

	t.metrics.Swaps++
	t.metrics.Reads += 2
	t.metrics.Writes += 2
	t.metrics.MemoryAccesses += 4

	for _, idx := range []int{i, j} {
		t.classifyAccess(idx)
		t.SimulateCacheAccess(idx, StepRead)
		t.SimulateCacheAccess(idx, StepWrite)
	}

	// vi is displaced to j, vj to i.
	t.recordMove(vi, j)
	t.recordMove(vj, i)

	t.appendStep(StepRecord{
		Type:    StepSwap,
		Indices: []int{i, j},
		Values:  []int{vi, vj},
	})

	array[i], array[j] = vj, vi
}

// SetPhase switches the run to the named phase. Setting the current phase
// again is idempotent. Phase names are free-form strings; algorithms coin
// their own vocabulary.
func (t *Tracker) SetPhase(name string) {
	if t.paused {
		return
	}
	if !t.phases.Set(name, t.now(), t.metrics.delta()) {
		return
	}
	t.appendStep(StepRecord{
		Type:    StepPhase,
		Message: name,
	})
}

// RecordState appends a milestone StepRecord carrying an array snapshot and
// algorithm-specific metadata. When the timeline is full the record is
// dropped (and counted); the run is never aborted.
func (t *Tracker) RecordState(snapshot []int, message string, details map[string]any) {
	if t.paused {
		return
	}
	var arr []int
	if snapshot != nil {
		arr = make([]int, len(snapshot))
		copy(arr, snapshot)
	}
	t.appendStep(StepRecord{
		Type:    StepMilestone,
		Array:   arr,
		Message: message,
		Details: details,
	})
}

// SimulateCacheAccess drives the LRU cache model for index and returns
// whether the access hit. Hit/miss/eviction counters update accordingly.
func (t *Tracker) SimulateCacheAccess(index int, op StepType) bool {
	hit, evicted := t.cache.Access(index, op, t.now())
	if hit {
		t.metrics.CacheHits++
	} else {
		t.metrics.CacheMisses++
	}
	if evicted {
		t.metrics.CacheEvictions++
	}
	return hit
}

// EnterFunction pushes name onto the explicit call stack, maintaining
// recursion depth and per-function hotspot stats.
func (t *Tracker) EnterFunction(name string) {
	if t.paused {
		return
	}
	recursive := t.calls.enter(name, t.now())
	t.metrics.FunctionCalls++
	if recursive {
		t.metrics.RecursiveCalls++
	}
	t.metrics.RecursionDepth = t.calls.depth()
	if t.metrics.RecursionDepth > t.metrics.MaxRecursionDepth {
		t.metrics.MaxRecursionDepth = t.metrics.RecursionDepth
	}
}

// ExitFunction pops name from the call stack. A mismatch is reported as a
// warning and resynced; recursion bookkeeping is best-effort instrumentation,
// never a correctness gate on the sort itself.
func (t *Tracker) ExitFunction(name string) {
	if t.paused {
		return
	}
	t.calls.exit(name, t.now())
	t.metrics.RecursionDepth = t.calls.depth()
}

// AddAuxiliary records allocation of n auxiliary elements (counting arrays,
// buckets, output buffers).
func (t *Tracker) AddAuxiliary(n int) {
	if t.paused {
		return
	}
	t.metrics.AuxiliarySpace += int64(n)
	if t.metrics.AuxiliarySpace > t.metrics.MaxAuxiliarySpace {
		t.metrics.MaxAuxiliarySpace = t.metrics.AuxiliarySpace
	}
}

// ReleaseAuxiliary records release of n auxiliary elements.
func (t *Tracker) ReleaseAuxiliary(n int) {
	if t.paused {
		return
	}
	t.metrics.AuxiliarySpace -= int64(n)
	if t.metrics.AuxiliarySpace < 0 {
		t.metrics.AuxiliarySpace = 0
	}
}

// Pause suspends all counters and StepRecord emission (but not the
// underlying sort). Paused duration is excluded from ExecutionTime.
func (t *Tracker) Pause() {
	if t.paused {
		return
	}
	t.paused = true
	t.pausedAt = t.clock()
}

// Resume re-enables tracking after Pause.
func (t *Tracker) Resume() {
	if !t.paused {
		return
	}
	t.pausedTotal += t.clock().Sub(t.pausedAt)
	t.paused = false
}

// Finish closes the current phase interval and stamps ExecutionTime. Safe to
// call once at the end of a run; Report works with or without it.
func (t *Tracker) Finish() {
	now := t.now()
	t.phases.Close(now, t.metrics.delta())
	t.metrics.ExecutionTime = now
}

// Metrics returns a snapshot of the current counters.
func (t *Tracker) Metrics() Metrics {
	return t.metrics.Clone()
}

// History returns the recorded timeline in chronological order. The slice
// aliases tracker storage; callers must not modify it.
func (t *Tracker) History() []StepRecord {
	return t.timeline.Steps()
}

// TimelineDropped returns how many StepRecords were discarded after the
// timeline filled up.
func (t *Tracker) TimelineDropped() int64 {
	return t.timeline.Dropped()
}

// Phase returns the current phase name.
func (t *Tracker) Phase() string {
	return t.phases.Current()
}

// PhaseTransitions returns the phase transition log.
func (t *Tracker) PhaseTransitions() []PhaseTransition {
	return t.phases.Transitions()
}

// Logger returns the injected logger for algorithm-level warnings.
func (t *Tracker) Logger() *zap.Logger {
	return t.log
}

// classifyAccess updates the sequential/random counters and the per-index
// access histogram input.
func (t *Tracker) classifyAccess(index int) {
	if t.lastIndex >= 0 {
		d := index - t.lastIndex
		if d == 1 || d == -1 {
			t.metrics.SequentialAccesses++
		} else {
			t.metrics.RandomAccesses++
		}
	}
	t.lastIndex = index
	t.accessCounts[index]++
	t.totalTracked++
	if index > t.maxIndex {
		t.maxIndex = index
	}
}

// recordMove feeds the movement table and the move counters.
func (t *Tracker) recordMove(value, index int) {
	dist := t.movement.record(value, index)
	if dist > 0 {
		t.metrics.ElementMoves++
		t.metrics.TotalMoveDistance += dist
		if dist > t.metrics.MaxMoveDistance {
			t.metrics.MaxMoveDistance = dist
		}
	}
}

// appendStep stamps sequencing fields, applies the operation filter, and
// appends to the timeline, invoking OnStep only for records actually kept.
func (t *Tracker) appendStep(rec StepRecord) {
	if t.filter != nil {
		switch rec.Type {
		case StepRead, StepWrite, StepCompare, StepSwap:
			if !t.filter[rec.Type] {
				return
			}
		}
	}

	rec.Seq = t.seq
	rec.At = t.now()
	rec.Phase = t.phases.Current()
	t.seq++

	if t.timeline.Append(rec) && t.cfg.OnStep != nil {
		t.cfg.OnStep(rec)
	}
}
