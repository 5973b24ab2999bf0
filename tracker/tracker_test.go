package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T, mutate func(*Config)) *Tracker {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	trk, err := New(cfg)
	require.NoError(t, err)
	return trk
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	t.Run("non-positive timeline", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.MaxTimelineEvents = 0
		_, err := New(cfg)
		require.Error(t, err)
	})

	t.Run("non-positive cache size", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.CacheSize = -1
		_, err := New(cfg)
		require.Error(t, err)
	})

	t.Run("unknown operation filter", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.OperationFilter = []string{"read", "bogus"}
		_, err := New(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "bogus")
	})

	t.Run("filter cannot name non-primitive types", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.OperationFilter = []string{"phase"}
		_, err := New(cfg)
		require.Error(t, err)
	})
}

func TestRead_CountsAndClassifies(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{10, 20, 30}

	require.Equal(t, 10, trk.Read(arr, 0))
	require.Equal(t, 20, trk.Read(arr, 1))
	require.Equal(t, 30, trk.Read(arr, 2))

	m := trk.Metrics()
	require.Equal(t, int64(3), m.Reads)
	require.Equal(t, int64(0), m.Writes)
	require.Equal(t, int64(3), m.MemoryAccesses)
	// First access has no predecessor; the two following are strides of 1.
	require.Equal(t, int64(2), m.SequentialAccesses)
	require.Equal(t, int64(0), m.RandomAccesses)
	// Cold cache: every first touch misses.
	require.Equal(t, int64(0), m.CacheHits)
	require.Equal(t, int64(3), m.CacheMisses)

	history := trk.History()
	require.Len(t, history, 3)
	for i, rec := range history {
		require.Equal(t, StepRead, rec.Type)
		require.Equal(t, i, rec.Seq)
		require.Equal(t, []int{i}, rec.Indices)
		require.NotNil(t, rec.CacheHit)
		require.False(t, *rec.CacheHit)
	}
	require.Equal(t, []int{10, 20, 30}, arr, "Read must never mutate the array")
}

func TestWrite_MutatesAndTracksMovement(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{1, 2, 3}

	trk.Write(arr, 1, 99)
	require.Equal(t, 99, arr[1])

	m := trk.Metrics()
	require.Equal(t, int64(1), m.Writes)
	require.Equal(t, int64(1), m.MemoryAccesses)
	// First sighting of a value establishes its baseline, not a move.
	require.Equal(t, int64(0), m.ElementMoves)

	trk.Write(arr, 2, 99) // Value 99 traveled 1 slot
	m = trk.Metrics()
	require.Equal(t, int64(1), m.ElementMoves)
	require.Equal(t, int64(1), m.TotalMoveDistance)
	require.Equal(t, int64(1), m.MaxMoveDistance)
}

func TestCompare_ResultsAndCounting(t *testing.T) {
	trk := newTestTracker(t, nil)

	require.Equal(t, -1, trk.Compare(1, 2))
	require.Equal(t, 1, trk.Compare(2, 1))
	require.Equal(t, 0, trk.Compare(3, 3))

	m := trk.Metrics()
	require.Equal(t, int64(3), m.Comparisons)
	require.Equal(t, int64(0), m.MemoryAccesses, "Compare works on values, not array slots")
}

func TestSwap_Accounting(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{1, 2, 3}

	trk.Swap(arr, 0, 2)
	require.Equal(t, []int{3, 2, 1}, arr)

	m := trk.Metrics()
	require.Equal(t, int64(1), m.Swaps)
	require.Equal(t, int64(2), m.Reads)
	require.Equal(t, int64(2), m.Writes)
	require.Equal(t, int64(4), m.MemoryAccesses)
	// Both values were seen for the first time; baselines only.
	require.Equal(t, int64(0), m.ElementMoves)

	// Swapping back moves both values a distance of 2 each.
	trk.Swap(arr, 0, 2)
	require.Equal(t, []int{1, 2, 3}, arr)
	m = trk.Metrics()
	require.Equal(t, int64(2), m.ElementMoves)
	require.Equal(t, int64(4), m.TotalMoveDistance)
	require.Equal(t, int64(2), m.MaxMoveDistance)
}

func TestSwap_SameIndexIsNoop(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{5, 6}

	trk.Swap(arr, 1, 1)

	m := trk.Metrics()
	require.Equal(t, int64(0), m.Swaps)
	require.Equal(t, int64(0), m.Reads)
	require.Equal(t, int64(0), m.Writes)
	require.Empty(t, trk.History())
}

func TestPauseResume_ExcludesTimeAndOps(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	trk := newTestTracker(t, func(c *Config) {
		c.Clock = clock.Now
	})
	arr := []int{7, 8, 9}

	clock.Advance(2 * time.Millisecond)
	trk.Read(arr, 0)

	trk.Pause()
	clock.Advance(3 * time.Millisecond)

	// Primitives still perform their effect while paused, just untracked.
	require.Equal(t, 8, trk.Read(arr, 1))
	trk.Write(arr, 2, 42)
	require.Equal(t, 42, arr[2])
	require.Equal(t, -1, trk.Compare(1, 2))
	trk.Swap(arr, 0, 1)
	require.Equal(t, []int{8, 7, 42}, arr)

	trk.Resume()
	clock.Advance(1 * time.Millisecond)
	trk.Finish()

	m := trk.Metrics()
	require.Equal(t, int64(1), m.Reads, "paused operations must not count")
	require.Equal(t, int64(0), m.Writes)
	require.Equal(t, int64(0), m.Comparisons)
	require.Equal(t, int64(0), m.Swaps)
	require.Equal(t, 3*time.Millisecond, m.ExecutionTime, "paused interval excluded")
}

func TestPhases_IdempotentAndAccumulating(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{1, 2, 3, 4}

	trk.SetPhase("counting")
	trk.SetPhase("counting") // Idempotent
	require.Equal(t, "counting", trk.Phase())
	require.Len(t, trk.PhaseTransitions(), 1)

	trk.Read(arr, 0)
	trk.Read(arr, 1)
	trk.Read(arr, 2)

	trk.SetPhase("building-output")
	trk.Write(arr, 0, 9)

	// Revisit accumulates into the same stats entry.
	trk.SetPhase("counting")
	trk.Read(arr, 3)
	trk.Finish()

	rep := trk.Report()
	require.Len(t, rep.Phases, 2, "stats keyed by name, not by visit")
	require.Equal(t, "counting", rep.Phases[0].Phase)
	require.Equal(t, 2, rep.Phases[0].Visits)
	require.Equal(t, int64(4), rep.Phases[0].Ops.Reads)
	require.Equal(t, "building-output", rep.Phases[1].Phase)
	require.Equal(t, 1, rep.Phases[1].Visits)
	require.Equal(t, int64(1), rep.Phases[1].Ops.Writes)

	transitions := rep.Transitions
	require.Len(t, transitions, 3)
	require.Equal(t, "counting", transitions[0].Phase)
	require.Equal(t, "", transitions[0].Previous)
	require.Equal(t, "building-output", transitions[1].Phase)
	require.Equal(t, "counting", transitions[1].Previous)
}

func TestOperationFilter_LimitsPrimitiveRecords(t *testing.T) {
	trk := newTestTracker(t, func(c *Config) {
		c.OperationFilter = []string{"swap"}
	})
	arr := []int{1, 2}

	trk.SetPhase("distribution")
	trk.Read(arr, 0)
	trk.Write(arr, 1, 5)
	trk.Compare(1, 5)
	trk.Swap(arr, 0, 1)
	trk.RecordState(arr, "checkpoint", nil)

	var types []StepType
	for _, rec := range trk.History() {
		types = append(types, rec.Type)
	}
	// Phase and milestone records always pass; only swap among primitives.
	require.Equal(t, []StepType{StepPhase, StepSwap, StepMilestone}, types)

	// Filtering affects records, never counters.
	m := trk.Metrics()
	require.Equal(t, int64(1), m.Comparisons)
	require.Equal(t, int64(3), m.Reads)
}

func TestTimeline_BoundAndOnStep(t *testing.T) {
	var delivered int
	trk := newTestTracker(t, func(c *Config) {
		c.MaxTimelineEvents = 5
		c.OnStep = func(StepRecord) { delivered++ }
	})
	arr := make([]int, 10)

	for i := 0; i < 10; i++ {
		trk.Read(arr, i)
	}

	require.Equal(t, 5, len(trk.History()), "oldest records kept, newest dropped")
	require.Equal(t, int64(5), trk.TimelineDropped())
	require.Equal(t, 5, delivered, "OnStep fires only for kept records")
	require.Equal(t, int64(10), trk.Metrics().Reads, "counters unaffected by the bound")
}

func TestFunctionTracking_RecursionDepth(t *testing.T) {
	trk := newTestTracker(t, nil)

	trk.EnterFunction("msdRadixSort")
	trk.EnterFunction("msdRadixSort")
	trk.EnterFunction("msdRadixSort")

	m := trk.Metrics()
	require.Equal(t, int64(3), m.FunctionCalls)
	require.Equal(t, int64(2), m.RecursiveCalls)
	require.Equal(t, 3, m.RecursionDepth)
	require.Equal(t, 3, m.MaxRecursionDepth)

	trk.ExitFunction("msdRadixSort")
	trk.ExitFunction("msdRadixSort")
	trk.ExitFunction("msdRadixSort")

	m = trk.Metrics()
	require.Equal(t, 0, m.RecursionDepth)
	require.Equal(t, 3, m.MaxRecursionDepth)

	rep := trk.Report()
	require.Len(t, rep.Functions, 1)
	require.Equal(t, "msdRadixSort", rep.Functions[0].Name)
	require.Equal(t, int64(3), rep.Functions[0].Calls)
	require.Equal(t, int64(2), rep.Functions[0].RecursiveCalls)
	require.Equal(t, 3, rep.Functions[0].MaxDepth)
}

func TestFunctionTracking_MismatchResyncs(t *testing.T) {
	trk := newTestTracker(t, nil)

	trk.EnterFunction("outer")
	trk.EnterFunction("inner")
	// Wrong return order: the stack resyncs down to (and including) outer.
	trk.ExitFunction("outer")

	require.Equal(t, 0, trk.Metrics().RecursionDepth)

	// And an exit on an empty stack must not panic.
	trk.ExitFunction("ghost")
	require.Equal(t, 0, trk.Metrics().RecursionDepth)
}

func TestAuxiliarySpace_PeakTracking(t *testing.T) {
	trk := newTestTracker(t, nil)

	trk.AddAuxiliary(10)
	trk.AddAuxiliary(5)
	m := trk.Metrics()
	require.Equal(t, int64(15), m.AuxiliarySpace)
	require.Equal(t, int64(15), m.MaxAuxiliarySpace)

	trk.ReleaseAuxiliary(12)
	m = trk.Metrics()
	require.Equal(t, int64(3), m.AuxiliarySpace)
	require.Equal(t, int64(15), m.MaxAuxiliarySpace, "peak survives release")

	trk.ReleaseAuxiliary(100)
	require.Equal(t, int64(0), trk.Metrics().AuxiliarySpace, "floor at zero")
}

func TestRecordState_SnapshotIsIsolated(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{1, 2, 3}

	trk.RecordState(arr, "before mutation", map[string]any{"k": 1})
	arr[0] = 99

	history := trk.History()
	require.Len(t, history, 1)
	require.Equal(t, StepMilestone, history[0].Type)
	require.Equal(t, []int{1, 2, 3}, history[0].Array, "snapshot must not alias the live array")
	require.Equal(t, "before mutation", history[0].Message)
}

func TestReset_ClearsRunState(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{3, 1}

	trk.SetPhase("distribution")
	trk.Read(arr, 0)
	trk.Swap(arr, 0, 1)
	trk.EnterFunction("f")
	trk.AddAuxiliary(4)

	trk.Reset()

	require.Equal(t, Metrics{}, trk.Metrics())
	require.Empty(t, trk.History())
	require.Equal(t, int64(0), trk.TimelineDropped())
	require.Equal(t, "", trk.Phase())
	require.Empty(t, trk.PhaseTransitions())
}
