package tracker

import "time"

// Metrics tracks the primitive-operation counters for a single run.
// It is created at run start and mutated exclusively by the tracker's
// primitives; algorithms and external consumers read it as a snapshot.
// Derived values (ratios, throughput) live in Report and are computed on
// demand, never stored here.
type Metrics struct {
	// Core operation counters
	Comparisons    int64 `json:"comparisons"`    // Compare calls
	Swaps          int64 `json:"swaps"`          // Swap calls with i != j
	Reads          int64 `json:"reads"`          // Element reads (Swap counts 2)
	Writes         int64 `json:"writes"`         // Element writes (Swap counts 2)
	MemoryAccesses int64 `json:"memoryAccesses"` // Reads + writes combined

	// Auxiliary memory (elements, not bytes)
	AuxiliarySpace    int64 `json:"auxiliarySpace"`    // Currently allocated scratch elements
	MaxAuxiliarySpace int64 `json:"maxAuxiliarySpace"` // Peak scratch allocation

	// Call tracking (recursive algorithms)
	FunctionCalls     int64 `json:"functionCalls"`     // EnterFunction calls
	RecursiveCalls    int64 `json:"recursiveCalls"`    // Re-entrant EnterFunction calls
	RecursionDepth    int   `json:"recursionDepth"`    // Current call-stack depth
	MaxRecursionDepth int   `json:"maxRecursionDepth"` // Peak call-stack depth

	// Simulated cache behavior
	CacheHits      int64 `json:"cacheHits"`
	CacheMisses    int64 `json:"cacheMisses"`
	CacheEvictions int64 `json:"cacheEvictions"`

	// Element movement
	ElementMoves      int64 `json:"elementMoves"`      // Writes that relocated a tracked value
	TotalMoveDistance int64 `json:"totalMoveDistance"` // Sum of |newIndex - oldIndex| over all moves
	MaxMoveDistance   int64 `json:"maxMoveDistance"`   // Largest single move

	// Access pattern classification
	SequentialAccesses int64 `json:"sequentialAccesses"` // |index - previous| == 1
	RandomAccesses     int64 `json:"randomAccesses"`     // Everything else

	// ExecutionTime is the run duration with paused intervals subtracted.
	// Stamped by Finish; zero while the run is still in flight.
	ExecutionTime time.Duration `json:"executionTimeNs"`
}

// Clone creates a copy of the metrics
func (m *Metrics) Clone() Metrics {
	return *m
}

// OperationDelta is the subset of counters used for per-phase breakdowns.
type OperationDelta struct {
	Comparisons    int64 `json:"comparisons"`
	Reads          int64 `json:"reads"`
	Writes         int64 `json:"writes"`
	Swaps          int64 `json:"swaps"`
	MemoryAccesses int64 `json:"memoryAccesses"`
}

// delta returns the current counters as an OperationDelta snapshot.
func (m *Metrics) delta() OperationDelta {
	return OperationDelta{
		Comparisons:    m.Comparisons,
		Reads:          m.Reads,
		Writes:         m.Writes,
		Swaps:          m.Swaps,
		MemoryAccesses: m.MemoryAccesses,
	}
}

// sub returns a - b field by field.
func (a OperationDelta) sub(b OperationDelta) OperationDelta {
	return OperationDelta{
		Comparisons:    a.Comparisons - b.Comparisons,
		Reads:          a.Reads - b.Reads,
		Writes:         a.Writes - b.Writes,
		Swaps:          a.Swaps - b.Swaps,
		MemoryAccesses: a.MemoryAccesses - b.MemoryAccesses,
	}
}

// add returns a + b field by field.
func (a OperationDelta) add(b OperationDelta) OperationDelta {
	return OperationDelta{
		Comparisons:    a.Comparisons + b.Comparisons,
		Reads:          a.Reads + b.Reads,
		Writes:         a.Writes + b.Writes,
		Swaps:          a.Swaps + b.Swaps,
		MemoryAccesses: a.MemoryAccesses + b.MemoryAccesses,
	}
}
