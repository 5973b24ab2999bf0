package tracker

import "time"

// AccessHotspot is a contiguous index range that received a
// disproportionate share of accesses.
type AccessHotspot struct {
	StartIndex int     `json:"startIndex"`
	EndIndex   int     `json:"endIndex"` // Inclusive
	Accesses   int64   `json:"accesses"`
	Density    float64 `json:"density"` // Share of all tracked accesses
}

// Report is a derived, read-only view of a run. Building one never mutates
// tracker state; it can be produced any number of times, including mid-run.
type Report struct {
	Metrics Metrics `json:"metrics"`

	// Ratios, computed on demand
	ComparisonRatio       float64 `json:"comparisonRatio"`       // Comparisons per memory access
	CacheHitRatio         float64 `json:"cacheHitRatio"`         // Hits / (hits + misses)
	BranchPredictability  float64 `json:"branchPredictability"`  // Repeated comparison results / comparisons
	SequentialAccessRatio float64 `json:"sequentialAccessRatio"` // Sequential / classified accesses

	Hotspots       []AccessHotspot   `json:"hotspots,omitempty"`
	FarthestMovers []Movement        `json:"farthestMovers,omitempty"`
	Phases         []PhaseStats      `json:"phases,omitempty"`
	Transitions    []PhaseTransition `json:"transitions,omitempty"`
	Functions      []FunctionStats   `json:"functions,omitempty"`

	TimelineEvents  int           `json:"timelineEvents"`
	TimelineDropped int64         `json:"timelineDropped"`
	ExecutionTime   time.Duration `json:"executionTimeNs"`
}

// Hotspot detection parameters: accesses are histogrammed into at most 20
// buckets and a bucket counts as hot when it holds more than 10% of all
// tracked accesses.
const (
	hotspotBuckets          = 20
	hotspotDensityThreshold = 0.1
)

// maxFarthestMovers caps the movers list in the report.
const maxFarthestMovers = 10

// Report computes a derived report from the current run state.
func (t *Tracker) Report() *Report {
	m := t.metrics.Clone()

	r := &Report{
		Metrics:         m,
		Phases:          t.phases.Stats(),
		Transitions:     t.phases.Transitions(),
		Functions:       t.calls.stats(),
		FarthestMovers:  t.movement.farthest(maxFarthestMovers),
		Hotspots:        t.hotspots(),
		TimelineEvents:  t.timeline.Len(),
		TimelineDropped: t.timeline.Dropped(),
		ExecutionTime:   m.ExecutionTime,
	}
	if r.ExecutionTime == 0 {
		// Mid-run report: use elapsed time so far.
		r.ExecutionTime = t.now()
	}

	if m.MemoryAccesses > 0 {
		r.ComparisonRatio = float64(m.Comparisons) / float64(m.MemoryAccesses)
	}
	if total := m.CacheHits + m.CacheMisses; total > 0 {
		r.CacheHitRatio = float64(m.CacheHits) / float64(total)
	}
	if t.compareObserved > 1 {
		r.BranchPredictability = float64(t.compareRepeats) / float64(t.compareObserved-1)
	}
	if classified := m.SequentialAccesses + m.RandomAccesses; classified > 0 {
		r.SequentialAccessRatio = float64(m.SequentialAccesses) / float64(classified)
	}

	return r
}

// hotspots histograms the per-index access counts into at most
// hotspotBuckets buckets, keeps buckets whose density exceeds the threshold,
// and merges adjacent hot buckets into contiguous ranges.
func (t *Tracker) hotspots() []AccessHotspot {
	if t.totalTracked == 0 || t.maxIndex < 0 {
		return nil
	}

	indexSpan := t.maxIndex + 1
	buckets := hotspotBuckets
	if indexSpan < buckets {
		buckets = indexSpan
	}
	bucketWidth := (indexSpan + buckets - 1) / buckets

	counts := make([]int64, buckets)
	for idx, n := range t.accessCounts {
		b := idx / bucketWidth
		if b >= buckets {
			b = buckets - 1
		}
		counts[b] += n
	}

	var out []AccessHotspot
	for b := 0; b < buckets; b++ {
		density := float64(counts[b]) / float64(t.totalTracked)
		if density <= hotspotDensityThreshold {
			continue
		}
		start := b * bucketWidth
		end := start + bucketWidth - 1
		if end > t.maxIndex {
			end = t.maxIndex
		}
		if n := len(out); n > 0 && out[n-1].EndIndex+1 == start {
			// Merge with the previous hot range.
			out[n-1].EndIndex = end
			out[n-1].Accesses += counts[b]
			out[n-1].Density += density
			continue
		}
		out = append(out, AccessHotspot{
			StartIndex: start,
			EndIndex:   end,
			Accesses:   counts[b],
			Density:    density,
		})
	}
	return out
}
