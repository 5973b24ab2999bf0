package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReport_Ratios(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := []int{10, 20, 30}

	// Two full passes: the first misses every line, the second hits.
	for pass := 0; pass < 2; pass++ {
		for i := range arr {
			trk.Read(arr, i)
		}
	}
	trk.Compare(1, 2)
	trk.Compare(1, 2)

	rep := trk.Report()
	require.InDelta(t, 0.5, rep.CacheHitRatio, 1e-9)
	// 6 accesses: 0,1,2,0,1,2. Five classified, one is the 2->0 jump.
	require.InDelta(t, 0.8, rep.SequentialAccessRatio, 1e-9)
	require.InDelta(t, 2.0/6.0, rep.ComparisonRatio, 1e-9)
}

func TestReport_BranchPredictability(t *testing.T) {
	t.Run("constant outcome is fully predictable", func(t *testing.T) {
		trk := newTestTracker(t, nil)
		for i := 0; i < 4; i++ {
			trk.Compare(1, 2)
		}
		require.InDelta(t, 1.0, trk.Report().BranchPredictability, 1e-9)
	})

	t.Run("alternating outcome is unpredictable", func(t *testing.T) {
		trk := newTestTracker(t, nil)
		trk.Compare(1, 2)
		trk.Compare(2, 1)
		trk.Compare(1, 2)
		trk.Compare(2, 1)
		require.InDelta(t, 0.0, trk.Report().BranchPredictability, 1e-9)
	})

	t.Run("no comparisons yields zero", func(t *testing.T) {
		trk := newTestTracker(t, nil)
		require.Equal(t, 0.0, trk.Report().BranchPredictability)
	})
}

func TestReport_Hotspots(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := make([]int, 100)

	// One touch at the far end fixes the index span at 100.
	trk.Read(arr, 99)
	// Hammer the first five indices.
	for rep := 0; rep < 12; rep++ {
		for i := 0; i < 5; i++ {
			trk.Read(arr, i)
		}
	}

	hotspots := trk.Report().Hotspots
	require.Len(t, hotspots, 1)
	require.Equal(t, 0, hotspots[0].StartIndex)
	require.Equal(t, 4, hotspots[0].EndIndex)
	require.Equal(t, int64(60), hotspots[0].Accesses)
	require.Greater(t, hotspots[0].Density, 0.9)
}

func TestReport_HotspotsMergeAdjacentRanges(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := make([]int, 100)

	trk.Read(arr, 99)
	// Indices 0..9 span two adjacent buckets, both above threshold.
	for rep := 0; rep < 10; rep++ {
		for i := 0; i < 10; i++ {
			trk.Read(arr, i)
		}
	}

	hotspots := trk.Report().Hotspots
	require.Len(t, hotspots, 1, "adjacent hot buckets merge into one range")
	require.Equal(t, 0, hotspots[0].StartIndex)
	require.Equal(t, 9, hotspots[0].EndIndex)
	require.Equal(t, int64(100), hotspots[0].Accesses)
}

func TestReport_FarthestMovers(t *testing.T) {
	trk := newTestTracker(t, nil)
	arr := make([]int, 16)

	trk.Write(arr, 0, 7)
	trk.Write(arr, 10, 7) // Distance 10
	trk.Write(arr, 0, 3)
	trk.Write(arr, 3, 3) // Distance 3

	movers := trk.Report().FarthestMovers
	require.Len(t, movers, 2)
	require.Equal(t, 7, movers[0].Value)
	require.Equal(t, int64(10), movers[0].TotalDistance)
	require.Equal(t, 0, movers[0].FirstIndex)
	require.Equal(t, 10, movers[0].LastIndex)
	require.Equal(t, 3, movers[1].Value)
	require.Equal(t, int64(3), movers[1].TotalDistance)
}

func TestReport_MidRunUsesElapsedTime(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	trk := newTestTracker(t, func(c *Config) {
		c.Clock = clock.Now
	})

	clock.Advance(2 * time.Millisecond)
	rep := trk.Report()
	require.Equal(t, 2*time.Millisecond, rep.ExecutionTime, "mid-run report reflects elapsed time")
	require.Equal(t, time.Duration(0), trk.Metrics().ExecutionTime, "Report never mutates tracker state")

	clock.Advance(time.Millisecond)
	trk.Finish()
	require.Equal(t, 3*time.Millisecond, trk.Report().ExecutionTime)
}

func TestReport_EmptyRun(t *testing.T) {
	trk := newTestTracker(t, nil)
	rep := trk.Report()

	require.Equal(t, Metrics{}, rep.Metrics)
	require.Empty(t, rep.Hotspots)
	require.Empty(t, rep.FarthestMovers)
	require.Empty(t, rep.Phases)
	require.Equal(t, 0.0, rep.CacheHitRatio)
}
