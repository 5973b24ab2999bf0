package tracker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheModel_HitMissEviction(t *testing.T) {
	c := NewCacheModel(2)

	hit, evicted := c.Access(0, StepRead, 0)
	require.False(t, hit)
	require.False(t, evicted)

	hit, evicted = c.Access(1, StepRead, 0)
	require.False(t, hit)
	require.False(t, evicted)
	require.Equal(t, 2, c.Len())

	hit, evicted = c.Access(0, StepWrite, 0)
	require.True(t, hit, "resident line hits")
	require.False(t, evicted)

	// Cache is full; inserting index 2 evicts the least recently used line,
	// which is 1 (0 was just touched).
	hit, evicted = c.Access(2, StepRead, 0)
	require.False(t, hit)
	require.True(t, evicted)
	require.True(t, c.Contains(0))
	require.False(t, c.Contains(1))
	require.True(t, c.Contains(2))
	require.Equal(t, 2, c.Len(), "never exceeds capacity")

	hits, misses, evictions := c.Stats()
	require.Equal(t, int64(1), hits)
	require.Equal(t, int64(3), misses)
	require.Equal(t, int64(1), evictions)
}

func TestCacheModel_Reset(t *testing.T) {
	c := NewCacheModel(4)
	c.Access(1, StepRead, 0)
	c.Access(2, StepRead, 0)

	c.Reset()

	require.Equal(t, 0, c.Len())
	require.False(t, c.Contains(1))
	hits, misses, evictions := c.Stats()
	require.Equal(t, int64(0), hits)
	require.Equal(t, int64(0), misses)
	require.Equal(t, int64(0), evictions)
}

func TestCacheModel_SequentialScanPattern(t *testing.T) {
	// A scan over more indices than lines never hits; rescanning the same
	// window inside capacity always hits.
	c := NewCacheModel(4)
	for i := 0; i < 8; i++ {
		hit, _ := c.Access(i, StepRead, 0)
		require.False(t, hit)
	}
	for i := 4; i < 8; i++ {
		hit, _ := c.Access(i, StepRead, 0)
		require.True(t, hit, "index %d should be resident", i)
	}
}
