package tracker

import (
	"container/list"
	"time"
)

// cacheLine is the per-index bookkeeping stored in the LRU list.
type cacheLine struct {
	index        int
	lastOp       StepType
	lastAccessed time.Duration
}

// CacheModel simulates a tiny LRU cache over array indices. It exists only
// for the duration of a run and is discarded on reset. Invariant: the number
// of resident lines never exceeds the configured size; on overflow the least
// recently accessed line is evicted before the new one is inserted.
type CacheModel struct {
	size    int
	lru     *list.List               // Front = most recent
	lines   map[int]*list.Element    // index -> element holding *cacheLine
	hits    int64
	misses  int64
	evicted int64
}

// NewCacheModel creates an LRU cache model with the given line count.
func NewCacheModel(size int) *CacheModel {
	return &CacheModel{
		size:  size,
		lru:   list.New(),
		lines: make(map[int]*list.Element, size),
	}
}

// Access touches index with the given operation and returns whether it was
// a hit and whether a line was evicted to make room. A miss inserts the
// index, evicting the least recently accessed line if the cache is full.
func (c *CacheModel) Access(index int, op StepType, at time.Duration) (hit, evicted bool) {
	if elem, ok := c.lines[index]; ok {
		c.lru.MoveToFront(elem)
		line := elem.Value.(*cacheLine)
		line.lastOp = op
		line.lastAccessed = at
		c.hits++
		return true, false
	}

	c.misses++
	if c.lru.Len() >= c.size {
		c.evictOldest()
		evicted = true
	}
	elem := c.lru.PushFront(&cacheLine{index: index, lastOp: op, lastAccessed: at})
	c.lines[index] = elem
	return false, evicted
}

func (c *CacheModel) evictOldest() {
	elem := c.lru.Back()
	if elem != nil {
		c.removeElement(elem)
		c.evicted++
	}
}

func (c *CacheModel) removeElement(e *list.Element) {
	c.lru.Remove(e)
	line := e.Value.(*cacheLine)
	delete(c.lines, line.index)
}

// Len returns the number of resident lines.
func (c *CacheModel) Len() int {
	return c.lru.Len()
}

// Contains reports whether index is currently resident.
func (c *CacheModel) Contains(index int) bool {
	_, ok := c.lines[index]
	return ok
}

// Stats returns cumulative hit/miss/eviction counts.
func (c *CacheModel) Stats() (hits, misses, evictions int64) {
	return c.hits, c.misses, c.evicted
}

// Reset discards all lines and counters, preserving the configured size.
func (c *CacheModel) Reset() {
	c.lru.Init()
	c.lines = make(map[int]*list.Element, c.size)
	c.hits = 0
	c.misses = 0
	c.evicted = 0
}
