package algorithms

import (
	"github.com/mvoloshin/sortlab/tracker"
)

// Inner comparison sorts used by bucket sort and the MSD small-range
// fallback. Array access is routed through tracker primitives; value
// comparisons are made directly so the comparison counter stays reserved for
// the Compare contract — the distribution family reports zero comparisons.

// insertionSortRange sorts arr[lo..hi] inclusive. Stable.
func insertionSortRange(t *tracker.Tracker, arr []int, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		key := t.Read(arr, i)
		j := i - 1
		for j >= lo && t.Read(arr, j) > key {
			t.Write(arr, j+1, t.Read(arr, j))
			j--
		}
		t.Write(arr, j+1, key)
	}
}

// quickSortRange sorts arr[lo..hi] inclusive in place. Not stable. Small
// ranges fall through to insertion sort.
func quickSortRange(t *tracker.Tracker, arr []int, lo, hi int) {
	for hi-lo > 12 {
		p := partition(t, arr, lo, hi)
		// Recurse into the smaller side, loop on the larger.
		if p-lo < hi-p {
			quickSortRange(t, arr, lo, p-1)
			lo = p + 1
		} else {
			quickSortRange(t, arr, p+1, hi)
			hi = p - 1
		}
	}
	if hi > lo {
		insertionSortRange(t, arr, lo, hi)
	}
}

// partition uses a median-of-three pivot moved to hi, then Lomuto.
func partition(t *tracker.Tracker, arr []int, lo, hi int) int {
	mid := int(uint(lo+hi) >> 1)
	if t.Read(arr, mid) < t.Read(arr, lo) {
		t.Swap(arr, mid, lo)
	}
	if t.Read(arr, hi) < t.Read(arr, lo) {
		t.Swap(arr, hi, lo)
	}
	if t.Read(arr, hi) < t.Read(arr, mid) {
		t.Swap(arr, hi, mid)
	}
	t.Swap(arr, mid, hi)

	pivot := t.Read(arr, hi)
	i := lo
	for j := lo; j < hi; j++ {
		if t.Read(arr, j) < pivot {
			t.Swap(arr, i, j)
			i++
		}
	}
	t.Swap(arr, i, hi)
	return i
}

// mergeSortRange sorts arr[lo..hi] inclusive. Stable; allocates a scratch
// buffer for the whole range once.
func mergeSortRange(t *tracker.Tracker, arr []int, lo, hi int) {
	if hi <= lo {
		return
	}
	scratch := make([]int, hi-lo+1)
	t.AddAuxiliary(len(scratch))
	mergeSortInto(t, arr, scratch, lo, hi)
	t.ReleaseAuxiliary(len(scratch))
}

func mergeSortInto(t *tracker.Tracker, arr, scratch []int, lo, hi int) {
	if hi <= lo {
		return
	}
	mid := int(uint(lo+hi) >> 1)
	mergeSortInto(t, arr, scratch, lo, mid)
	mergeSortInto(t, arr, scratch, mid+1, hi)

	// Merge arr[lo..mid] and arr[mid+1..hi] into scratch, then copy back.
	i, j, k := lo, mid+1, 0
	for i <= mid && j <= hi {
		left, right := t.Read(arr, i), t.Read(arr, j)
		if left <= right { // <= keeps the merge stable
			scratch[k] = left
			i++
		} else {
			scratch[k] = right
			j++
		}
		k++
	}
	for i <= mid {
		scratch[k] = t.Read(arr, i)
		i++
		k++
	}
	for j <= hi {
		scratch[k] = t.Read(arr, j)
		j++
		k++
	}
	for x := 0; x < k; x++ {
		t.Write(arr, lo+x, scratch[x])
	}
}

// innerSortRange dispatches on the configured inner sort.
func innerSortRange(t *tracker.Tracker, arr []int, lo, hi int, inner InnerSort) {
	switch inner {
	case InnerQuick:
		quickSortRange(t, arr, lo, hi)
	case InnerMerge:
		mergeSortRange(t, arr, lo, hi)
	default:
		insertionSortRange(t, arr, lo, hi)
	}
}
