// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package structures holds the two primitives the hydrology core is
// built on: an indexed min-heap with FIFO tie-breaking (IndexedHeap)
// and a bounded FIFO queue (FIFO). Both are backed by pre-sized flat
// arrays, never grow past nrows*ncols entries, and keep no internal
// locking: the core's concurrency contract is single-threaded
// (spec.md §5).
package structures

// IndexedHeap is a binary min-heap over (key int, priority float32)
// entries, keyed by grid index. It backs both C8 (the GWDT solver,
// which simulates decrease-key by pushing duplicates and discarding
// stale pops) and C11 (the priority-flood open queue, which requires a
// FIFO tie-break among equal-priority entries).
//
// A plain swim/sink heap does not guarantee that: two equal-priority
// entries can leave in either order depending on how sibling swaps
// land. IndexedHeap instead carries a monotonically increasing
// insertion sequence as a secondary key, so Pop always returns the
// earliest-inserted entry among those tied on priority — the "stable
// heap" option spec.md's Design Notes call for, rather than a
// documented deviation.
type IndexedHeap struct {
	key      []int
	priority []float32
	seq      []uint64
	n        int
	nextSeq  uint64
}

// NewIndexedHeap allocates a heap with room for up to capacity
// entries (the deterministic-memory contract: callers size this to
// nrows*ncols, the worst case where every cell is pushed once).
func NewIndexedHeap(capacity int) *IndexedHeap {
	return &IndexedHeap{
		key:      make([]int, capacity),
		priority: make([]float32, capacity),
		seq:      make([]uint64, capacity),
	}
}

// Reset empties the heap without reallocating, so the deterministic-
// memory entry points can reuse caller-supplied scratch across calls.
func (h *IndexedHeap) Reset() { h.n = 0; h.nextSeq = 0 }

// Len returns the number of entries currently in the heap.
func (h *IndexedHeap) Len() int { return h.n }

// Empty reports whether the heap has no entries.
func (h *IndexedHeap) Empty() bool { return h.n == 0 }

// TopPriority returns the priority of the minimum entry without
// removing it. Only valid when Empty() is false.
func (h *IndexedHeap) TopPriority() float32 { return h.priority[0] }

// Push inserts (key, priority).
func (h *IndexedHeap) Push(key int, priority float32) {
	i := h.n
	h.key[i] = key
	h.priority[i] = priority
	h.seq[i] = h.nextSeq
	h.nextSeq++
	h.n++
	h.swim(i)
}

// Pop removes and returns the minimum-priority entry, ties broken by
// insertion order.
func (h *IndexedHeap) Pop() (key int, priority float32) {
	key, priority = h.key[0], h.priority[0]
	h.n--
	h.key[0], h.priority[0], h.seq[0] = h.key[h.n], h.priority[h.n], h.seq[h.n]
	h.sink(0)
	return key, priority
}

func (h *IndexedHeap) less(i, j int) bool {
	if h.priority[i] != h.priority[j] {
		return h.priority[i] < h.priority[j]
	}
	return h.seq[i] < h.seq[j]
}

func (h *IndexedHeap) swap(i, j int) {
	h.key[i], h.key[j] = h.key[j], h.key[i]
	h.priority[i], h.priority[j] = h.priority[j], h.priority[i]
	h.seq[i], h.seq[j] = h.seq[j], h.seq[i]
}

func (h *IndexedHeap) swim(k int) {
	for k > 0 {
		parent := (k - 1) / 2
		if !h.less(k, parent) {
			break
		}
		h.swap(k, parent)
		k = parent
	}
}

func (h *IndexedHeap) sink(k int) {
	for {
		left := 2*k + 1
		if left >= h.n {
			break
		}
		smallest := left
		if right := left + 1; right < h.n && h.less(right, left) {
			smallest = right
		}
		if !h.less(smallest, k) {
			break
		}
		h.swap(k, smallest)
		k = smallest
	}
}
