// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package structures

// FIFO is a bounded circular buffer of grid indices, backing the
// morphological reconstruction propagation queue (C4) and the
// priority-flood pit queue (C11). Capacity is fixed at construction
// time (nrows*ncols, the worst case where every cell is enqueued
// once) and never grows.
type FIFO struct {
	buf        []int
	head, tail int
	size       int
}

// NewFIFO allocates a FIFO with the given capacity.
func NewFIFO(capacity int) *FIFO {
	return &FIFO{buf: make([]int, capacity)}
}

// Reset empties the queue without reallocating.
func (q *FIFO) Reset() { q.head, q.tail, q.size = 0, 0, 0 }

// Size returns the number of elements currently queued.
func (q *FIFO) Size() int { return q.size }

// Empty reports whether the queue has no elements.
func (q *FIFO) Empty() bool { return q.size == 0 }

// Enqueue inserts v at the tail. The caller must ensure Size() <
// capacity; the core never enqueues a cell more than once per pass,
// so capacity nrows*ncols is always sufficient.
func (q *FIFO) Enqueue(v int) {
	q.buf[q.tail] = v
	q.tail = (q.tail + 1) % len(q.buf)
	q.size++
}

// Dequeue removes and returns the element at the head.
func (q *FIFO) Dequeue() int {
	v := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.size--
	return v
}

// Front returns the element at the head without removing it.
func (q *FIFO) Front() int { return q.buf[q.head] }
