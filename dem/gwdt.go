// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"math"

	"github.com/gospatial/hydrodem/grid"
	"github.com/gospatial/hydrodem/structures"
)

// GWDTComputeCosts builds the gray-weighted distance transform costs
// (C7): for each 4-connected component of flats, the per-pixel cost is
// the squared shortfall from the component's maximum
// (original-filled) difference, plus a small constant that keeps
// presill pixels from getting a zero-cost self-loop. conncomps[p] is
// the linear index of the component's arg-max pixel; zero for
// non-flats.
func GWDTComputeCosts(costs []float32, conncomps []int, flats []int32, originalDEM, filledDEM []float32, dims grid.Dims) {
	n := dims.N()
	for i := 0; i < n; i++ {
		costs[i] = 0
		conncomps[i] = 0
	}

	visited := make([]bool, n)
	var component []int
	stack := make([]int, 0, 64)

	for start := 0; start < n; start++ {
		if flats[start]&FlagFlat == 0 || visited[start] {
			continue
		}

		component = component[:0]
		stack = stack[:0]
		stack = append(stack, start)
		visited[start] = true

		argmax := start
		maxDiff := originalDEM[start] - filledDEM[start]

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, p)

			diff := originalDEM[p] - filledDEM[p]
			if diff > maxDiff {
				maxDiff = diff
				argmax = p
			}

			rowOff, colOff := grid.OffsetsD4()
			row, col := dims.RowCol(p)
			for k := 0; k < 4; k++ {
				nr, nc := row+rowOff[k], col+colOff[k]
				if !dims.InBounds(nr, nc) {
					continue
				}
				q := dims.Index(nr, nc)
				if visited[q] || flats[q]&FlagFlat == 0 {
					continue
				}
				visited[q] = true
				stack = append(stack, q)
			}
		}

		for _, p := range component {
			diff := originalDEM[p] - filledDEM[p]
			shortfall := maxDiff - diff
			costs[p] = shortfall*shortfall + 0.1
			conncomps[p] = argmax
		}
	}
}

// GWDT solves the multi-source gray-weighted distance transform (C8):
// Dijkstra restricted to the subgraph of flat pixels, sourced at the
// presill pixels, with edge weight chamfer(p,q)*(costs[p]+costs[q])/2
// (Soille 1994's geodesic time discretisation). Non-flat pixels are
// barriers: never relaxed, never popped.
//
// heap and back are caller-supplied scratch sized dims.N() (the
// deterministic-memory contract); back tracks which pixels are
// already settled so stale heap duplicates - inserted because this
// heap has no decrease-key - are discarded on pop. prev may be nil to
// skip recording shortest-path predecessors.
func GWDT(dist []float32, prev []int, costs []float32, flats []int32, dims grid.Dims, heap *structures.IndexedHeap, back []uint8) {
	n := dims.N()
	heap.Reset()
	for i := 0; i < n; i++ {
		dist[i] = float32(math.Inf(1))
		back[i] = 0
		if prev != nil {
			prev[i] = -1
		}
	}

	for i := 0; i < n; i++ {
		if flats[i]&FlagPresill != 0 {
			heap.Push(i, 0)
		}
	}

	for !heap.Empty() {
		p, priority := heap.Pop()
		if back[p] != 0 {
			continue // stale duplicate of an already-settled pixel
		}
		back[p] = 1
		dist[p] = priority

		for d := 0; d < 8; d++ {
			q, ok := dims.NeighbourIndex(p, d)
			if !ok || flats[q]&FlagFlat == 0 || back[q] != 0 {
				continue
			}
			weight := float32(grid.ChamferWeight(d)) * (costs[p] + costs[q]) / 2
			newDist := priority + weight
			if newDist < dist[q] {
				dist[q] = newDist
				if prev != nil {
					prev[q] = p
				}
				heap.Push(q, newDist)
			}
		}
	}
}

// GWDTAlloc is the convenience entry point: it allocates its own heap
// and settled-tracking scratch and releases them before returning.
func GWDTAlloc(costs []float32, flats []int32, dims grid.Dims, withPrev bool) (dist []float32, prev []int) {
	n := dims.N()
	dist = make([]float32, n)
	if withPrev {
		prev = make([]int, n)
	}
	heap := structures.NewIndexedHeap(n)
	back := make([]uint8, n)
	GWDT(dist, prev, costs, flats, dims, heap, back)
	return dist, prev
}
