// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"math"

	"github.com/gospatial/hydrodem/grid"
	"github.com/gospatial/hydrodem/structures"
)

// pitTopSentinel marks "no depression currently active", spec.md
// §4.11's sentinel MIN for PitTop.
const pitTopSentinel = float32(-3.0e38)

// ComputeSFGraphPriorityFlood builds the single-flow graph and fills
// depressions in the same pass (C11), Barnes (2014)'s priority-flood
// combined with Braun & Willett stack construction. Unlike
// ComputeSFGraph it needs no prior FillSinks/FillSinksHybrid step: the
// open priority queue plus a pit FIFO discover the fill order, and
// Stack is built by appending pixels in pop order rather than by a
// second donor-walk pass.
//
// closed[] gates each neighbour individually: this follows spec.md
// §4.11's pseudocode rather than the original_source reference, whose
// compute_sfgraph_priority_flood tests closed[node] (the node being
// expanded) instead of closed[nnode] (the neighbour under
// consideration) - a bug that would let only the first unclosed
// neighbour of any node ever enter the open or pit queue. can_out
// pixels are marked closed at seed time alongside nodata pixels, not
// just stated in the pseudocode, so that a can_out pixel discovered
// later as someone else's neighbour cannot be pushed a second time
// and break the Stack-is-a-permutation invariant.
//
// Each popped node computes its own steepest receiver by slope
// comparison against its already-closed neighbours (the ones with a
// finalised virtual elevation), the same running-maximum convention
// ComputeSFGraph uses - not an assignment of "whoever discovered this
// pixel" at closing time, which would skip ties and near-ties a true
// steepest-descent comparison would catch.
func ComputeSFGraphPriorityFlood(topo []float32, bcs []uint8, dims grid.Dims, dx float64, d8 bool) *SFGraph {
	n := dims.N()
	k := 4
	if d8 {
		k = 8
	}
	dirs := dirSet(d8)

	g := &SFGraph{
		Sreceivers:       make([]int, n),
		DistToReceivers:  make([]float32, n),
		Sdonors:          make([]int, n*k),
		NSdonors:         make([]uint8, n),
		Stack:            make([]int, 0, n),
		NeighboursPerPix: k,
	}
	for i := range g.Sreceivers {
		g.Sreceivers[i] = i
	}

	filled := make([]float32, n)
	copy(filled, topo)

	closed := make([]bool, n)
	open := structures.NewIndexedHeap(n)
	pit := structures.NewFIFO(n)

	for p := 0; p < n; p++ {
		if IsNodata(bcs[p]) || CanOut(bcs[p]) {
			closed[p] = true
			open.Push(p, filled[p])
		}
	}

	pitTop := pitTopSentinel

	for !open.Empty() || !pit.Empty() {
		var node int

		switch {
		case !pit.Empty() && !open.Empty() && open.TopPriority() == filled[pit.Front()]:
			node, _ = open.Pop()
			pitTop = pitTopSentinel
		case !pit.Empty():
			node = pit.Dequeue()
			if pitTop == pitTopSentinel {
				pitTop = filled[node]
			}
		default:
			node, _ = open.Pop()
			pitTop = pitTopSentinel
		}

		if !IsNodata(bcs[node]) {
			g.Stack = append(g.Stack, node)
		}

		if CanGive(bcs[node]) {
			var sd float32
			for _, d := range dirs {
				nnode, ok := dims.NeighbourIndex(node, d)
				if !ok || !closed[nnode] || !CanReceive(bcs[nnode]) {
					continue
				}
				chamferDist := float32(grid.ChamferWeight(d) * dx)
				slope := (filled[node] - filled[nnode]) / chamferDist
				if slope > sd {
					sd = slope
					g.Sreceivers[node] = nnode
					g.DistToReceivers[node] = chamferDist
				}
			}
		}

		for _, d := range dirs {
			nnode, ok := dims.NeighbourIndex(node, d)
			if !ok || closed[nnode] {
				continue
			}
			closed[nnode] = true

			if filled[nnode] <= filled[node] {
				filled[nnode] = nextUpF32(filled[node])
				pit.Enqueue(nnode)
			} else {
				open.Push(nnode, filled[nnode])
			}
		}
	}

	buildDonors(g.Sreceivers, g.Sdonors, g.NSdonors, k)
	return g
}

// nextUpF32 returns the smallest float32 strictly greater than v, used
// to impose the minimal slope Barnes (2014) requires between a filled
// pit pixel and the rim that spilled into it.
func nextUpF32(v float32) float32 {
	return math.Nextafter32(v, float32(math.Inf(1)))
}
