// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import "github.com/gospatial/hydrodem/grid"

// SFGraph is the single-flow graph: receivers, donors and a
// topologically ordered stack (Braun & Willett 2013). It is the
// interface the graphflood shallow-water iteration (out of scope
// here) consumes, and what C12 accumulates over.
type SFGraph struct {
	Sreceivers       []int
	DistToReceivers  []float32
	Sdonors          []int
	NSdonors         []uint8
	Stack            []int
	NeighboursPerPix int // 4 or 8, the donor-array stride
}

// dirSet returns, for the requested connectivity, the D8 enumeration
// indices to walk (all 8 for D8, the 4 cardinal ones for D4).
func dirSet(d8 bool) []int {
	if d8 {
		return []int{0, 1, 2, 3, 4, 5, 6, 7}
	}
	return []int{grid.D4DirIndex(0), grid.D4DirIndex(1), grid.D4DirIndex(2), grid.D4DirIndex(3)}
}

// ComputeSFGraph builds the single-flow graph directly on topo (no
// depression filling: the caller is expected to have already filled
// sinks, e.g. via FillSinks/FillSinksHybrid, unless the
// priority-flood variant is wanted instead).
//
// Steepest-descent selection uses a strict '>' comparison against a
// running maximum slope that is never reset inside the neighbour
// loop - spec.md §9 flags the reference implementation's apparent
// reset/self-check as a bug; this is the corrected behaviour.
func ComputeSFGraph(topo []float32, bcs []uint8, dims grid.Dims, dx float64, d8 bool) *SFGraph {
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
		Stack:            make([]int, n),
		NeighboursPerPix: k,
	}

	for p := 0; p < n; p++ {
		g.Sreceivers[p] = p
		if !CanGive(bcs[p]) {
			continue
		}

		thisReceiver := p
		var sd float32
		var bestDist float32

		for _, d := range dirs {
			q, ok := dims.NeighbourIndex(p, d)
			if !ok || !CanReceive(bcs[q]) {
				continue
			}
			chamferDist := float32(grid.ChamferWeight(d) * dx)
			slope := (topo[p] - topo[q]) / chamferDist
			if slope > sd {
				sd = slope
				thisReceiver = q
				bestDist = chamferDist
			}
		}

		g.Sreceivers[p] = thisReceiver
		if thisReceiver != p {
			g.DistToReceivers[p] = bestDist
		}
	}

	buildDonors(g.Sreceivers, g.Sdonors, g.NSdonors, k)
	buildStack(g.Sreceivers, g.Sdonors, g.NSdonors, k, g.Stack)

	return g
}

// buildDonors inverts the receiver relation into fixed-width,
// per-pixel donor lists (spec.md §9's flat array tradeoff: simple and
// pointer-free at the cost of K slots per pixel regardless of how
// many donors actually exist).
func buildDonors(receivers, donors []int, ndonors []uint8, k int) {
	for p, r := range receivers {
		if p == r {
			continue
		}
		donors[r*k+int(ndonors[r])] = p
		ndonors[r]++
	}
}

// buildStack produces the Braun & Willett topological order with an
// explicit work stack (spec.md §9 mandates this over recursion, which
// would blow the call stack on large rasters). Every root (a pixel
// that is its own receiver) seeds a pre-order donor walk: each pixel
// is emitted before any of its donors.
func buildStack(receivers, donors []int, ndonors []uint8, k int, stack []int) {
	work := make([]int, 0, 256)
	i := 0
	for p, r := range receivers {
		if p != r {
			continue
		}
		work = append(work, p)
		for len(work) > 0 {
			node := work[len(work)-1]
			work = work[:len(work)-1]
			stack[i] = node
			i++
			for d := 0; d < int(ndonors[node]); d++ {
				work = append(work, donors[node*k+d])
			}
		}
	}
}
