// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"math"

	"github.com/gospatial/hydrodem/grid"
)

// directionBit encodes a D8 neighbour index (0..7) as the single set
// bit of a byte, the teacher's D8FlowAccumulation convention for a
// compact "flow direction" raster.
func directionBit(n int) uint8 { return 1 << uint(n) }

// directionIndex recovers the D8 neighbour index from a direction
// byte with exactly one bit set; it returns -1 for a pixel that does
// not flow (a sink or boundary outlet).
func directionIndex(dirByte uint8) int {
	for n := 0; n < 8; n++ {
		if dirByte == directionBit(n) {
			return n
		}
	}
	return -1
}

// FlowRoutingD8Carve computes single-flow D8 directions over a filled
// DEM (C9), breaking ties on flat surfaces by routing across the GWDT
// distance field (dist, from GWDTAlloc) towards the nearest presill -
// the "carving" behaviour spec.md §9 requires so that flats drain
// rather than stall. direction[p] is 0 for a pixel with no receiver
// (a sink or outlet).
//
// A flat pixel that borders a sill at its own elevation (a presill)
// routes straight onto that sill; GWDT leaves dist at +Inf on non-flat
// pixels, so the sill is ranked ahead of every dist value here. Any
// other flat pixel picks the 8-neighbour minimising dist, with no
// restriction to flat neighbours. A non-flat pixel uses strict steepest descent, compared
// against a running maximum that is never reset mid-loop (see
// sfgraph.go's ComputeSFGraph for the identical convention and its
// rationale).
func FlowRoutingD8Carve(direction []uint8, dem, dist []float32, flats []int32, dims grid.Dims) []int {
	n := dims.N()
	for i := range direction {
		direction[i] = 0
	}

	for p := 0; p < n; p++ {
		isFlat := flats[p]&FlagFlat != 0
		bestDir := -1

		if isFlat {
			bestDist := float32(math.Inf(1))
			for d := 0; d < 8; d++ {
				q, ok := dims.NeighbourIndex(p, d)
				if !ok || math.IsNaN(float64(dem[q])) {
					continue
				}
				dq := dist[q]
				if flats[q]&FlagSill != 0 && dem[q] == dem[p] {
					dq = float32(math.Inf(-1))
				}
				if dq < bestDist {
					bestDist = dq
					bestDir = d
				}
			}
		} else {
			var sd float32
			for d := 0; d < 8; d++ {
				q, ok := dims.NeighbourIndex(p, d)
				if !ok || math.IsNaN(float64(dem[q])) {
					continue
				}
				slope := (dem[p] - dem[q]) / float32(grid.ChamferWeight(d))
				if slope > sd {
					sd = slope
					bestDir = d
				}
			}
		}

		if bestDir >= 0 {
			direction[p] = directionBit(bestDir)
		}
	}

	receivers := make([]int, n)
	donors := make([]int, n*8)
	ndonors := make([]uint8, n)
	for p := 0; p < n; p++ {
		if d := directionIndex(direction[p]); d >= 0 {
			q, _ := dims.NeighbourIndex(p, d)
			receivers[p] = q
		} else {
			receivers[p] = p
		}
	}
	buildDonors(receivers, donors, ndonors, 8)

	source := make([]int, n)
	buildStack(receivers, donors, ndonors, 8, source)
	return source
}

// FlowRoutingTargets resolves each pixel's single receiver from its
// direction byte, for callers that only have the compact raster and
// need the explicit target index (e.g. accumulation.go).
func FlowRoutingTargets(direction []uint8, dims grid.Dims) []int {
	n := dims.N()
	targets := make([]int, n)
	for p := 0; p < n; p++ {
		d := directionIndex(direction[p])
		if d < 0 {
			targets[p] = p
			continue
		}
		q, _ := dims.NeighbourIndex(p, d)
		targets[p] = q
	}
	return targets
}
