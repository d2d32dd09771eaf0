// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package dem implements the hydrology pipeline: morphological
// reconstruction, sink filling, flat/sill/presill classification, the
// gray-weighted distance transform, D8 flow routing with carving,
// single-flow graph construction (including the priority-flood
// variant) and flow accumulation. Every entry point is synchronous,
// performs no I/O, and operates on caller-supplied float32/int/uint8
// slices shaped by a grid.Dims - the package keeps no process-wide
// state (spec.md §5).
package dem

import (
	"math"

	"github.com/gospatial/hydrodem/grid"
	"github.com/gospatial/hydrodem/structures"
)

// Reconstruct computes the grayscale morphological reconstruction of
// marker under mask: the largest image R <= mask that is pointwise <=
// mask and whose regional maxima are confined to maxima of marker.
// marker is overwritten in place with R. fifo is caller-supplied
// scratch sized to dims.N() (the deterministic-memory contract).
//
// This is Vincent's 1993 hybrid algorithm: a forward raster scan, a
// backward raster scan that seeds a propagation queue, then FIFO
// propagation until no pixel can still rise. Because dims.Index makes
// ascending linear index exactly a forward raster scan (and
// descending exactly its reverse - see grid.Dims), "already scanned"
// reduces to a plain index comparison rather than a separate walked
// order.
func Reconstruct(marker, mask []float32, dims grid.Dims, fifo *structures.FIFO) {
	n := dims.N()
	fifo.Reset()

	// Forward scan.
	for idx := 0; idx < n; idx++ {
		if math.IsNaN(float64(mask[idx])) {
			marker[idx] = float32(math.NaN())
			continue
		}
		best := marker[idx]
		for d := 0; d < 8; d++ {
			nidx, ok := dims.NeighbourIndex(idx, d)
			if !ok || nidx >= idx {
				continue
			}
			if marker[nidx] > best {
				best = marker[nidx]
			}
		}
		marker[idx] = minF32(mask[idx], best)
	}

	// Backward scan, seeding the propagation queue.
	for idx := n - 1; idx >= 0; idx-- {
		if math.IsNaN(float64(mask[idx])) {
			continue
		}
		best := marker[idx]
		for d := 0; d < 8; d++ {
			nidx, ok := dims.NeighbourIndex(idx, d)
			if !ok || nidx <= idx {
				continue
			}
			if marker[nidx] > best {
				best = marker[nidx]
			}
		}
		marker[idx] = minF32(mask[idx], best)

		for d := 0; d < 8; d++ {
			nidx, ok := dims.NeighbourIndex(idx, d)
			if !ok || nidx >= idx {
				continue
			}
			if marker[nidx] < marker[idx] && marker[nidx] < mask[nidx] {
				fifo.Enqueue(idx)
				break
			}
		}
	}

	// FIFO propagation.
	for !fifo.Empty() {
		p := fifo.Dequeue()
		for d := 0; d < 8; d++ {
			q, ok := dims.NeighbourIndex(p, d)
			if !ok {
				continue
			}
			if marker[q] < marker[p] && mask[q] != marker[q] {
				marker[q] = minF32(marker[p], mask[q])
				fifo.Enqueue(q)
			}
		}
	}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
