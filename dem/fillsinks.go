// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"math"

	"github.com/gospatial/hydrodem/grid"
	"github.com/gospatial/hydrodem/structures"
)

// seedMarker fills marker with the initial values reconstruction
// needs to produce a filled surface: dem's value on boundary (and
// nodata-adjacent) pixels, +Inf everywhere else. This is the marker
// image whose regional maxima reconstruction confines the result to.
func seedMarker(marker, dem []float32, dims grid.Dims) {
	n := dims.N()
	for idx := 0; idx < n; idx++ {
		if math.IsNaN(float64(dem[idx])) {
			marker[idx] = float32(math.NaN())
			continue
		}
		row, col := dims.RowCol(idx)
		isEdge := dims.OnBoundary(row, col)
		if !isEdge {
			for d := 0; d < 8 && !isEdge; d++ {
				nidx, ok := dims.NeighbourIndex(idx, d)
				if !ok || math.IsNaN(float64(dem[nidx])) {
					isEdge = true
				}
			}
		}
		if isEdge {
			marker[idx] = dem[idx]
		} else {
			marker[idx] = float32(math.Inf(1))
		}
	}
}

// FillSinksHybrid fills depressions in dem by grayscale morphological
// reconstruction (C4/C5), writing the result into output. fifo is
// caller-supplied scratch of size dims.N(), the deterministic-memory
// entry point spec.md §6 calls fillsinks_hybrid.
//
// Filling is reconstruction by erosion, run here as its dual: the
// dilation Reconstruct performs on the negated marker and mask. dem is
// negated in place for the duration of the call and restored (exactly)
// before returning.
func FillSinksHybrid(output, dem []float32, dims grid.Dims, fifo *structures.FIFO) {
	seedMarker(output, dem, dims)
	for i := range output {
		output[i], dem[i] = -output[i], -dem[i]
	}
	Reconstruct(output, dem, dims, fifo)
	for i := range output {
		output[i], dem[i] = -output[i], -dem[i]
	}
}

// FillSinks is the convenience entry point (spec.md §6's fillsinks):
// a naive, queue-free reconstruction by erosion, repeating
// forward/backward raster sweeps until the marker stops changing. It
// allocates the marker buffer itself and returns it as the filled
// surface.
func FillSinks(dem []float32, dims grid.Dims) []float32 {
	n := dims.N()
	marker := make([]float32, n)
	seedMarker(marker, dem, dims)

	for {
		changed := false

		for idx := 0; idx < n; idx++ {
			if math.IsNaN(float64(dem[idx])) {
				continue
			}
			best := marker[idx]
			for d := 0; d < 8; d++ {
				nidx, ok := dims.NeighbourIndex(idx, d)
				if !ok {
					continue
				}
				if marker[nidx] < best {
					best = marker[nidx]
				}
			}
			v := maxF32(dem[idx], best)
			if v != marker[idx] {
				marker[idx] = v
				changed = true
			}
		}

		for idx := n - 1; idx >= 0; idx-- {
			if math.IsNaN(float64(dem[idx])) {
				continue
			}
			best := marker[idx]
			for d := 0; d < 8; d++ {
				nidx, ok := dims.NeighbourIndex(idx, d)
				if !ok {
					continue
				}
				if marker[nidx] < best {
					best = marker[nidx]
				}
			}
			v := maxF32(dem[idx], best)
			if v != marker[idx] {
				marker[idx] = v
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return marker
}
