// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import "github.com/gospatial/hydrodem/grid"

// Flat bitfield values, per spec.md §3.
const (
	FlagFlat    int32 = 1
	FlagSill    int32 = 2
	FlagPresill int32 = 4
)

// IdentifyFlats labels flat, sill and presill pixels of filledDEM into
// flats (len == dims.N()), returning the number of flat pixels. Border
// pixels are never flats, mirroring the original identifyflats'
// border skip (original_source/src/identifyflats.c).
func IdentifyFlats(flats []int32, filledDEM []float32, dims grid.Dims) int {
	n := dims.N()
	for i := range flats {
		flats[i] = 0
	}

	count := 0
	// Pass 1: flats. An interior pixel is a flat iff its elevation
	// equals the minimum of its 8 neighbours.
	for idx := 0; idx < n; idx++ {
		row, col := dims.RowCol(idx)
		if dims.OnBoundary(row, col) {
			continue
		}
		z := filledDEM[idx]
		minZ := z
		for d := 0; d < 8; d++ {
			nidx, _ := dims.NeighbourIndex(idx, d)
			if filledDEM[nidx] < minZ {
				minZ = filledDEM[nidx]
			}
		}
		if z == minZ {
			flats[idx] = FlagFlat
			count++
		}
	}

	// Pass 2: sills. A non-flat pixel with a flat 8-neighbour at the
	// same elevation, having itself at least one strictly lower
	// neighbour, is the flat's drainage exit.
	for idx := 0; idx < n; idx++ {
		if flats[idx]&FlagFlat != 0 {
			continue
		}
		z := filledDEM[idx]
		hasLower, hasFlat := false, false
		for d := 0; d < 8; d++ {
			nidx, ok := dims.NeighbourIndex(idx, d)
			if !ok {
				continue
			}
			if filledDEM[nidx] < z {
				hasLower = true
			}
			if flats[nidx]&FlagFlat != 0 && filledDEM[nidx] == z {
				hasFlat = true
			}
		}
		if hasLower && hasFlat {
			flats[idx] |= FlagSill
		}
	}

	// Pass 3: presills. A flat pixel bordering a sill at the same
	// elevation is the GWDT's source.
	for idx := 0; idx < n; idx++ {
		if flats[idx]&FlagFlat == 0 {
			continue
		}
		z := filledDEM[idx]
		for d := 0; d < 8; d++ {
			nidx, ok := dims.NeighbourIndex(idx, d)
			if !ok {
				continue
			}
			if flats[nidx]&FlagSill != 0 && filledDEM[nidx] == z {
				flats[idx] |= FlagPresill
				break
			}
		}
	}

	return count
}
