// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gospatial/hydrodem/grid"
)

// a simple monotone ramp draining to the west edge: every interior
// pixel should receive into its steepest (here, its west)
// neighbour, and the Stack should be a permutation of all pixels with
// every donor appearing after its receiver.
func rampGraph(t *testing.T, d8 bool) (*SFGraph, grid.Dims) {
	dims := grid.Dims{Rows: 3, Cols: 3}
	// Elevation climbs steeply to the east (column 0 is the low,
	// outlet edge) with a tiny north-south tilt added so no pixel
	// ever faces an exact steepest-descent tie.
	topo := make([]float32, dims.N())
	bcs := make([]uint8, dims.N())
	for idx := range bcs {
		row, col := dims.RowCol(idx)
		topo[idx] = float32(col)*10 + float32(row)*0.01
		if col == 0 {
			bcs[idx] = BCCanOut
		} else {
			bcs[idx] = BCFlow
		}
	}

	g := ComputeSFGraph(topo, bcs, dims, 1.0, d8)
	return g, dims
}

func TestComputeSFGraphRoutesDownslope(t *testing.T) {
	g, dims := rampGraph(t, true)

	for idx, r := range g.Sreceivers {
		if idx == r {
			continue
		}
		require.Less(t, g.DistToReceivers[idx], float32(3)) // sane chamfer distance
		_ = dims
	}

	// Every non-outlet pixel must drain towards column 0.
	for idx, r := range g.Sreceivers {
		_, col := dims.RowCol(idx)
		if col == 0 {
			continue
		}
		rRow, rCol := dims.RowCol(r)
		_ = rRow
		require.Less(t, rCol, col)
	}
}

func TestComputeSFGraphStackIsPermutation(t *testing.T) {
	g, dims := rampGraph(t, true)

	seen := make([]bool, dims.N())
	require.Len(t, g.Stack, dims.N())
	for _, p := range g.Stack {
		require.False(t, seen[p], "pixel %d appears twice in Stack", p)
		seen[p] = true
	}
	for idx, ok := range seen {
		require.True(t, ok, "pixel %d missing from Stack", idx)
	}
}

func TestComputeSFGraphStackOrdersReceiverBeforeDonor(t *testing.T) {
	g, _ := rampGraph(t, true)

	position := make(map[int]int, len(g.Stack))
	for i, p := range g.Stack {
		position[p] = i
	}

	for p, r := range g.Sreceivers {
		if p == r {
			continue
		}
		require.Less(t, position[r], position[p], "receiver %d must precede donor %d", r, p)
	}
}

func TestComputeSFGraphFlatSurfaceHasNoReceivers(t *testing.T) {
	dims := grid.Dims{Rows: 3, Cols: 3}
	topo := make([]float32, dims.N())
	bcs := make([]uint8, dims.N())
	for idx := range bcs {
		bcs[idx] = BCFlow
	}
	bcs[dims.Index(1, 1)] = BCFlow // interior: can give and receive

	g := ComputeSFGraph(topo, bcs, dims, 1.0, true)
	// A flat surface has zero slope everywhere, so no neighbour is
	// strictly steeper and every pixel is its own receiver.
	for idx, r := range g.Sreceivers {
		require.Equal(t, idx, r)
	}
}
