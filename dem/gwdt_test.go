// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gospatial/hydrodem/grid"
	"github.com/gospatial/hydrodem/structures"
)

func TestGWDTComputeCostsZeroOutsideFlats(t *testing.T) {
	dims := grid.Dims{Rows: 4, Cols: 4}
	filled := make([]float32, dims.N())
	original := make([]float32, dims.N())
	flats := make([]int32, dims.N()) // nothing flagged as flat

	costs := make([]float32, dims.N())
	conncomps := make([]int, dims.N())
	GWDTComputeCosts(costs, conncomps, flats, original, filled, dims)

	for idx := range costs {
		require.Zero(t, costs[idx])
		require.Zero(t, conncomps[idx])
	}
}

func TestGWDTComputeCostsRewardsShallowerFill(t *testing.T) {
	dims := grid.Dims{Rows: 3, Cols: 3}
	flats := make([]int32, dims.N())
	for i := range flats {
		flats[i] = FlagFlat
	}

	filled := make([]float32, dims.N())
	for i := range filled {
		filled[i] = 10
	}

	original := make([]float32, dims.N())
	for i := range original {
		original[i] = 10
	}
	// The component maximum of (original - filled) is 0, held by the
	// unfilled pixels; cost grows with the shortfall from it, so the
	// shallow-fill corner (shortfall 1) costs less than the deep-fill
	// centre (shortfall 9).
	centre := dims.Index(1, 1)
	corner := dims.Index(0, 0)
	original[centre] = 1 // filled by 9
	original[corner] = 9 // filled by 1

	costs := make([]float32, dims.N())
	conncomps := make([]int, dims.N())
	GWDTComputeCosts(costs, conncomps, flats, original, filled, dims)

	require.Greater(t, costs[centre], costs[corner])
	// The shared label is an arg-max pixel: one of the unfilled ones.
	label := conncomps[centre]
	require.Equal(t, float32(0), original[label]-filled[label])
	for idx := range conncomps {
		require.Equal(t, label, conncomps[idx])
	}
}

func TestGWDTZeroAtPresill(t *testing.T) {
	dims := grid.Dims{Rows: 1, Cols: 3}
	flats := []int32{0, FlagFlat | FlagPresill, 0}
	costs := []float32{0, 1, 0}

	dist, _ := GWDTAlloc(costs, flats, dims, false)
	require.Equal(t, float32(0), dist[1])
}

func TestGWDTPropagatesAcrossFlatOnly(t *testing.T) {
	dims := grid.Dims{Rows: 1, Cols: 3}
	flats := []int32{0, FlagFlat | FlagPresill, FlagFlat}
	costs := []float32{0, 1, 4}

	heap := structures.NewIndexedHeap(dims.N())
	back := make([]uint8, dims.N())
	dist := make([]float32, dims.N())
	GWDT(dist, nil, costs, flats, dims, heap, back)

	require.Equal(t, float32(0), dist[1])
	require.InDelta(t, float32(2.5), dist[2], 1e-5) // chamfer(1)*(1+4)/2
	require.True(t, dist[0] > 1e30)                 // never reached: not a flat pixel
}
