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

func TestReconstructClampsToMask(t *testing.T) {
	dims := grid.Dims{Rows: 3, Cols: 3}
	mask := []float32{
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	}
	marker := []float32{
		1, 1, 1,
		1, 100, 1,
		1, 1, 1,
	}
	fifo := structures.NewFIFO(dims.N())
	Reconstruct(marker, mask, dims, fifo)

	for idx := range marker {
		require.Equal(t, float32(1), marker[idx])
	}
}

func TestReconstructPropagatesThroughSaddle(t *testing.T) {
	// A marker that is high everywhere but the true ceiling (mask) dips
	// down along one column; reconstruction should pull the marker
	// down to the mask along that column and leave the rest alone,
	// since regional maxima of marker under mask are bounded by mask.
	dims := grid.Dims{Rows: 1, Cols: 5}
	mask := []float32{5, 5, 1, 5, 5}
	marker := []float32{5, 5, 5, 5, 5}

	fifo := structures.NewFIFO(dims.N())
	Reconstruct(marker, mask, dims, fifo)

	require.Equal(t, float32(5), marker[0])
	require.Equal(t, float32(5), marker[1])
	require.Equal(t, float32(1), marker[2])
	require.Equal(t, float32(5), marker[3])
	require.Equal(t, float32(5), marker[4])
}
