// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gospatial/hydrodem/grid"
	"github.com/gospatial/hydrodem/structures"
)

// a single interior pit, edges draining, must be raised to its lowest
// rim elevation by both the hybrid and naive fillers.
func pitDEM() (grid.Dims, []float32) {
	dims := grid.Dims{Rows: 3, Cols: 3}
	dem := []float32{
		10, 10, 10,
		10, 1, 10,
		10, 10, 10,
	}
	return dims, dem
}

func TestFillSinksHybridRaisesPit(t *testing.T) {
	dims, input := pitDEM()
	output := make([]float32, dims.N())
	copy(output, input)
	fifo := structures.NewFIFO(dims.N())

	FillSinksHybrid(output, input, dims, fifo)

	require.Equal(t, float32(10), output[dims.Index(1, 1)])
	for idx := 0; idx < dims.N(); idx++ {
		require.GreaterOrEqual(t, output[idx], input[idx])
	}
}

func TestFillSinksMatchesHybrid(t *testing.T) {
	dims, input := pitDEM()
	hybrid := make([]float32, dims.N())
	copy(hybrid, input)
	fifo := structures.NewFIFO(dims.N())
	FillSinksHybrid(hybrid, input, dims, fifo)

	naive := FillSinks(input, dims)

	for idx := 0; idx < dims.N(); idx++ {
		require.InDelta(t, hybrid[idx], naive[idx], 1e-5)
	}
}

func TestFillSinksPreservesNodata(t *testing.T) {
	dims := grid.Dims{Rows: 3, Cols: 3}
	input := []float32{
		10, 10, 10,
		10, 1, 10,
		10, 10, float32(math.NaN()),
	}
	output := make([]float32, dims.N())
	copy(output, input)
	fifo := structures.NewFIFO(dims.N())
	FillSinksHybrid(output, input, dims, fifo)

	require.True(t, math.IsNaN(float64(output[dims.Index(2, 2)])))
}

func TestFillSinksLeavesMonotonicSurfaceUnchanged(t *testing.T) {
	dims := grid.Dims{Rows: 3, Cols: 3}
	input := []float32{
		9, 8, 7,
		6, 5, 4,
		3, 2, 1,
	}
	output := make([]float32, dims.N())
	copy(output, input)
	fifo := structures.NewFIFO(dims.N())
	FillSinksHybrid(output, input, dims, fifo)

	for idx := 0; idx < dims.N(); idx++ {
		require.Equal(t, input[idx], output[idx])
	}
}
