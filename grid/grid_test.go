// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package grid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexRoundTrip(t *testing.T) {
	d := Dims{Rows: 4, Cols: 5}
	for row := 0; row < d.Rows; row++ {
		for col := 0; col < d.Cols; col++ {
			idx := d.Index(row, col)
			gotRow, gotCol := d.RowCol(idx)
			require.Equal(t, row, gotRow)
			require.Equal(t, col, gotCol)
		}
	}
}

func TestNeighbourIndexRejectsWrap(t *testing.T) {
	d := Dims{Rows: 3, Cols: 3}
	// (2,0) east neighbour (0) is (2,1): fine.
	idx := d.Index(2, 0)
	n, ok := d.NeighbourIndex(idx, 0)
	require.True(t, ok)
	require.Equal(t, d.Index(2, 1), n)

	// (2,0) south neighbour (2) would be row 3: out of bounds, must
	// not silently fold to row 0 of the next column.
	_, ok = d.NeighbourIndex(idx, 2)
	require.False(t, ok)
}

func TestChamferWeights(t *testing.T) {
	for n := 0; n < 8; n++ {
		w := ChamferWeight(n)
		if IsDiagonal(n) {
			require.InDelta(t, Sqrt2, w, 1e-12)
		} else {
			require.Equal(t, 1.0, w)
		}
	}
}

func TestOffsetsD8Enumeration(t *testing.T) {
	rowOff, colOff := OffsetsD8()
	// 0 = east
	require.Equal(t, 0, rowOff[0])
	require.Equal(t, 1, colOff[0])
	// 2 = south
	require.Equal(t, 1, rowOff[2])
	require.Equal(t, 0, colOff[2])
	// 4 = west
	require.Equal(t, 0, rowOff[4])
	require.Equal(t, -1, colOff[4])
	// 6 = north
	require.Equal(t, -1, rowOff[6])
	require.Equal(t, 0, colOff[6])
}

func TestOnBoundary(t *testing.T) {
	d := Dims{Rows: 5, Cols: 5}
	require.True(t, d.OnBoundary(0, 2))
	require.True(t, d.OnBoundary(4, 2))
	require.True(t, d.OnBoundary(2, 0))
	require.True(t, d.OnBoundary(2, 4))
	require.False(t, d.OnBoundary(2, 2))
}
