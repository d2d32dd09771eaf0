// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package raster

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleGrid = `NCOLS 3
NROWS 2
XLLCORNER 100.0
YLLCORNER 200.0
CELLSIZE 10.0
NODATA_VALUE -9999
1 2 3
4 -9999 6
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.asc")
	require.NoError(t, os.WriteFile(path, []byte(sampleGrid), 0o644))
	return path
}

func TestReadASCIIGridParsesHeaderAndData(t *testing.T) {
	path := writeSample(t)
	g, err := ReadASCIIGrid(path)
	require.NoError(t, err)

	require.Equal(t, 2, g.Dims.Rows)
	require.Equal(t, 3, g.Dims.Cols)
	require.Equal(t, 10.0, g.CellSize)
	require.Equal(t, float32(1), g.Value(0, 0))
	require.Equal(t, float32(6), g.Value(1, 2))
	require.True(t, math.IsNaN(float64(g.Value(1, 1))))
}

func TestReadASCIIGridOutOfBoundsIsNaN(t *testing.T) {
	path := writeSample(t)
	g, err := ReadASCIIGrid(path)
	require.NoError(t, err)
	require.True(t, math.IsNaN(float64(g.Value(-1, 0))))
	require.True(t, math.IsNaN(float64(g.Value(0, 99))))
}

func TestWriteASCIIGridRoundTrips(t *testing.T) {
	path := writeSample(t)
	g, err := ReadASCIIGrid(path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "roundtrip.asc")
	require.NoError(t, WriteASCIIGrid(out, g))

	g2, err := ReadASCIIGrid(out)
	require.NoError(t, err)

	require.Equal(t, g.Dims, g2.Dims)
	for idx := range g.Data {
		if math.IsNaN(float64(g.Data[idx])) {
			require.True(t, math.IsNaN(float64(g2.Data[idx])))
			continue
		}
		require.InDelta(t, g.Data[idx], g2.Data[idx], 1e-4)
	}
}

func TestReadASCIIGridRejectsMismatchedRowLength(t *testing.T) {
	bad := `NCOLS 3
NROWS 1
XLLCORNER 0
YLLCORNER 0
CELLSIZE 1
NODATA_VALUE -9999
1 2
`
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.asc")
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := ReadASCIIGrid(path)
	require.Error(t, err)
}
