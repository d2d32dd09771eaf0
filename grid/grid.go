// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

// Package grid holds the raster indexing and neighbourhood primitives
// shared by every other package in hydrodem: linear indexing, D4/D8
// offset tables, chamfer distances and the boundary predicates used to
// reject neighbours that would otherwise wrap around a row.
package grid

import "math"

// Sqrt2 is the chamfer weight of a diagonal step.
const Sqrt2 = math.Sqrt2

// Dims describes the shape shared by every raster passed to a single
// call. Rows is the fastest-changing dimension: linear index
// idx = row + Rows*col, so row = idx % Rows and col = idx / Rows.
type Dims struct {
	Rows int
	Cols int
}

// N returns the total number of cells.
func (d Dims) N() int { return d.Rows * d.Cols }

// Index converts (row, col) to the linear index.
func (d Dims) Index(row, col int) int { return row + d.Rows*col }

// RowCol converts a linear index back to (row, col).
func (d Dims) RowCol(idx int) (row, col int) { return idx % d.Rows, idx / d.Rows }

// InBounds reports whether (row, col) lies within the raster.
func (d Dims) InBounds(row, col int) bool {
	return row >= 0 && row < d.Rows && col >= 0 && col < d.Cols
}

// OnBoundary reports whether (row, col) lies on the outer ring of the
// raster. Flats and presills are only ever interior pixels (spec
// invariant: the flat pass skips the border); a sill may lie on it.
func (d Dims) OnBoundary(row, col int) bool {
	return row == 0 || row == d.Rows-1 || col == 0 || col == d.Cols-1
}

// Neighbourhood selects 4- or 8-connectivity.
type Neighbourhood int

const (
	D4 Neighbourhood = 4
	D8 Neighbourhood = 8
)

// D8 neighbour enumeration, the contract for the one-hot `direction`
// bitfield: 0=E, 1=SE, 2=S, 3=SW, 4=W, 5=NW, 6=N, 7=NE.
var d8RowOffset = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
var d8ColOffset = [8]int{1, 1, 0, -1, -1, -1, 0, 1}

// d4Indices lists which of the 8 enumerated directions belong to D4
// (the cardinal directions, in the same relative order: E, S, W, N).
var d4Indices = [4]int{0, 2, 4, 6}

// OffsetsD8 returns the row/col deltas for the 8 enumerated directions.
func OffsetsD8() (rowOff, colOff [8]int) { return d8RowOffset, d8ColOffset }

// OffsetsD4 returns the row/col deltas for the 4 cardinal directions,
// in enumeration order (E, S, W, N).
func OffsetsD4() (rowOff, colOff [4]int) {
	for i, d := range d4Indices {
		rowOff[i] = d8RowOffset[d]
		colOff[i] = d8ColOffset[d]
	}
	return rowOff, colOff
}

// NumNeighbours returns 4 or 8 depending on n.
func NumNeighbours(n Neighbourhood) int { return int(n) }

// IsDiagonal reports whether D8 direction index n (0..7) is a diagonal
// step.
func IsDiagonal(n int) bool { return n%2 == 1 }

// ChamferWeight returns the chamfer distance (1 or sqrt2) for D8
// direction index n.
func ChamferWeight(n int) float64 {
	if IsDiagonal(n) {
		return Sqrt2
	}
	return 1
}

// NeighbourRowCol returns the (row, col) of the n-th D8 neighbour of
// (row, col), without any bounds checking.
func NeighbourRowCol(row, col, n int) (int, int) {
	return row + d8RowOffset[n], col + d8ColOffset[n]
}

// NeighbourIndex returns the linear index of the n-th D8 neighbour of
// idx together with whether it lies within dims. This is the only
// safe way to walk neighbours: applying the linear delta
// row_off + Rows*col_off directly would fold around row boundaries,
// exactly the wrap-around hazard spec.md §4.1 calls out.
func (d Dims) NeighbourIndex(idx, n int) (neighbour int, ok bool) {
	row, col := d.RowCol(idx)
	nr, nc := NeighbourRowCol(row, col, n)
	if !d.InBounds(nr, nc) {
		return 0, false
	}
	return d.Index(nr, nc), true
}

// D4DirIndex maps a D4 loop counter i (0..3) to its D8 enumeration
// index, so D4-only callers can still emit a D8-contract direction
// byte.
func D4DirIndex(i int) int { return d4Indices[i] }
