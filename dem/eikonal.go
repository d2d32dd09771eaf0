// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

import (
	"math"

	"github.com/gospatial/hydrodem/grid"
)

// FastSweep2D computes the "excess topography" surface: the highest
// surface that nowhere exceeds a threshold gradient slope and nowhere
// rises above dem, by solving the eikonal equation |grad u| = slope
// with Zhao (2004)'s fast sweeping method. It is not part of the core
// hydrology pipeline (C1-C12); it is a companion diffusion-limited
// relief model in the same family as depression filling.
//
// slope is the threshold gradient (rise over run, same units as
// 1/dx). u starts at dem on the domain boundary and at +Inf
// elsewhere; nodata pixels stay NaN and are skipped, and pixels beside
// nodata are not seeded. Each round runs the four alternating raster
// sweep directions; rounds repeat until the largest change within a
// round falls below tol or maxIter rounds have run.
func FastSweep2D(dem []float32, dims grid.Dims, dx, slope float64, maxIter int, tol float32) []float32 {
	n := dims.N()
	u := make([]float32, n)
	f := float32(slope)

	for idx := 0; idx < n; idx++ {
		if math.IsNaN(float64(dem[idx])) {
			u[idx] = float32(math.NaN())
			continue
		}
		row, col := dims.RowCol(idx)
		if dims.OnBoundary(row, col) {
			u[idx] = dem[idx]
		} else {
			u[idx] = float32(math.Inf(1))
		}
	}

	h := float32(dx)

	for iter := 0; iter < maxIter; iter++ {
		maxDelta := float32(0)

		for _, sweep := range fastSweepOrders {
			for _, row := range sweep.rows(dims.Rows) {
				for _, col := range sweep.cols(dims.Cols) {
					idx := dims.Index(row, col)
					if math.IsNaN(float64(dem[idx])) {
						continue
					}

					uH := u[idx]
					if row > 0 {
						if v := u[dims.Index(row-1, col)]; v < uH {
							uH = v
						}
					}
					if row < dims.Rows-1 {
						if v := u[dims.Index(row+1, col)]; v < uH {
							uH = v
						}
					}

					uV := u[idx]
					if col > 0 {
						if v := u[dims.Index(row, col-1)]; v < uV {
							uV = v
						}
					}
					if col < dims.Cols-1 {
						if v := u[dims.Index(row, col+1)]; v < uV {
							uV = v
						}
					}

					updated := godunovUpdate(uH, uV, f, h)
					if updated > dem[idx] {
						updated = dem[idx]
					}
					if updated < u[idx] {
						delta := u[idx] - updated
						if delta > maxDelta {
							maxDelta = delta
						}
						u[idx] = updated
					}
				}
			}
		}

		if maxDelta < tol {
			break
		}
	}

	return u
}

// godunovUpdate solves the local two-neighbour Godunov discretisation
// of |grad u| = f for a single pixel given its smaller horizontal and
// vertical neighbour values uH, uV.
func godunovUpdate(uH, uV, f, h float32) float32 {
	if math.IsInf(float64(uH), 1) {
		return uV + f*h
	}
	if math.IsInf(float64(uV), 1) {
		return uH + f*h
	}

	diff := uH - uV
	if diff < 0 {
		diff = -diff
	}
	if diff >= f*h {
		if uH < uV {
			return uH + f*h
		}
		return uV + f*h
	}

	// Quadratic (both neighbours contribute): 2u^2 - 2(uH+uV)u +
	// uH^2+uV^2-f^2h^2 = 0.
	sum := uH + uV
	disc := 2*f*f*h*h - (uH-uV)*(uH-uV)
	if disc < 0 {
		disc = 0
	}
	return (sum + float32(math.Sqrt(float64(disc)))) / 2
}

type sweepOrder struct {
	rowsAscending bool
	colsAscending bool
}

func (s sweepOrder) rows(n int) []int { return orderedRange(n, s.rowsAscending) }
func (s sweepOrder) cols(n int) []int { return orderedRange(n, s.colsAscending) }

func orderedRange(n int, ascending bool) []int {
	r := make([]int, n)
	if ascending {
		for i := 0; i < n; i++ {
			r[i] = i
		}
	} else {
		for i := 0; i < n; i++ {
			r[i] = n - 1 - i
		}
	}
	return r
}

// fastSweepOrders are the four alternating sweep directions Zhao
// (2004) requires for the scheme to converge in a bounded number of
// passes regardless of where the characteristic information enters
// the domain.
var fastSweepOrders = []sweepOrder{
	{rowsAscending: true, colsAscending: true},
	{rowsAscending: true, colsAscending: false},
	{rowsAscending: false, colsAscending: false},
	{rowsAscending: false, colsAscending: true},
}
