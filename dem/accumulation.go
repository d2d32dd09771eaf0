// Copyright 2024 the hydrodem Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package dem

// FlowAccumulation sums contributing area downstream over a
// topologically ordered single-flow graph (C12): processing Stack in
// reverse guarantees every donor is accumulated before its receiver,
// the same guarantee the teacher's D8FlowAccumulation gets from its
// BFS propagation order but without needing a live in-degree counter.
//
// weights is optional (nil means every pixel contributes 1); cellArea
// scales the per-pixel unit contribution, e.g. to report accumulation
// in physical area rather than cell counts.
func FlowAccumulation(receivers []int, stack []int, weights []float32, cellArea float64) []float32 {
	n := len(receivers)
	acc := make([]float32, n)

	for p := 0; p < n; p++ {
		if weights != nil {
			acc[p] = weights[p] * float32(cellArea)
		} else {
			acc[p] = float32(cellArea)
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		p := stack[i]
		r := receivers[p]
		if r != p {
			acc[r] += acc[p]
		}
	}

	return acc
}
