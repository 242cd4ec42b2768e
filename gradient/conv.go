/*
NAME
  conv.go

DESCRIPTION
  conv.go implements the separable 1-D correlation primitive that the
  gradient estimator family composes along x, y and t.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gradient

import "gonum.org/v1/gonum/mat"

// Axis selects which dimension of a 2-D field a 1-D kernel is applied
// along.
type Axis uint8

const (
	// AxisX applies the kernel across columns (left-right neighbours).
	AxisX Axis = iota
	// AxisY applies the kernel across rows (up-down neighbours).
	AxisY
)

// applyAxis correlates src with the 3-tap kernel k along axis,
// writing the result into dst. dst and src must have identical
// dimensions and must not alias the same backing storage. Boundary
// handling is replicate (nearest-edge clamp): the tap that would fall
// outside the field reads the nearest edge row or column instead.
func applyAxis(dst, src *mat.Dense, k Kernel, axis Axis) {
	rows, cols := src.Dims()
	switch axis {
	case AxisX:
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				jm := clamp(j-1, cols)
				jp := clamp(j+1, cols)
				v := k[0]*src.At(i, jm) + k[1]*src.At(i, j) + k[2]*src.At(i, jp)
				dst.Set(i, j, v)
			}
		}
	case AxisY:
		for i := 0; i < rows; i++ {
			im := clamp(i-1, rows)
			ip := clamp(i+1, rows)
			for j := 0; j < cols; j++ {
				v := k[0]*src.At(im, j) + k[1]*src.At(i, j) + k[2]*src.At(ip, j)
				dst.Set(i, j, v)
			}
		}
	}
}

// combineTemporal computes dst = k[0]*f0 + k[1]*f1 + k[2]*f2
// pointwise. The temporal axis of an image triplet is always exactly
// 3 taps wide so no boundary clamping is required: index -1 maps to
// f0, 0 to f1, +1 to f2.
func combineTemporal(dst, f0, f1, f2 *mat.Dense, k Kernel) {
	rows, cols := f0.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := k[0]*f0.At(i, j) + k[1]*f1.At(i, j) + k[2]*f2.At(i, j)
			dst.Set(i, j, v)
		}
	}
}

// clamp maps an index that may be one step out of [0, n) back into
// range by replicating the nearest edge.
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
