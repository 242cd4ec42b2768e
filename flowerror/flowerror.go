/*
NAME
  flowerror.go

DESCRIPTION
  flowerror.go implements the generalised optical flow error used to
  judge a candidate (u, v) field: the residual between the second
  frame resampled along the estimated motion and the first frame.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package flowerror computes the generalised optical flow error
// e(x,y) = i2(x-u, y-v) - i1(x, y), resampling i2 with bilinear
// interpolation and a replicate boundary policy.
package flowerror

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ausocean/opticflow/flowerr"
)

// Compute writes dst[y,x] = i2(x-u[y,x], y-v[y,x]) - i1[y,x] for
// every pixel. i1, i2, u, v and dst must all share the same shape;
// dst must not alias any input.
func Compute(dst, i1, i2, u, v *mat.Dense) error {
	const op = "flowerror.Compute"
	rows, cols := i1.Dims()
	checks := []struct {
		name string
		m    *mat.Dense
	}{{"i2", i2}, {"u", u}, {"v", v}, {"dst", dst}}
	for _, c := range checks {
		r, cc := c.m.Dims()
		if r != rows || cc != cols {
			return flowerr.Shapef(op, "%s has shape (%d, %d), i1 has shape (%d, %d)", c.name, r, cc, rows, cols)
		}
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sx := float64(x) - u.At(y, x)
			sy := float64(y) - v.At(y, x)
			dst.Set(y, x, bilinear(i2, sx, sy)-i1.At(y, x))
		}
	}
	return nil
}

// bilinear samples field at the continuous coordinate (x, y),
// clamping out-of-bounds coordinates to the field's boundary
// (replicate policy) before interpolating.
func bilinear(field *mat.Dense, x, y float64) float64 {
	rows, cols := field.Dims()

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	fx := x - float64(x0)
	fy := y - float64(y0)

	x0c, x1c := clamp(x0, cols), clamp(x1, cols)
	y0c, y1c := clamp(y0, rows), clamp(y1, rows)

	v00 := field.At(y0c, x0c)
	v10 := field.At(y0c, x1c)
	v01 := field.At(y1c, x0c)
	v11 := field.At(y1c, x1c)

	top := v00 + fx*(v10-v00)
	bottom := v01 + fx*(v11-v01)
	return top + fy*(bottom-top)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
