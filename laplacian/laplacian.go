/*
NAME
  laplacian.go

DESCRIPTION
  laplacian.go implements the two fixed 3x3 neighbourhood-averaging
  stencils the Horn & Schunck solver uses to compute local means
  (u-bar, v-bar) of the flow field during each relaxation step.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package laplacian computes the neighbourhood-averaging operator
// used by the hornschunck package to approximate the Laplacian of a
// flow field during fixed-point relaxation. The averaging stencil is
// applied directly; applying the named Laplacian kernel and then
// subtracting the centre gives the wrong result at boundaries under a
// replicate boundary policy, so that route is not offered here.
package laplacian

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ausocean/opticflow/flowerr"
)

// Kind selects one of the two fixed averaging stencils.
type Kind uint8

const (
	// Classical is the stencil used in the original Horn & Schunck
	// paper, derived from the Laplacian kernel
	//   [-1 -2 -1]
	//   [-2 12 -2]
	//   [-1 -2 -1]
	// by removing the centre and scaling by -1/12:
	//   [1/12 1/6 1/12]
	//   [1/6   0  1/6 ]
	//   [1/12 1/6 1/12]
	Classical Kind = iota

	// OpenCV is the stencil derived from OpenCV's Laplacian kernel
	//   [0 -1 0]
	//   [-1 4 -1]
	//   [0 -1 0]
	// by removing the centre and scaling by -1/4:
	//   [0   1/4 0  ]
	//   [1/4  0  1/4]
	//   [0   1/4 0  ]
	OpenCV
)

// weights holds the nine stencil coefficients in row-major order for
// the offsets {-1, 0, +1} x {-1, 0, +1}.
var weights = map[Kind][3][3]float64{
	Classical: {
		{1.0 / 12, 1.0 / 6, 1.0 / 12},
		{1.0 / 6, 0, 1.0 / 6},
		{1.0 / 12, 1.0 / 6, 1.0 / 12},
	},
	OpenCV: {
		{0, 1.0 / 4, 0},
		{1.0 / 4, 0, 1.0 / 4},
		{0, 1.0 / 4, 0},
	},
}

// Average computes dst = the neighbourhood average of src under the
// named stencil, using a replicate boundary policy. dst and src must
// have identical shape and must not alias the same backing storage.
func Average(kind Kind, dst, src *mat.Dense) error {
	const op = "laplacian.Average"
	w, ok := weights[kind]
	if !ok {
		return flowerr.Argumentf(op, "unknown stencil kind %d", kind)
	}
	rows, cols := src.Dims()
	dr, dc := dst.Dims()
	if dr != rows || dc != cols {
		return flowerr.Shapef(op, "dst has shape (%d, %d), src has shape (%d, %d)", dr, dc, rows, cols)
	}

	for i := 0; i < rows; i++ {
		im, ip := clamp(i-1, rows), clamp(i+1, rows)
		for j := 0; j < cols; j++ {
			jm, jp := clamp(j-1, cols), clamp(j+1, cols)
			sum := w[0][0]*src.At(im, jm) + w[0][1]*src.At(im, j) + w[0][2]*src.At(im, jp) +
				w[1][0]*src.At(i, jm) + w[1][1]*src.At(i, j) + w[1][2]*src.At(i, jp) +
				w[2][0]*src.At(ip, jm) + w[2][1]*src.At(ip, j) + w[2][2]*src.At(ip, jp)
			dst.Set(i, j, sum)
		}
	}
	return nil
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
