/*
NAME
  solver.go

DESCRIPTION
  solver.go implements the Jacobi fixed-point relaxation step shared
  by the vanilla and smoothed Horn & Schunck solver variants, plus the
  Ec^2 smoothness-energy evaluation that only depends on the chosen
  averaging stencil, not the gradient source.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package hornschunck implements the Horn & Schunck iterative optical
// flow method: given a pair or triplet of frames and a regularisation
// weight alpha, it produces a dense motion field (u, v) minimising
//
//	E = Eb^2 + alpha^2 * Ec^2
//
// by Jacobi-style fixed-point relaxation, where
// Eb = Ex*u + Ey*v + Et is the brightness-constancy residual and
// Ec^2 = (ubar-u)^2 + (vbar-v)^2 approximates local flow roughness.
//
// Vanilla uses forward-difference gradients over two frames and the
// classical Horn & Schunck averaging stencil. Smoothed uses a Sobel
// gradient estimator over three frames and the OpenCV-style averaging
// stencil. Both are Jacobi solvers: every pixel of an iteration reads
// only the previous iteration's (u, v), never values committed within
// the same pass, so the two variants' only behavioural difference is
// the gradient source and the stencil passed to laplacian.Average.
package hornschunck

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ausocean/opticflow/flowerr"
	"github.com/ausocean/opticflow/laplacian"
)

// relax performs one Jacobi update of (u, v) given the current
// gradient fields and averaging stencil, writing the new estimate
// into uNew, vNew and using ubar, vbar as scratch for the local
// neighbourhood means. uOld/vOld must not alias uNew/vNew.
func relax(kind laplacian.Kind, alpha float64, ex, ey, et, uOld, vOld, uNew, vNew, ubar, vbar *mat.Dense) error {
	if err := laplacian.Average(kind, ubar, uOld); err != nil {
		return err
	}
	if err := laplacian.Average(kind, vbar, vOld); err != nil {
		return err
	}

	alpha2 := alpha * alpha
	rows, cols := uOld.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			exij := ex.At(i, j)
			eyij := ey.At(i, j)
			etij := et.At(i, j)
			ub := ubar.At(i, j)
			vb := vbar.At(i, j)

			numer := exij*ub + eyij*vb + etij
			denom := alpha2 + exij*exij + eyij*eyij + etij*etij

			uNew.Set(i, j, ub-exij*(numer/denom))
			vNew.Set(i, j, vb-eyij*(numer/denom))
		}
	}
	return nil
}

// evalEc2 returns (ubar-u)^2 + (vbar-v)^2 pointwise, using the given
// averaging stencil.
func evalEc2(kind laplacian.Kind, u, v *mat.Dense) (*mat.Dense, error) {
	const op = "hornschunck.EvalEc2"
	rows, cols := u.Dims()
	vr, vc := v.Dims()
	if vr != rows || vc != cols {
		return nil, flowerr.Shapef(op, "v has shape (%d, %d), u has shape (%d, %d)", vr, vc, rows, cols)
	}

	ubar := mat.NewDense(rows, cols, nil)
	vbar := mat.NewDense(rows, cols, nil)
	if err := laplacian.Average(kind, ubar, u); err != nil {
		return nil, err
	}
	if err := laplacian.Average(kind, vbar, v); err != nil {
		return nil, err
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			du := ubar.At(i, j) - u.At(i, j)
			dv := vbar.At(i, j) - v.At(i, j)
			out.Set(i, j, du*du+dv*dv)
		}
	}
	return out, nil
}

// evalEb returns Ex*u + Ey*v + Et pointwise.
func evalEb(ex, ey, et, u, v *mat.Dense) (*mat.Dense, error) {
	const op = "hornschunck.EvalEb"
	rows, cols := ex.Dims()
	for _, m := range [...]*mat.Dense{ey, et, u, v} {
		r, c := m.Dims()
		if r != rows || c != cols {
			return nil, flowerr.Shapef(op, "mismatched field shapes")
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			val := ex.At(i, j)*u.At(i, j) + ey.At(i, j)*v.At(i, j) + et.At(i, j)
			out.Set(i, j, val)
		}
	}
	return out, nil
}

func checkShape(op, name string, m *mat.Dense, rows, cols int) error {
	r, c := m.Dims()
	if r != rows || c != cols {
		return flowerr.Shapef(op, "%s has shape (%d, %d), solver configured for (%d, %d)", name, r, c, rows, cols)
	}
	return nil
}

func checkAlpha(op string, alpha float64) error {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return flowerr.Argumentf(op, "alpha must be finite, got %v", alpha)
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
