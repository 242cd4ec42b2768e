/*
NAME
  vanilla.go

DESCRIPTION
  vanilla.go implements the classical two-frame Horn & Schunck solver:
  forward-difference gradients over a 2x2x2 neighbourhood and the
  original paper's averaging stencil.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package hornschunck

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ausocean/opticflow/flowerr"
	"github.com/ausocean/opticflow/laplacian"
)

// Vanilla computes optical flow between two frames using the forward
// difference gradient estimator from the original 1981 Horn & Schunck
// paper and the classical averaging stencil.
type Vanilla struct {
	rows, cols int

	ex, ey, et   *mat.Dense
	ubar, vbar   *mat.Dense
	uNext, vNext *mat.Dense
}

// NewVanilla returns a Vanilla solver configured for the given shape.
func NewVanilla(rows, cols int) (*Vanilla, error) {
	if rows <= 0 || cols <= 0 {
		return nil, flowerr.Shapef("hornschunck.NewVanilla", "shape (%d, %d) must be positive", rows, cols)
	}
	s := &Vanilla{}
	s.SetShape(rows, cols)
	return s, nil
}

// Shape returns the configured (rows, cols).
func (s *Vanilla) Shape() (rows, cols int) { return s.rows, s.cols }

// SetShape reconfigures s for a new (rows, cols), reallocating scratch.
func (s *Vanilla) SetShape(rows, cols int) {
	s.rows, s.cols = rows, cols
	s.ex = mat.NewDense(rows, cols, nil)
	s.ey = mat.NewDense(rows, cols, nil)
	s.et = mat.NewDense(rows, cols, nil)
	s.ubar = mat.NewDense(rows, cols, nil)
	s.vbar = mat.NewDense(rows, cols, nil)
	s.uNext = mat.NewDense(rows, cols, nil)
	s.vNext = mat.NewDense(rows, cols, nil)
}

// Run computes optical flow between i1 and i2, allocating a
// zero-initialised (u, v) to warm-start iteration.
func (s *Vanilla) Run(alpha float64, iterations int, i1, i2 *mat.Dense) (u, v *mat.Dense, err error) {
	u = mat.NewDense(s.rows, s.cols, nil)
	v = mat.NewDense(s.rows, s.cols, nil)
	if err := s.RunInto(alpha, iterations, i1, i2, u, v); err != nil {
		return nil, nil, err
	}
	return u, v, nil
}

// RunInto computes optical flow between i1 and i2, using the values
// already in u, v as the warm start and overwriting them with the
// result. A non-positive iterations is a no-op: u, v are left
// unchanged.
func (s *Vanilla) RunInto(alpha float64, iterations int, i1, i2, u, v *mat.Dense) error {
	const op = "hornschunck.Vanilla.RunInto"
	if err := checkAlpha(op, alpha); err != nil {
		return err
	}
	for _, c := range []struct {
		name string
		m    *mat.Dense
	}{{"i1", i1}, {"i2", i2}, {"u", u}, {"v", v}} {
		if err := checkShape(op, c.name, c.m, s.rows, s.cols); err != nil {
			return err
		}
	}
	if iterations <= 0 {
		return nil
	}

	forwardGradients(i1, i2, s.ex, s.ey, s.et)

	uOld, vOld := u, v
	uNew, vNew := s.uNext, s.vNext
	for k := 0; k < iterations; k++ {
		if err := relax(laplacian.Classical, alpha, s.ex, s.ey, s.et, uOld, vOld, uNew, vNew, s.ubar, s.vbar); err != nil {
			return err
		}
		uOld, uNew = uNew, uOld
		vOld, vNew = vNew, vOld
	}

	if !samePointer(uOld, u) {
		u.Copy(uOld)
		v.Copy(vOld)
	}
	return nil
}

// EvalEc2 returns (ubar-u)^2 + (vbar-v)^2 pointwise, using the
// classical averaging stencil.
func (s *Vanilla) EvalEc2(u, v *mat.Dense) (*mat.Dense, error) {
	return evalEc2(laplacian.Classical, u, v)
}

// EvalEb returns Ex*u + Ey*v + Et pointwise, recomputing the forward
// difference gradients from i1, i2.
func (s *Vanilla) EvalEb(i1, i2, u, v *mat.Dense) (*mat.Dense, error) {
	const op = "hornschunck.Vanilla.EvalEb"
	for _, c := range []struct {
		name string
		m    *mat.Dense
	}{{"i1", i1}, {"i2", i2}, {"u", u}, {"v", v}} {
		if err := checkShape(op, c.name, c.m, s.rows, s.cols); err != nil {
			return nil, err
		}
	}
	forwardGradients(i1, i2, s.ex, s.ey, s.et)
	return evalEb(s.ex, s.ey, s.et, u, v)
}

// forwardGradients computes the forward-difference gradient fields
// from the original Horn & Schunck paper: each partial derivative is
// the average of the corresponding finite difference taken over the
// four corners of the 2x2x2 cube spanning pixel (y, x) across both
// frames. At the right/bottom edge the missing column/row is
// replicated from the boundary.
func forwardGradients(i1, i2, ex, ey, et *mat.Dense) {
	rows, cols := i1.Dims()
	for y := 0; y < rows; y++ {
		yp := clamp(y+1, rows)
		for x := 0; x < cols; x++ {
			xp := clamp(x+1, cols)

			a1 := i1.At(y, x)
			b1 := i1.At(y, xp)
			c1 := i1.At(yp, x)
			d1 := i1.At(yp, xp)

			a2 := i2.At(y, x)
			b2 := i2.At(y, xp)
			c2 := i2.At(yp, x)
			d2 := i2.At(yp, xp)

			exv := 0.25 * ((b1 - a1) + (d1 - c1) + (b2 - a2) + (d2 - c2))
			eyv := 0.25 * ((c1 - a1) + (d1 - b1) + (c2 - a2) + (d2 - b2))
			etv := 0.25 * ((a2 - a1) + (b2 - b1) + (c2 - c1) + (d2 - d1))

			ex.Set(y, x, exv)
			ey.Set(y, x, eyv)
			et.Set(y, x, etv)
		}
	}
}

func samePointer(a, b *mat.Dense) bool { return a == b }
