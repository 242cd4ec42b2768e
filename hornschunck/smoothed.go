/*
NAME
  smoothed.go

DESCRIPTION
  smoothed.go implements the three-frame Horn & Schunck variant: a
  Sobel gradient estimator in place of the forward difference, and the
  OpenCV-style averaging stencil in place of the classical one.

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
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/ausocean/opticflow/flowerr"
	"github.com/ausocean/opticflow/gradient"
	"github.com/ausocean/opticflow/laplacian"
)

// Smoothed computes optical flow from a three-frame window using a
// Sobel spatio-temporal gradient estimator and the OpenCV averaging
// stencil. It is a drop-in replacement for Vanilla that trades the
// forward difference's noise sensitivity for the smoothing implicit in
// the Sobel kernel, at the cost of requiring a third frame.
type Smoothed struct {
	rows, cols int

	est *gradient.Estimator

	ex, ey, et   *mat.Dense
	ubar, vbar   *mat.Dense
	uNext, vNext *mat.Dense
}

// NewSmoothed returns a Smoothed solver configured for the given shape.
func NewSmoothed(rows, cols int) (*Smoothed, error) {
	const op = "hornschunck.NewSmoothed"
	if rows <= 0 || cols <= 0 {
		return nil, flowerr.Shapef(op, "shape (%d, %d) must be positive", rows, cols)
	}
	est, err := gradient.NewSobel(rows, cols)
	if err != nil {
		return nil, err
	}
	s := &Smoothed{est: est}
	s.SetShape(rows, cols)
	return s, nil
}

// Shape returns the configured (rows, cols).
func (s *Smoothed) Shape() (rows, cols int) { return s.rows, s.cols }

// SetShape reconfigures s for a new (rows, cols), reallocating scratch
// and the internal gradient estimator.
func (s *Smoothed) SetShape(rows, cols int) {
	s.rows, s.cols = rows, cols
	s.est.SetShape(rows, cols)
	s.ex = mat.NewDense(rows, cols, nil)
	s.ey = mat.NewDense(rows, cols, nil)
	s.et = mat.NewDense(rows, cols, nil)
	s.ubar = mat.NewDense(rows, cols, nil)
	s.vbar = mat.NewDense(rows, cols, nil)
	s.uNext = mat.NewDense(rows, cols, nil)
	s.vNext = mat.NewDense(rows, cols, nil)
}

// Run computes optical flow over the frame triplet (i1, i2, i3),
// allocating a zero-initialised (u, v) to warm-start iteration.
func (s *Smoothed) Run(alpha float64, iterations int, i1, i2, i3 *mat.Dense) (u, v *mat.Dense, err error) {
	u = mat.NewDense(s.rows, s.cols, nil)
	v = mat.NewDense(s.rows, s.cols, nil)
	if err := s.RunInto(alpha, iterations, i1, i2, i3, u, v); err != nil {
		return nil, nil, err
	}
	return u, v, nil
}

// RunInto computes optical flow over the frame triplet (i1, i2, i3),
// using the values already in u, v as the warm start and overwriting
// them with the result. A non-positive iterations is a no-op.
func (s *Smoothed) RunInto(alpha float64, iterations int, i1, i2, i3, u, v *mat.Dense) error {
	const op = "hornschunck.Smoothed.RunInto"
	if err := checkAlpha(op, alpha); err != nil {
		return err
	}
	for _, c := range []struct {
		name string
		m    *mat.Dense
	}{{"i1", i1}, {"i2", i2}, {"i3", i3}, {"u", u}, {"v", v}} {
		if err := checkShape(op, c.name, c.m, s.rows, s.cols); err != nil {
			return err
		}
	}
	if iterations <= 0 {
		return nil
	}

	if err := s.est.EvaluateInto(i1, i2, i3, s.ex, s.ey, s.et); err != nil {
		return errors.Wrap(err, op)
	}

	uOld, vOld := u, v
	uNew, vNew := s.uNext, s.vNext
	for k := 0; k < iterations; k++ {
		if err := relax(laplacian.OpenCV, alpha, s.ex, s.ey, s.et, uOld, vOld, uNew, vNew, s.ubar, s.vbar); err != nil {
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

// EvalEc2 returns (ubar-u)^2 + (vbar-v)^2 pointwise, using the OpenCV
// averaging stencil.
func (s *Smoothed) EvalEc2(u, v *mat.Dense) (*mat.Dense, error) {
	return evalEc2(laplacian.OpenCV, u, v)
}

// EvalEb returns Ex*u + Ey*v + Et pointwise, recomputing the Sobel
// gradient from the frame triplet.
func (s *Smoothed) EvalEb(i1, i2, i3, u, v *mat.Dense) (*mat.Dense, error) {
	const op = "hornschunck.Smoothed.EvalEb"
	for _, c := range []struct {
		name string
		m    *mat.Dense
	}{{"i1", i1}, {"i2", i2}, {"i3", i3}, {"u", u}, {"v", v}} {
		if err := checkShape(op, c.name, c.m, s.rows, s.cols); err != nil {
			return nil, err
		}
	}
	if err := s.est.EvaluateInto(i1, i2, i3, s.ex, s.ey, s.et); err != nil {
		return nil, errors.Wrap(err, op)
	}
	return evalEb(s.ex, s.ey, s.et, u, v)
}
