/*
NAME
  estimator.go

DESCRIPTION
  estimator.go implements the separable spatio-temporal gradient
  estimator family (Central, Sobel, Prewitt, Isotropic) described in
  the Horn & Schunck optical flow literature: from an image triplet it
  produces the three partial-derivative fields Ex, Ey, Et consumed by
  the hornschunck package.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gradient computes the spatio-temporal intensity gradient of
// an image triplet using separable 1-D kernels. A single parametric
// Estimator type backs four named variants (Central, Sobel, Prewitt,
// Isotropic); they differ only in the fixed (difference, average)
// kernel pair each is constructed with.
package gradient

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ausocean/opticflow/flowerr"
)

// Estimator computes Ex, Ey, Et from an image triplet by composing a
// difference kernel d and an averaging kernel a along the three axes:
//
//	Ex = d(x) . a(y) . a(t)
//	Ey = a(x) . d(y) . a(t)
//	Et = a(x) . a(y) . d(t)
//
// An Estimator owns scratch buffers sized to its configured shape;
// SetShape reallocates them. It is not safe for concurrent use.
type Estimator struct {
	variant string // "Central", "Sobel", "Prewitt" or "Isotropic", for String().
	fixed   bool   // true if d, a may not be changed via SetDifference/SetAverage.
	d, a    Kernel
	rows    int
	cols    int

	// Scratch, reallocated by SetShape. dx and ax hold the x-pass of
	// the difference and average kernels (respectively) applied to
	// each of the three input frames; ax is shared between the Ey and
	// Et computations. ypass holds the y-pass result immediately
	// prior to temporal combination and is reused across Ex, Ey, Et.
	dx, ax, ypass [3]*mat.Dense
}

// NewCentral returns the parametric base estimator, configured with
// caller-supplied difference and average kernels and a fixed (rows,
// cols) shape.
func NewCentral(d, a Kernel, rows, cols int) (*Estimator, error) {
	return newEstimator("Central", d, a, false, rows, cols)
}

// NewSobel returns an estimator fixed to the Sobel kernels
// (d = [1, 0, -1], a = [1, 2, 1]).
func NewSobel(rows, cols int) (*Estimator, error) {
	return newEstimator("Sobel", diffKernel, sobelAvg, true, rows, cols)
}

// NewPrewitt returns an estimator fixed to the Prewitt kernels
// (d = [1, 0, -1], a = [1, 1, 1]).
func NewPrewitt(rows, cols int) (*Estimator, error) {
	return newEstimator("Prewitt", diffKernel, prewittAvg, true, rows, cols)
}

// NewIsotropic returns an estimator fixed to the isotropic kernels
// (d = [1, 0, -1], a = [1, sqrt(2), 1]).
func NewIsotropic(rows, cols int) (*Estimator, error) {
	return newEstimator("Isotropic", diffKernel, isotropicAvg, true, rows, cols)
}

func newEstimator(variant string, d, a Kernel, fixed bool, rows, cols int) (*Estimator, error) {
	const op = "gradient.New"
	if rows <= 0 || cols <= 0 {
		return nil, flowerr.Shapef(op, "shape (%d, %d) must be positive", rows, cols)
	}
	if !d.IsFinite() || !a.IsFinite() {
		return nil, flowerr.Argumentf(op, "kernel contains a non-finite tap")
	}
	e := &Estimator{variant: variant, fixed: fixed, d: d, a: a}
	e.SetShape(rows, cols)
	return e, nil
}

// Shape returns the configured (rows, cols).
func (e *Estimator) Shape() (rows, cols int) { return e.rows, e.cols }

// SetShape reconfigures e for a new (rows, cols), reallocating all
// scratch buffers. Previously borrowed output buffers from Evaluate
// remain valid but are no longer written to by this Estimator.
func (e *Estimator) SetShape(rows, cols int) {
	e.rows, e.cols = rows, cols
	for i := 0; i < 3; i++ {
		e.dx[i] = mat.NewDense(rows, cols, nil)
		e.ax[i] = mat.NewDense(rows, cols, nil)
		e.ypass[i] = mat.NewDense(rows, cols, nil)
	}
}

// Difference returns the estimator's difference kernel.
func (e *Estimator) Difference() Kernel { return e.d }

// Average returns the estimator's averaging kernel.
func (e *Estimator) Average() Kernel { return e.a }

// SetDifference updates the difference kernel in place. Only the
// parametric Central estimator permits this; the fixed-kernel
// variants (Sobel, Prewitt, Isotropic) return a KindArgument error.
func (e *Estimator) SetDifference(d Kernel) error {
	if e.fixed {
		return flowerr.Argumentf("gradient.SetDifference", "%s estimator has a fixed difference kernel", e.variant)
	}
	if !d.IsFinite() {
		return flowerr.Argumentf("gradient.SetDifference", "kernel contains a non-finite tap")
	}
	e.d = d
	return nil
}

// SetAverage updates the averaging kernel in place. Only the
// parametric Central estimator permits this.
func (e *Estimator) SetAverage(a Kernel) error {
	if e.fixed {
		return flowerr.Argumentf("gradient.SetAverage", "%s estimator has a fixed average kernel", e.variant)
	}
	if !a.IsFinite() {
		return flowerr.Argumentf("gradient.SetAverage", "kernel contains a non-finite tap")
	}
	e.a = a
	return nil
}

// String returns a human-readable dump of the estimator: its variant
// name, configured shape, and both kernels.
func (e *Estimator) String() string {
	return fmt.Sprintf("%sGradient((%d, %d))\n difference: %v\n average: %v", e.variant, e.rows, e.cols, e.d, e.a)
}

// Evaluate computes the spatio-temporal gradient of the image triplet
// (i1, i2, i3), allocating fresh output fields.
func (e *Estimator) Evaluate(i1, i2, i3 *mat.Dense) (ex, ey, et *mat.Dense, err error) {
	ex = mat.NewDense(e.rows, e.cols, nil)
	ey = mat.NewDense(e.rows, e.cols, nil)
	et = mat.NewDense(e.rows, e.cols, nil)
	if err := e.EvaluateInto(i1, i2, i3, ex, ey, et); err != nil {
		return nil, nil, nil, err
	}
	return ex, ey, et, nil
}

// EvaluateInto computes the spatio-temporal gradient of the image
// triplet (i1, i2, i3), writing results into the caller-supplied
// ex, ey, et fields. All six matrices must match e's configured shape.
func (e *Estimator) EvaluateInto(i1, i2, i3, ex, ey, et *mat.Dense) error {
	const op = "gradient.EvaluateInto"
	frames := [3]*mat.Dense{i1, i2, i3}
	checks := []struct {
		name string
		m    *mat.Dense
	}{
		{"image1", i1}, {"image2", i2}, {"image3", i3},
		{"ex", ex}, {"ey", ey}, {"et", et},
	}
	for _, c := range checks {
		if err := e.checkShape(op, c.name, c.m); err != nil {
			return err
		}
	}

	// x-pass: difference kernel (feeds Ex) and average kernel (shared
	// by Ey and Et) applied to each of the three frames.
	for i, f := range frames {
		applyAxis(e.dx[i], f, e.d, AxisX)
		applyAxis(e.ax[i], f, e.a, AxisX)
	}

	// Ex = d(x) . a(y) . a(t)
	for i := 0; i < 3; i++ {
		applyAxis(e.ypass[i], e.dx[i], e.a, AxisY)
	}
	combineTemporal(ex, e.ypass[0], e.ypass[1], e.ypass[2], e.a)

	// Ey = a(x) . d(y) . a(t)
	for i := 0; i < 3; i++ {
		applyAxis(e.ypass[i], e.ax[i], e.d, AxisY)
	}
	combineTemporal(ey, e.ypass[0], e.ypass[1], e.ypass[2], e.a)

	// Et = a(x) . a(y) . d(t)
	for i := 0; i < 3; i++ {
		applyAxis(e.ypass[i], e.ax[i], e.a, AxisY)
	}
	combineTemporal(et, e.ypass[0], e.ypass[1], e.ypass[2], e.d)

	return nil
}

func (e *Estimator) checkShape(op, name string, m *mat.Dense) error {
	r, c := m.Dims()
	if r != e.rows || c != e.cols {
		return flowerr.Shapef(op, "%s has shape (%d, %d), estimator configured for (%d, %d)", name, r, c, e.rows, e.cols)
	}
	return nil
}
