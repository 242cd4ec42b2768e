/*
DESCRIPTION
  vanilla_test.go provides testing for functionality in vanilla.go and
  the shared solver.go relaxation step.

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
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func translatingPattern(rows, cols int, shift float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.Set(y, x, math.Sin(0.3*(float64(x)-shift))*math.Cos(0.3*float64(y)))
		}
	}
	return m
}

func TestVanillaIdenticalFramesZeroFlow(t *testing.T) {
	s, err := NewVanilla(6, 6)
	if err != nil {
		t.Fatalf("NewVanilla: %v", err)
	}
	i := translatingPattern(6, 6, 0)
	u, v, err := s.Run(1.0, 20, i, i)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows, cols := u.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if got := u.At(y, x); got < -tol || got > tol {
				t.Errorf("u[%d,%d] = %v, want 0", y, x, got)
			}
			if got := v.At(y, x); got < -tol || got > tol {
				t.Errorf("v[%d,%d] = %v, want 0", y, x, got)
			}
		}
	}
}

func TestVanillaZeroIterationsIsNoOp(t *testing.T) {
	s, err := NewVanilla(4, 4)
	if err != nil {
		t.Fatalf("NewVanilla: %v", err)
	}
	i1 := translatingPattern(4, 4, 0)
	i2 := translatingPattern(4, 4, 1)
	u := mat.NewDense(4, 4, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})
	v := mat.NewDense(4, 4, []float64{16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1})
	wantU := mat.DenseCopyOf(u)
	wantV := mat.DenseCopyOf(v)

	if err := s.RunInto(1.0, 0, i1, i2, u, v); err != nil {
		t.Fatalf("RunInto: %v", err)
	}
	if !mat.Equal(u, wantU) || !mat.Equal(v, wantV) {
		t.Error("RunInto with 0 iterations modified u or v")
	}
}

func TestVanillaLargeAlphaConvergesTowardZero(t *testing.T) {
	s, err := NewVanilla(6, 6)
	if err != nil {
		t.Fatalf("NewVanilla: %v", err)
	}
	i1 := translatingPattern(6, 6, 0)
	i2 := translatingPattern(6, 6, 1)
	u, v, err := s.Run(1e6, 50, i1, i2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	rows, cols := u.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if got := math.Abs(u.At(y, x)); got > 1e-3 {
				t.Errorf("u[%d,%d] = %v, want near 0 for large alpha", y, x, got)
			}
			if got := math.Abs(v.At(y, x)); got > 1e-3 {
				t.Errorf("v[%d,%d] = %v, want near 0 for large alpha", y, x, got)
			}
		}
	}
}

func TestVanillaRejectsNonFiniteAlpha(t *testing.T) {
	s, err := NewVanilla(3, 3)
	if err != nil {
		t.Fatalf("NewVanilla: %v", err)
	}
	i := translatingPattern(3, 3, 0)
	if _, _, err := s.Run(math.NaN(), 5, i, i); err == nil {
		t.Error("expected error for NaN alpha")
	}
}

func TestVanillaRejectsShapeMismatch(t *testing.T) {
	s, err := NewVanilla(3, 3)
	if err != nil {
		t.Fatalf("NewVanilla: %v", err)
	}
	i1 := translatingPattern(3, 3, 0)
	i2 := translatingPattern(4, 4, 0)
	if _, _, err := s.Run(1.0, 5, i1, i2); err == nil {
		t.Error("expected shape error")
	}
}

func TestVanillaDeterministic(t *testing.T) {
	i1 := translatingPattern(8, 8, 0)
	i2 := translatingPattern(8, 8, 1)

	s1, _ := NewVanilla(8, 8)
	u1, v1, err := s1.Run(2.0, 30, i1, i2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	s2, _ := NewVanilla(8, 8)
	u2, v2, err := s2.Run(2.0, 30, i1, i2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !mat.Equal(u1, u2) || !mat.Equal(v1, v2) {
		t.Error("two runs with identical inputs produced different outputs")
	}
}

func TestVanillaEvalEbZeroFlowIdenticalFrames(t *testing.T) {
	s, err := NewVanilla(4, 4)
	if err != nil {
		t.Fatalf("NewVanilla: %v", err)
	}
	i := translatingPattern(4, 4, 0)
	zero := mat.NewDense(4, 4, nil)
	eb, err := s.EvalEb(i, i, zero, zero)
	if err != nil {
		t.Fatalf("EvalEb: %v", err)
	}
	rows, cols := eb.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if got := eb.At(y, x); got < -tol || got > tol {
				t.Errorf("eb[%d,%d] = %v, want 0", y, x, got)
			}
		}
	}
}
