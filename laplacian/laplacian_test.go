/*
DESCRIPTION
  laplacian_test.go provides testing for functionality in laplacian.go.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package laplacian

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func TestAverageConstantField(t *testing.T) {
	for _, kind := range []Kind{Classical, OpenCV} {
		src := mat.NewDense(5, 5, nil)
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				src.Set(i, j, 3.5)
			}
		}
		dst := mat.NewDense(5, 5, nil)
		if err := Average(kind, dst, src); err != nil {
			t.Fatalf("kind %d: Average: %v", kind, err)
		}
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				if got := dst.At(i, j); got < 3.5-tol || got > 3.5+tol {
					t.Errorf("kind %d: dst[%d,%d] = %v, want 3.5", kind, i, j, got)
				}
			}
		}
	}
}

func TestAverageShapeMismatch(t *testing.T) {
	src := mat.NewDense(3, 3, nil)
	dst := mat.NewDense(2, 2, nil)
	if err := Average(Classical, dst, src); err == nil {
		t.Error("expected shape error")
	}
}

func TestAverageUnknownKind(t *testing.T) {
	src := mat.NewDense(3, 3, nil)
	dst := mat.NewDense(3, 3, nil)
	if err := Average(Kind(255), dst, src); err == nil {
		t.Error("expected error for unknown stencil kind")
	}
}

func TestAverageClassicalCentreSum(t *testing.T) {
	// A single unit impulse at the centre of a zero field, under the
	// classical stencil, should distribute 1/12 to each diagonal
	// neighbour and 1/6 to each orthogonal neighbour, and leave the
	// centre itself at 0 (the stencil has no centre tap).
	src := mat.NewDense(3, 3, nil)
	src.Set(1, 1, 1)
	dst := mat.NewDense(3, 3, nil)
	if err := Average(Classical, dst, src); err != nil {
		t.Fatalf("Average: %v", err)
	}
	if got := dst.At(1, 1); got != 0 {
		t.Errorf("centre = %v, want 0", got)
	}
	if got := dst.At(0, 0); got < 1.0/12-tol || got > 1.0/12+tol {
		t.Errorf("diagonal neighbour = %v, want 1/12", got)
	}
	if got := dst.At(0, 1); got < 1.0/6-tol || got > 1.0/6+tol {
		t.Errorf("orthogonal neighbour = %v, want 1/6", got)
	}
}
