/*
DESCRIPTION
  diagnostics_test.go provides testing for functionality in diagnostics.go.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package diagnostics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func TestSummaryUniformField(t *testing.T) {
	f := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			f.Set(i, j, 5)
		}
	}
	s, err := Summary(f)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if s.Min != 5 || s.Max != 5 || s.Mean != 5 {
		t.Errorf("Summary = %+v, want Min=Max=Mean=5", s)
	}
	if s.Variance < -tol || s.Variance > tol {
		t.Errorf("Variance = %v, want 0", s.Variance)
	}
}

func TestSummaryMinMax(t *testing.T) {
	f := mat.NewDense(2, 2, []float64{1, 5, -3, 2})
	s, err := Summary(f)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := Stats{Min: -3, Max: 5, Mean: 1.25, Variance: 32.75 / 3}
	if diff := cmp.Diff(want, s, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummaryRejectsZeroValueField(t *testing.T) {
	var f mat.Dense // zero value has shape (0, 0)
	if _, err := Summary(&f); err == nil {
		t.Error("expected error for zero-shaped field")
	}
}

func TestEnergySummary(t *testing.T) {
	ec2 := mat.NewDense(2, 2, []float64{0, 0, 0, 0})
	eb := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	report, err := EnergySummary(ec2, eb)
	if err != nil {
		t.Fatalf("EnergySummary: %v", err)
	}
	if report.Ec2.Max != 0 {
		t.Errorf("Ec2.Max = %v, want 0", report.Ec2.Max)
	}
	if report.Eb.Mean != 2.5 {
		t.Errorf("Eb.Mean = %v, want 2.5", report.Eb.Mean)
	}
}
