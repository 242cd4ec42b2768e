/*
NAME
  diagnostics.go

DESCRIPTION
  diagnostics.go implements lightweight statistical summaries over flow
  and energy fields, intended for logging during iteration rather than
  for correctness checks.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package diagnostics computes summary statistics over dense float64
// fields, for use in logging and benchmarking rather than in the
// solver's hot path.
package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/ausocean/opticflow/flowerr"
)

// Stats holds the minimum, maximum, mean and variance of a field.
type Stats struct {
	Min      float64
	Max      float64
	Mean     float64
	Variance float64
}

// Summary computes Stats over every element of f.
func Summary(f *mat.Dense) (Stats, error) {
	const op = "diagnostics.Summary"
	rows, cols := f.Dims()
	if rows == 0 || cols == 0 {
		return Stats{}, flowerr.Shapef(op, "field has shape (%d, %d)", rows, cols)
	}

	data := make([]float64, 0, rows*cols)
	min, max := math.Inf(1), math.Inf(-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := f.At(i, j)
			data = append(data, v)
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}

	mean, variance := stat.MeanVariance(data, nil)
	return Stats{Min: min, Max: max, Mean: mean, Variance: variance}, nil
}

// EnergyReport summarises the two energy terms of the Horn & Schunck
// functional E = Eb^2 + alpha^2 * Ec^2.
type EnergyReport struct {
	Ec2 Stats
	Eb  Stats
}

// EnergySummary computes an EnergyReport from the pointwise smoothness
// term ec2 and brightness-constancy residual eb.
func EnergySummary(ec2, eb *mat.Dense) (EnergyReport, error) {
	ec2Stats, err := Summary(ec2)
	if err != nil {
		return EnergyReport{}, err
	}
	ebStats, err := Summary(eb)
	if err != nil {
		return EnergyReport{}, err
	}
	return EnergyReport{Ec2: ec2Stats, Eb: ebStats}, nil
}
