/*
NAME
  main.go

DESCRIPTION
  Flowbench is a demonstration and benchmarking tool for the opticflow
  library: it synthesizes a small translating test pattern, runs both
  the vanilla and smoothed Horn & Schunck solvers over it, and logs
  convergence diagnostics at each checkpoint.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main implements flowbench, a synthetic benchmark driver for
// the Horn & Schunck optical flow solvers.
package main

import (
	"flag"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/opticflow/diagnostics"
	"github.com/ausocean/opticflow/hornschunck"
	"github.com/ausocean/utils/logging"
)

// Logging related constants.
const (
	logPath      = "/var/log/flowbench/flowbench.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Debug
	logSuppress  = true
)

func main() {
	rows := flag.Int("rows", 32, "height of the synthetic test pattern")
	cols := flag.Int("cols", 32, "width of the synthetic test pattern")
	alpha := flag.Float64("alpha", 1.0, "Horn-Schunck smoothness weight")
	iterations := flag.Int("iterations", 64, "iterations per checkpoint")
	checkpoints := flag.Int("checkpoints", 5, "number of checkpoints to report")
	shiftX := flag.Float64("shift-x", 1.0, "per-frame horizontal shift of the test pattern, in pixels")
	shiftY := flag.Float64("shift-y", 0.0, "per-frame vertical shift of the test pattern, in pixels")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	l := logging.New(logVerbosity, io.MultiWriter(os.Stdout, fileLog), logSuppress)

	i1 := testPattern(*rows, *cols, 0, 0)
	i2 := testPattern(*rows, *cols, *shiftX, *shiftY)
	i3 := testPattern(*rows, *cols, 2*(*shiftX), 2*(*shiftY))

	runVanilla(l, *rows, *cols, *alpha, *iterations, *checkpoints, i1, i2)
	runSmoothed(l, *rows, *cols, *alpha, *iterations, *checkpoints, i1, i2, i3)
}

func runVanilla(l logging.Logger, rows, cols int, alpha float64, iterations, checkpoints int, i1, i2 *mat.Dense) {
	l.Info("starting vanilla solver", "rows", rows, "cols", cols, "alpha", alpha)

	solver, err := hornschunck.NewVanilla(rows, cols)
	if err != nil {
		l.Fatal("could not construct vanilla solver", "error", err)
		return
	}

	u := mat.NewDense(rows, cols, nil)
	v := mat.NewDense(rows, cols, nil)
	for cp := 0; cp < checkpoints; cp++ {
		if err := solver.RunInto(alpha, iterations, i1, i2, u, v); err != nil {
			l.Error("vanilla solver failed", "error", err)
			return
		}
		report(l, "vanilla", cp, solver.EvalEc2, solver.EvalEb, u, v, i1, i2)
	}
}

func runSmoothed(l logging.Logger, rows, cols int, alpha float64, iterations, checkpoints int, i1, i2, i3 *mat.Dense) {
	l.Info("starting smoothed solver", "rows", rows, "cols", cols, "alpha", alpha)

	solver, err := hornschunck.NewSmoothed(rows, cols)
	if err != nil {
		l.Fatal("could not construct smoothed solver", "error", err)
		return
	}

	u := mat.NewDense(rows, cols, nil)
	v := mat.NewDense(rows, cols, nil)
	for cp := 0; cp < checkpoints; cp++ {
		if err := solver.RunInto(alpha, iterations, i1, i2, i3, u, v); err != nil {
			l.Error("smoothed solver failed", "error", err)
			return
		}
		ec2, err := solver.EvalEc2(u, v)
		if err != nil {
			l.Error("could not evaluate smoothness energy", "error", err)
			return
		}
		eb, err := solver.EvalEb(i1, i2, i3, u, v)
		if err != nil {
			l.Error("could not evaluate brightness residual", "error", err)
			return
		}
		logEnergy(l, "smoothed", cp, ec2, eb)
	}
}

// report evaluates and logs the energy summary for a vanilla-shaped
// checkpoint, given the solver's two-frame EvalEc2/EvalEb methods.
func report(l logging.Logger, variant string, cp int, evalEc2 func(u, v *mat.Dense) (*mat.Dense, error), evalEb func(i1, i2, u, v *mat.Dense) (*mat.Dense, error), u, v, i1, i2 *mat.Dense) {
	ec2, err := evalEc2(u, v)
	if err != nil {
		l.Error("could not evaluate smoothness energy", "error", err)
		return
	}
	eb, err := evalEb(i1, i2, u, v)
	if err != nil {
		l.Error("could not evaluate brightness residual", "error", err)
		return
	}
	logEnergy(l, variant, cp, ec2, eb)
}

func logEnergy(l logging.Logger, variant string, cp int, ec2, eb *mat.Dense) {
	report, err := diagnostics.EnergySummary(ec2, eb)
	if err != nil {
		l.Error("could not summarise energy", "error", err)
		return
	}
	l.Info("checkpoint",
		"variant", variant,
		"checkpoint", cp,
		"ec2.mean", report.Ec2.Mean,
		"ec2.variance", report.Ec2.Variance,
		"eb.mean", report.Eb.Mean,
		"eb.variance", report.Eb.Variance,
	)
}

// testPattern synthesizes a smooth 2-D sinusoidal field of the given
// shape, translated by (shiftX, shiftY) pixels. It exists purely to
// give the solvers something to run on without decoding an image file.
func testPattern(rows, cols int, shiftX, shiftY float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	const freq = 0.3
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			fx := float64(x) - shiftX
			fy := float64(y) - shiftY
			m.Set(y, x, math.Sin(freq*fx)*math.Cos(freq*fy))
		}
	}
	return m
}
