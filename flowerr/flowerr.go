/*
NAME
  flowerr.go

DESCRIPTION
  flowerr defines the error type shared by the gradient, laplacian,
  hornschunck and flowerror packages.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package flowerr provides the error taxonomy used across the optical
// flow packages (gradient, laplacian, hornschunck, flowerror).
package flowerr

import "fmt"

// Kind classifies a FlowError.
type Kind uint8

const (
	// KindShape indicates an input matrix disagrees with a configured
	// shape, or two inputs disagree with each other.
	KindShape Kind = iota

	// KindArgument indicates a non-shape argument is invalid, e.g. a
	// non-finite alpha or kernel entry, or a kernel mutation attempted
	// on a fixed-kernel estimator.
	KindArgument

	// KindInternal is reserved for allocation failures during a shape
	// change. Not currently raised; Go panics on allocation failure
	// rather than returning an error, but the kind exists so a future
	// pooled-buffer implementation has somewhere to report into.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindArgument:
		return "argument"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// FlowError is the error type behind every error returned by the
// gradient, laplacian, hornschunck, flowerror and diagnostics packages.
// hornschunck.Smoothed wraps a gradient FlowError with
// github.com/pkg/errors, so there it is reached through errors.As.
type FlowError struct {
	Kind Kind
	Op   string // Op names the failing operation, e.g. "gradient.Evaluate".
	Msg  string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
}

// New constructs a FlowError.
func New(kind Kind, op, msg string) *FlowError {
	return &FlowError{Kind: kind, Op: op, Msg: msg}
}

// Shapef constructs a KindShape FlowError with a formatted message.
func Shapef(op, format string, args ...interface{}) *FlowError {
	return New(KindShape, op, fmt.Sprintf(format, args...))
}

// Argumentf constructs a KindArgument FlowError with a formatted message.
func Argumentf(op, format string, args ...interface{}) *FlowError {
	return New(KindArgument, op, fmt.Sprintf(format, args...))
}
