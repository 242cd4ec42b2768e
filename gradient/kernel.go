/*
NAME
  kernel.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gradient

import "math"

// Kernel is a 3-tap 1-D correlation kernel. Index 0 applies to the
// tap one position behind the centre, index 1 to the centre, index 2
// to the tap one position ahead.
type Kernel [3]float64

// IsFinite reports whether every tap of k is a finite float64.
func (k Kernel) IsFinite() bool {
	for _, v := range k {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Fixed difference and averaging kernels used by the named
// constructors. Mirrors the kernel tables in the Horn & Schunck
// spatio-temporal gradient literature this package implements.
var (
	diffKernel      = Kernel{1, 0, -1}
	sobelAvg        = Kernel{1, 2, 1}
	prewittAvg      = Kernel{1, 1, 1}
	isotropicAvg    = Kernel{1, math.Sqrt2, 1}
)
