// Package distance implements the Euclidean and warped-DTW kernels (C2),
// including the Keogh/cross-Keogh lower bounds and the cascade pruning
// pipeline used everywhere the index is queried.
//
// Grounded on original_source/src/distance/Distance.cpp.
package distance

import "math"

// BandSize returns the Sakoe-Chiba warping band radius for a sequence of
// the given length under bandRatio, clipped to length-1.
func BandSize(length int, bandRatio float64) int {
	band := int(math.Floor(float64(length) * bandRatio))
	if band > length-1 {
		band = length - 1
	}
	return band
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
