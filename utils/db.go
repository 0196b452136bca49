// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// DBToGain converts a level in decibels to a linear amplitude factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// GainToDB converts a linear amplitude to decibels. Zero yields -Inf.
func GainToDB(gain float64) float64 {
	return 20 * math.Log10(gain)
}

// RMS returns the root mean square of samples, 0 for an empty slice.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, v := range samples {
		sum += float64(v) * float64(v)
	}

	return math.Sqrt(sum / float64(len(samples)))
}

// Finite reports whether every sample is neither NaN nor infinite.
func Finite(samples []float32) bool {
	for _, v := range samples {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}

	return true
}
