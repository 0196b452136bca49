// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToPCM clamps x to [-1, 1] and scales it to a signed integer of the
// given bit depth (8, 16, 24 or 32).
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use the positive max so +1.0 does not overflow
	return int(float64(x) * PCMScale(bitDepth))
}

// PCMToFloat converts a signed integer sample of the given bit depth to float32.
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / (PCMScale(bitDepth) + 1))
}

// PCMScale is the largest positive value for a signed sample of bitDepth bits.
func PCMScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 127
	case 24:
		return 8388607
	case 32:
		return 2147483647
	default:
		return 32767
	}
}
