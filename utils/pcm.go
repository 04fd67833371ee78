// SPDX-License-Identifier: EPL-2.0

package utils

// MaxPCM is the largest positive integer sample at bitDepth.
func MaxPCM(bitDepth int) int {
	return 1<<(bitDepth-1) - 1
}

// FloatToPCM clamps x to [-1,1] and scales it to a signed integer sample.
// Positive full scale maps to MaxPCM, so -1 lands one step above the
// integer minimum.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int(float64(x) * float64(MaxPCM(bitDepth)))
}

// PCMToFloat scales an integer sample back to [-1,1]. The integer minimum
// maps to exactly -1.
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / float64(int(1)<<(bitDepth-1)))
}

// ClampUnit limits x to [-1,1].
func ClampUnit(x float32) float32 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}

	return x
}
