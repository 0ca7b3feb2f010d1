// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small numeric helpers shared by the audio, dsp and
// codec packages.
package utils

import "math"

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples. x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// DBToGain converts a level in dBFS to a linear amplitude factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// GainToDB converts a linear amplitude to dBFS. Zero maps to -Inf.
func GainToDB(gain float64) float64 {
	if gain <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(gain)
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing
	return int16(x * 32767.0)
}

// Int16ToFloat32 maps a 16-bit PCM sample to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}
