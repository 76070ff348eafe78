package limiter

import "math"

// smallEpsilon guards divisions and keeps denormal-range envelope values
// from lingering in the release tail.
const smallEpsilon = 1e-10

// Coefficient converts a time constant in milliseconds into a one-pole
// smoothing coefficient in [0, 1) for the given sample rate. It returns 0
// when the sample rate is zero or the time constant is not positive, which
// makes the smoother track its input instantly.
func Coefficient(sampleRate, timeMs float64) float64 {
	if sampleRate == 0 || timeMs <= 0 {
		return 0
	}

	timeSec := timeMs / msPerSecond

	return math.Exp(-1 / (sampleRate*timeSec + smallEpsilon))
}
