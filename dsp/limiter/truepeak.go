package limiter

import (
	"math"

	"github.com/cwbudde/algo-limiter/dsp/core"
)

// tpOversampleFactor is the linear-interpolation oversampling factor used to
// approximate inter-sample peaks.
const tpOversampleFactor = 4

// InterSamplePeak estimates the maximum absolute signal value between two
// consecutive samples by evaluating linearly interpolated points at
// 1/4, 2/4 and 3/4 of the way from a to b in addition to the endpoints.
//
// This catches overshoots a D/A reconstruction filter could produce between
// sample instants; it is a cheap estimate, not the ITU-R BS.1770 filter-bank
// true-peak measurement. Non-finite endpoints yield 0 and non-finite
// interpolated values are ignored.
func InterSamplePeak(a, b float64) float64 {
	if !core.IsFinite(a) || !core.IsFinite(b) {
		return 0
	}

	peak := math.Max(math.Abs(a), math.Abs(b))
	for j := 1; j < tpOversampleFactor; j++ {
		t := float64(j) / tpOversampleFactor
		interpolated := (1-t)*a + t*b
		if core.IsFinite(interpolated) {
			peak = math.Max(peak, math.Abs(interpolated))
		}
	}

	return peak
}
