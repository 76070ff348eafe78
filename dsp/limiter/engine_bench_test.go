package limiter

import (
	"fmt"
	"math"
	"testing"
)

func benchInput(channels, frames int) [][]float64 {
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, frames)
		for i := range out[c] {
			out[c][i] = 0.9 * math.Sin(2*math.Pi*float64(i)/64)
		}
	}

	return out
}

// Benchmark the full processing path with various block sizes.
func BenchmarkEngineProcess(b *testing.B) {
	sizes := []struct {
		channels int
		frames   int
	}{
		{1, 128},
		{2, 128},
		{2, 480},
		{2, 1024},
		{8, 480},
	}

	for _, size := range sizes {
		e := New()
		e.Configure(DefaultConfig(), 48000, size.channels)
		block := benchInput(size.channels, size.frames)

		b.Run(fmt.Sprintf("channels=%d_frames=%d", size.channels, size.frames), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Process(block, size.frames)
			}
		})
	}
}

// Benchmark the feature toggles against each other at a fixed block size.
func BenchmarkEngineFeatures(b *testing.B) {
	cases := []struct {
		name                          string
		lookahead, truePeak, adaptive bool
	}{
		{"plain", false, false, false},
		{"lookahead", true, false, false},
		{"true_peak", false, true, false},
		{"adaptive", false, false, true},
		{"all", true, true, true},
	}

	for _, tc := range cases {
		cfg := Config{
			ThresholdDB:     -6,
			ReleaseTimeMs:   60,
			AdaptiveRelease: tc.adaptive,
			Lookahead:       tc.lookahead,
			LookaheadTimeMs: 5,
			TruePeak:        tc.truePeak,
		}
		e := New()
		e.Configure(cfg, 48000, 2)
		block := benchInput(2, 480)

		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Process(block, 480)
			}
		})
	}
}
