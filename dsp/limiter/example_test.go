package limiter_test

import (
	"fmt"

	"github.com/cwbudde/algo-limiter/dsp/limiter"
)

func ExampleEngine() {
	e := limiter.New()
	cfg := limiter.Config{
		ThresholdDB:   -6,
		ReleaseTimeMs: 60,
	}
	e.Configure(cfg, 48000, 1)

	block := make([]float64, 480)
	for i := range block {
		block[i] = 1.0
	}
	for n := 0; n < 20; n++ {
		e.Process([][]float64{block}, len(block))
		for i := range block {
			block[i] = 1.0
		}
	}

	e.Process([][]float64{block}, len(block))
	fmt.Printf("peak=%.3f\n", block[len(block)-1])

	// Output:
	// peak=0.501
}

func ExamplePreset_Config() {
	cfg, ok := limiter.PresetPodcast.Config()
	fmt.Printf("ok=%v threshold=%.0f release=%.0f lookahead=%.0fms\n",
		ok, cfg.ThresholdDB, cfg.ReleaseTimeMs, cfg.LookaheadTimeMs)

	// Output:
	// ok=true threshold=-8 release=80 lookahead=8ms
}

func ExampleEngine_Latency() {
	e := limiter.New()
	cfg := limiter.DefaultConfig()
	cfg.Lookahead = true
	cfg.LookaheadTimeMs = 5

	latency := e.Configure(cfg, 48000, 2)
	fmt.Printf("latency=%v samples=%d\n", latency, e.LookaheadSamples())

	// Output:
	// latency=5ms samples=240
}
