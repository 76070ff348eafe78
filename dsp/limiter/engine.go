package limiter

import (
	"math"
	"time"

	"github.com/cwbudde/algo-limiter/dsp/core"
	"github.com/cwbudde/algo-limiter/dsp/delay"
	"github.com/cwbudde/algo-vecmath"
)

// initialBlockMs sizes scratch and delay headroom before the first block
// arrives, when the real block size is still unknown.
const initialBlockMs = 20.0

// Engine is the limiter state machine. It owns its envelope follower,
// lookahead delay line, and gain curve scratch; the caller owns the sample
// buffers and serializes all calls on one processing goroutine.
type Engine struct {
	cfg Config

	sampleRate float64
	channels   int
	configured bool

	outputGain       float64
	lookaheadSamples int
	latency          time.Duration

	env       follower
	lookahead *delay.Lookahead

	gainCurve        []float64
	lastMinReduction float64
}

// New returns an unconfigured engine. Process is a no-op until Configure
// has been called with a valid format.
func New() *Engine {
	return &Engine{
		lookahead:        delay.NewLookahead(),
		lastMinReduction: 1,
	}
}

// Configure applies a parameter set and audio format and returns the
// resulting lookahead latency. It never fails: out-of-range parameters are
// clamped, a zero sample rate falls back to 48 kHz, channel counts above
// MaxChannels are truncated, and a lookahead rebuild failure disables
// lookahead instead of aborting.
//
// The delay line is torn down and rebuilt only when the format or the
// lookahead parameters actually changed, so re-applying an identical
// configuration is glitch-free.
func (e *Engine) Configure(cfg Config, sampleRate float64, channels int) time.Duration {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		sampleRate = fallbackSampleRate
	}
	if channels < 0 {
		channels = 0
	}
	if channels > MaxChannels {
		channels = MaxChannels
	}

	cfg = cfg.Clamped()

	formatChanged := sampleRate != e.sampleRate || channels != e.channels
	lookaheadChanged := cfg.Lookahead != e.cfg.Lookahead ||
		cfg.LookaheadTimeMs != e.cfg.LookaheadTimeMs
	rebuild := formatChanged || lookaheadChanged || !e.configured

	if formatChanged {
		e.env.resetState()
	}

	e.sampleRate = sampleRate
	e.channels = channels
	e.cfg = cfg
	e.configured = true

	e.env.configure(sampleRate, cfg.ReleaseTimeMs, cfg.AdaptiveRelease, cfg.TruePeak)
	e.outputGain = core.DBToLinear(cfg.OutputGainDB)

	if rebuild {
		samples := 0
		if cfg.Lookahead && cfg.LookaheadTimeMs >= minLookaheadMs && channels > 0 {
			samples = int(sampleRate*cfg.LookaheadTimeMs/msPerSecond + 0.5)
			if samples < 1 {
				samples = 1
			}
		}

		if err := e.lookahead.Reconfigure(channels, samples, blockEstimate(sampleRate)); err != nil {
			// The feature degrades to a plain limiter; processing goes on.
			e.cfg.Lookahead = false
			e.cfg.LookaheadTimeMs = 0
			samples = 0
			_ = e.lookahead.Reconfigure(channels, 0, 0)
		}
		e.lookaheadSamples = samples
	}

	e.latency = 0
	if e.cfg.Lookahead && e.lookahead.Active() && e.lookaheadSamples > 0 {
		e.latency = time.Duration(float64(e.lookaheadSamples) / e.sampleRate * float64(time.Second))
	}

	est := blockEstimate(e.sampleRate)
	e.env.reserveScratch(est)
	e.gainCurve = core.EnsureLen(e.gainCurve, est)

	return e.latency
}

// Process runs one block in place: envelope analysis on the raw input,
// lookahead delay of the main path, then one shared gain curve applied to
// every channel. The gain at index i was computed from the undelayed signal,
// which after the delay sits lookaheadSamples in the future relative to the
// output, so reduction is in place before the transient arrives.
//
// Zero frames, an unconfigured engine, or an empty channel set make this a
// pass-through. Channels beyond the configured count are ignored.
func (e *Engine) Process(channels [][]float64, frames int) {
	if frames <= 0 || e.sampleRate == 0 || e.channels == 0 || len(channels) == 0 {
		return
	}

	n := len(channels)
	if n > e.channels {
		n = e.channels
	}
	active := channels[:n]

	e.env.analyze(active, frames)

	if e.lookahead.Active() {
		e.lookahead.ProcessInPlace(active, frames)
	}

	e.applyGain(active, frames)
}

// Reset clears envelope, history, and delay-line contents while keeping the
// derived coefficients, as if the engine had just been configured.
func (e *Engine) Reset() {
	e.env.resetState()
	e.lookahead.Reset()
	e.lastMinReduction = 1
}

// applyGain turns the analyzed envelope into a per-sample gain curve and
// multiplies it into every channel. Non-finite input samples are zeroed
// rather than multiplied.
func (e *Engine) applyGain(channels [][]float64, frames int) {
	env := e.env.scratch
	if len(env) < frames {
		return
	}

	e.gainCurve = core.EnsureLen(e.gainCurve, frames)
	threshold := e.cfg.ThresholdDB
	minReduction := 1.0

	for i := 0; i < frames; i++ {
		reduction := 1.0
		if env[i] > smallEpsilon {
			envDB := core.LinearToDB(env[i])
			if core.IsFinite(envDB) && envDB > threshold {
				reduction = core.CoerceFinite(core.DBToLinear(math.Min(0, threshold-envDB)))
			}
		}
		if reduction < minReduction {
			minReduction = reduction
		}
		e.gainCurve[i] = core.CoerceFinite(reduction * e.outputGain)
	}
	e.lastMinReduction = minReduction

	for _, ch := range channels {
		if ch == nil || len(ch) < frames {
			continue
		}
		block := ch[:frames]
		for i, v := range block {
			if !core.IsFinite(v) {
				block[i] = 0
			}
		}
		vecmath.MulBlockInPlace(block, e.gainCurve[:frames])
	}
}

// Config returns the active (clamped) configuration.
func (e *Engine) Config() Config { return e.cfg }

// SampleRate returns the configured sample rate in Hz.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// Channels returns the configured channel count after cap clamping.
func (e *Engine) Channels() int { return e.channels }

// Latency returns the lookahead delay currently reported to the host.
func (e *Engine) Latency() time.Duration { return e.latency }

// LookaheadActive reports whether the delay-line path is in use.
func (e *Engine) LookaheadActive() bool {
	return e.cfg.Lookahead && e.lookahead.Active()
}

// LookaheadSamples returns the configured delay in samples.
func (e *Engine) LookaheadSamples() int { return e.lookaheadSamples }

// Envelope returns the block-final smoothed envelope value.
func (e *Engine) Envelope() float64 { return e.env.envelope }

// LastGainReduction returns the smallest gain-reduction multiplier applied
// during the most recent block, 1 when the block stayed under threshold.
func (e *Engine) LastGainReduction() float64 { return e.lastMinReduction }

// blockEstimate guesses a block size from a 20 ms default.
func blockEstimate(sampleRate float64) int {
	est := int(sampleRate * initialBlockMs / msPerSecond)
	if est <= 0 {
		return 1024
	}

	return est + 1
}
