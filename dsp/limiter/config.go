package limiter

import "github.com/cwbudde/algo-limiter/dsp/core"

const (
	minThresholdDB = -60.0
	maxThresholdDB = 0.0
	minReleaseMs   = 1.0
	maxReleaseMs   = 1000.0
	minOutputDB    = -20.0
	maxOutputDB    = 20.0
	minLookaheadMs = 0.1
	maxLookaheadMs = 20.0

	defaultThresholdDB = -6.0
	defaultReleaseMs   = 60.0
	defaultOutputDB    = 0.0
	defaultLookaheadMs = 5.0

	// MaxChannels is the hard cap on processed channels. Configure clamps
	// larger counts; Process ignores channels beyond the configured count.
	MaxChannels = 8

	fixedAttackMs = 1.0
	msPerSecond   = 1000.0

	fallbackSampleRate = 48000.0
)

// Config holds the user-facing limiter parameters. Out-of-range values are
// clamped when applied, never rejected.
type Config struct {
	// ThresholdDB is the ceiling in dB above which gain reduction engages.
	ThresholdDB float64
	// ReleaseTimeMs is the base release time constant in milliseconds.
	ReleaseTimeMs float64
	// OutputGainDB is a static post-limiting gain in dB.
	OutputGainDB float64
	// AdaptiveRelease speeds up the release when the envelope is changing
	// rapidly (program-dependent release).
	AdaptiveRelease bool
	// Lookahead enables the predictive delay-line path.
	Lookahead bool
	// LookaheadTimeMs is the delay-line length in milliseconds when
	// Lookahead is enabled.
	LookaheadTimeMs float64
	// TruePeak enables inter-sample peak estimation in envelope detection.
	TruePeak bool
}

// DefaultConfig returns the balanced starting configuration (the "default"
// preset).
func DefaultConfig() Config {
	return Config{
		ThresholdDB:     defaultThresholdDB,
		ReleaseTimeMs:   defaultReleaseMs,
		OutputGainDB:    defaultOutputDB,
		AdaptiveRelease: true,
		Lookahead:       true,
		LookaheadTimeMs: defaultLookaheadMs,
		TruePeak:        true,
	}
}

// Clamped returns a copy of c with every field forced into its documented
// range. The lookahead time is floored to its minimum when lookahead is
// enabled and zeroed when it is disabled.
func (c Config) Clamped() Config {
	c.ThresholdDB = core.Clamp(c.ThresholdDB, minThresholdDB, maxThresholdDB)
	c.ReleaseTimeMs = core.Clamp(c.ReleaseTimeMs, minReleaseMs, maxReleaseMs)
	c.OutputGainDB = core.Clamp(c.OutputGainDB, minOutputDB, maxOutputDB)

	switch {
	case !c.Lookahead:
		c.LookaheadTimeMs = 0
	case c.LookaheadTimeMs < minLookaheadMs:
		c.LookaheadTimeMs = minLookaheadMs
	case c.LookaheadTimeMs > maxLookaheadMs:
		c.LookaheadTimeMs = maxLookaheadMs
	}

	if !core.IsFinite(c.ThresholdDB) {
		c.ThresholdDB = defaultThresholdDB
	}
	if !core.IsFinite(c.ReleaseTimeMs) {
		c.ReleaseTimeMs = defaultReleaseMs
	}
	if !core.IsFinite(c.OutputGainDB) {
		c.OutputGainDB = defaultOutputDB
	}
	if !core.IsFinite(c.LookaheadTimeMs) {
		c.LookaheadTimeMs = 0
		c.Lookahead = false
	}

	return c
}
