package limiter

// Preset identifies a predefined parameter bundle tuned for a common use
// case. The empty string is the "custom" preset: it resolves to no bundle
// and leaves the current configuration untouched.
type Preset string

const (
	PresetCustom      Preset = ""
	PresetDefault     Preset = "default"
	PresetPodcast     Preset = "podcast"
	PresetStreaming   Preset = "streaming"
	PresetAggressive  Preset = "aggressive"
	PresetTransparent Preset = "transparent"
	PresetMusic       Preset = "music"
	PresetBrickwall   Preset = "brickwall"
)

var presetConfigs = map[Preset]Config{
	PresetDefault: DefaultConfig(),
	PresetPodcast: {
		ThresholdDB:     -8,
		ReleaseTimeMs:   80,
		OutputGainDB:    0,
		AdaptiveRelease: true,
		Lookahead:       true,
		LookaheadTimeMs: 8,
		TruePeak:        true,
	},
	PresetStreaming: {
		ThresholdDB:     -7,
		ReleaseTimeMs:   70,
		OutputGainDB:    1,
		AdaptiveRelease: true,
		Lookahead:       true,
		LookaheadTimeMs: 3,
		TruePeak:        true,
	},
	PresetAggressive: {
		ThresholdDB:     -5,
		ReleaseTimeMs:   40,
		OutputGainDB:    3,
		AdaptiveRelease: true,
		Lookahead:       true,
		LookaheadTimeMs: 2,
		TruePeak:        true,
	},
	PresetTransparent: {
		ThresholdDB:     -1.5,
		ReleaseTimeMs:   50,
		OutputGainDB:    0,
		AdaptiveRelease: true,
		Lookahead:       true,
		LookaheadTimeMs: 5,
		TruePeak:        true,
	},
	PresetMusic: {
		ThresholdDB:     -2,
		ReleaseTimeMs:   200,
		OutputGainDB:    0,
		AdaptiveRelease: false,
		Lookahead:       true,
		LookaheadTimeMs: 2,
		TruePeak:        true,
	},
	PresetBrickwall: {
		ThresholdDB:     -0.3,
		ReleaseTimeMs:   50,
		OutputGainDB:    0,
		AdaptiveRelease: false,
		Lookahead:       true,
		LookaheadTimeMs: 1.5,
		TruePeak:        true,
	},
}

// Presets lists the named presets in menu order, excluding PresetCustom.
func Presets() []Preset {
	return []Preset{
		PresetDefault,
		PresetPodcast,
		PresetStreaming,
		PresetAggressive,
		PresetTransparent,
		PresetMusic,
		PresetBrickwall,
	}
}

// Valid reports whether p names a known preset or the custom preset.
func (p Preset) Valid() bool {
	if p == PresetCustom {
		return true
	}
	_, ok := presetConfigs[p]
	return ok
}

// Config returns the parameter bundle for a named preset. The second return
// is false for PresetCustom and unknown names, meaning the caller should
// keep its current values as-is.
func (p Preset) Config() (Config, bool) {
	cfg, ok := presetConfigs[p]
	return cfg, ok
}
