package limiter

import (
	"math"

	"github.com/cwbudde/algo-limiter/dsp/core"
)

const (
	// envHistoryLen is the number of block-final envelope values kept for
	// program-dependent release estimation.
	envHistoryLen = 3

	// Program-dependent release tuning. An average envelope change rate
	// above the sensitivity threshold scales the release time down by up
	// to the max speedup factor, floored at minFastReleaseMs.
	adaptSensitivity = 0.05
	adaptSpeedFactor = 15.0
	adaptMaxSpeedup  = 3.0
	minFastReleaseMs = 1.0
)

// follower tracks a smoothed, channel-linked peak envelope across blocks.
// The per-sample envelope of the loudest channel lands in scratch; the
// block-final value feeds a short history ring that drives the
// program-dependent release speedup.
type follower struct {
	sampleRate   float64
	attackCoeff  float64
	releaseCoeff float64
	releaseMs    float64
	adaptive     bool
	truePeak     bool

	envelope   float64
	history    [envHistoryLen]float64
	historyPos int
	scratch    []float64
}

func (f *follower) configure(sampleRate, releaseMs float64, adaptive, truePeak bool) {
	f.sampleRate = sampleRate
	f.releaseMs = releaseMs
	f.attackCoeff = Coefficient(sampleRate, fixedAttackMs)
	f.releaseCoeff = Coefficient(sampleRate, releaseMs)
	f.adaptive = adaptive
	f.truePeak = truePeak
}

// reserveScratch grows the per-block working buffer to at least n samples.
// Together with buffer rebuilds this is the only allocation point outside
// steady-state processing.
func (f *follower) reserveScratch(n int) {
	f.scratch = core.EnsureLen(f.scratch, n)
}

func (f *follower) resetState() {
	f.envelope = 0
	f.history = [envHistoryLen]float64{}
	f.historyPos = 0
}

// analyze fills scratch[0:frames] with the per-sample envelope maximum
// across all channels and pushes the block-final value into the history
// ring. Channels shorter than frames and nil channels are skipped.
func (f *follower) analyze(channels [][]float64, frames int) {
	if frames <= 0 {
		return
	}

	f.scratch = core.EnsureLen(f.scratch, frames)
	core.Zero(f.scratch)

	for _, ch := range channels {
		if ch == nil || len(ch) < frames {
			continue
		}

		env := f.envelope
		for i := 0; i < frames; i++ {
			var in float64
			if f.truePeak && i < frames-1 {
				in = InterSamplePeak(ch[i], ch[i+1])
			} else {
				in = math.Abs(ch[i])
			}
			if !core.IsFinite(in) {
				in = 0
			}

			coeff := f.releaseCoeff
			if in > env {
				coeff = f.attackCoeff
			} else if f.adaptive {
				if rate := f.changeRate(); rate > adaptSensitivity {
					factor := core.Clamp(rate*adaptSpeedFactor, 1, adaptMaxSpeedup)
					fastMs := math.Max(f.releaseMs/factor, minFastReleaseMs)
					coeff = Coefficient(f.sampleRate, fastMs)
				}
			}

			env = in + coeff*(env-in)
			if !core.IsFinite(env) || env < smallEpsilon {
				env = 0
			}

			if env > f.scratch[i] {
				f.scratch[i] = env
			}
		}
	}

	f.envelope = core.CoerceFinite(f.scratch[frames-1])
	f.historyPos = (f.historyPos + 1) % envHistoryLen
	f.history[f.historyPos] = f.envelope
}

// changeRate averages the absolute differences between consecutive history
// entries, oldest to newest.
func (f *follower) changeRate() float64 {
	sum := 0.0
	for i := 0; i < envHistoryLen-1; i++ {
		a := f.history[(f.historyPos+i)%envHistoryLen]
		b := f.history[(f.historyPos+i+1)%envHistoryLen]
		sum += math.Abs(b - a)
	}

	return sum / (envHistoryLen - 1)
}
