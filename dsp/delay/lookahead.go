package delay

import "fmt"

// Lookahead delays a multichannel signal by a fixed number of samples using
// one ring per channel. Each ring is pre-filled with the delay amount of
// zeros, so a push/pop of one block yields the block delayed by exactly
// that many samples while the queued content stays bounded.
type Lookahead struct {
	rings        []*Ring
	delaySamples int
}

// NewLookahead returns an unconfigured lookahead line (zero delay, no rings).
func NewLookahead() *Lookahead {
	return &Lookahead{}
}

// Reconfigure tears down the per-channel rings and rebuilds them for the
// given channel count and delay. A zero delay or zero channels succeeds and
// leaves the line inactive. blockEstimate is the expected block size used to
// reserve headroom beyond the delay amount; values <= 0 fall back to 1024.
//
// On error all rings are released and the line is inactive; callers are
// expected to disable lookahead entirely rather than abort processing.
func (l *Lookahead) Reconfigure(channels, delaySamples, blockEstimate int) error {
	l.rings = nil
	l.delaySamples = 0

	if channels <= 0 || delaySamples == 0 {
		return nil
	}
	if delaySamples < 0 {
		return fmt.Errorf("lookahead delay must be >= 0 samples: %d", delaySamples)
	}

	if blockEstimate <= 0 {
		blockEstimate = 1024
	}
	capacity := delaySamples + blockEstimate

	rings := make([]*Ring, channels)
	for c := range rings {
		ring, err := NewRing(capacity)
		if err != nil {
			l.rings = nil
			return fmt.Errorf("lookahead channel %d: %w", c, err)
		}
		ring.PushZeros(delaySamples)
		rings[c] = ring
	}

	l.rings = rings
	l.delaySamples = delaySamples

	return nil
}

// Active reports whether the line currently delays anything.
func (l *Lookahead) Active() bool {
	return len(l.rings) > 0 && l.delaySamples > 0
}

// DelaySamples returns the configured delay in samples.
func (l *Lookahead) DelaySamples() int {
	return l.delaySamples
}

// Channels returns the number of configured channel rings.
func (l *Lookahead) Channels() int {
	return len(l.rings)
}

// ProcessInPlace replaces the first frames samples of every channel with the
// delayed signal. Channels beyond the configured ring count are left
// untouched. If any ring turns out to be empty the whole block is passed
// through undelayed and false is returned; the caller should treat lookahead
// as inactive for this block.
func (l *Lookahead) ProcessInPlace(channels [][]float64, frames int) bool {
	if !l.Active() || frames <= 0 {
		return false
	}

	for c, ch := range channels {
		if c >= len(l.rings) {
			break
		}
		if ch == nil || len(ch) < frames {
			continue
		}
		if l.rings[c].Len() == 0 {
			return false
		}

		l.rings[c].PushBack(ch[:frames])
		l.rings[c].PopFront(ch[:frames])
	}

	return true
}

// Reset re-primes every ring: queued samples are discarded and the initial
// zero delay offset is restored.
func (l *Lookahead) Reset() {
	for _, ring := range l.rings {
		ring.Reset()
		ring.PushZeros(l.delaySamples)
	}
}
