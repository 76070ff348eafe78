// Package spectrum computes magnitude spectra of real-valued signals, used
// to verify limiter behavior such as added distortion and gain modulation.
package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Analyzer turns real-valued blocks into single-sided magnitude spectra.
// The FFT size is the next power of two at or above the analysis length;
// shorter inputs are zero padded, a Hann window tapers the edges.
type Analyzer struct {
	sampleRate float64
	fftSize    int

	plan   *algofft.Plan[complex128]
	window []float64

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
}

// NewAnalyzer creates an analyzer for signals of up to length samples.
func NewAnalyzer(sampleRate float64, length int) (*Analyzer, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}
	if length <= 1 {
		return nil, fmt.Errorf("spectrum: analysis length must be > 1: %d", length)
	}

	fftSize := nextPowerOf2(length)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: create FFT plan: %w", err)
	}

	return &Analyzer{
		sampleRate: sampleRate,
		fftSize:    fftSize,
		plan:       plan,
		window:     hann(length),
		in:         make([]complex128, fftSize),
		out:        make([]complex128, fftSize),
		re:         make([]float64, fftSize/2+1),
		im:         make([]float64, fftSize/2+1),
	}, nil
}

// FFTSize returns the transform size in samples.
func (a *Analyzer) FFTSize() int { return a.fftSize }

// BinWidth returns the frequency spacing between adjacent bins in Hz.
func (a *Analyzer) BinWidth() float64 { return a.sampleRate / float64(a.fftSize) }

// Magnitude computes the single-sided magnitude spectrum of signal, bins
// [0..Nyquist]. Inputs longer than the configured analysis length fail.
func (a *Analyzer) Magnitude(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("spectrum: input must not be empty")
	}
	if len(signal) > a.fftSize {
		return nil, fmt.Errorf("spectrum: input length %d exceeds FFT size %d", len(signal), a.fftSize)
	}

	for i := range a.in {
		a.in[i] = 0
	}
	for i, v := range signal {
		w := 1.0
		if i < len(a.window) {
			w = a.window[i]
		}
		a.in[i] = complex(v*w, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT: %w", err)
	}

	bins := a.fftSize/2 + 1
	for i := 0; i < bins; i++ {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, a.re[:bins], a.im[:bins])

	return mag, nil
}

// PeakFrequency returns the frequency and magnitude of the strongest bin
// above DC in the given magnitude spectrum.
func (a *Analyzer) PeakFrequency(mag []float64) (freqHz, magnitude float64) {
	peakBin := 0
	for i := 1; i < len(mag); i++ {
		if mag[i] > magnitude {
			magnitude = mag[i]
			peakBin = i
		}
	}

	return float64(peakBin) * a.BinWidth(), magnitude
}

func hann(length int) []float64 {
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(length-1)))
	}

	return w
}

func nextPowerOf2(n int) int {
	size := 1
	for size < n {
		size *= 2
	}

	return size
}
