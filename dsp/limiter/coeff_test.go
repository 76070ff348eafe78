package limiter

import (
	"math"
	"testing"
)

func TestCoefficientDegenerateInputs(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		timeMs     float64
	}{
		{"zero sample rate", 0, 10},
		{"zero time", 48000, 0},
		{"negative time", 48000, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Coefficient(tt.sampleRate, tt.timeMs); got != 0 {
				t.Fatalf("Coefficient(%v, %v) = %v, want 0", tt.sampleRate, tt.timeMs, got)
			}
		})
	}
}

func TestCoefficientRange(t *testing.T) {
	for _, sr := range []float64{8000, 44100, 48000, 96000} {
		for _, ms := range []float64{0.1, 1, 60, 1000} {
			got := Coefficient(sr, ms)
			if got <= 0 || got >= 1 {
				t.Fatalf("Coefficient(%v, %v) = %v, want in (0, 1)", sr, ms, got)
			}
		}
	}
}

func TestCoefficientValue(t *testing.T) {
	got := Coefficient(48000, 1)
	want := math.Exp(-1 / (48000*0.001 + smallEpsilon))
	if got != want {
		t.Fatalf("Coefficient(48000, 1) = %v, want %v", got, want)
	}
}

func TestCoefficientMonotonicInTime(t *testing.T) {
	prev := 0.0
	for _, ms := range []float64{1, 5, 20, 100, 500, 1000} {
		got := Coefficient(48000, ms)
		if got <= prev {
			t.Fatalf("Coefficient(48000, %v) = %v, want > %v (longer time, slower smoother)", ms, got, prev)
		}
		prev = got
	}
}
