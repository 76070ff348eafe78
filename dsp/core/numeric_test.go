package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		min   float64
		max   float64
		want  float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"swapped bounds", 0.5, 1, 0, 0.5},
		{"at min", 0, 0, 1, 0},
		{"at max", 1, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.min, tt.max); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want bool
	}{
		{"zero", 0, true},
		{"negative", -1.5, true},
		{"nan", math.NaN(), false},
		{"pos inf", math.Inf(1), false},
		{"neg inf", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.v); got != tt.want {
				t.Fatalf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestCoerceFinite(t *testing.T) {
	if got := CoerceFinite(0.25); got != 0.25 {
		t.Fatalf("CoerceFinite(0.25) = %v, want 0.25", got)
	}
	if got := CoerceFinite(math.NaN()); got != 0 {
		t.Fatalf("CoerceFinite(NaN) = %v, want 0", got)
	}
	if got := CoerceFinite(math.Inf(-1)); got != 0 {
		t.Fatalf("CoerceFinite(-Inf) = %v, want 0", got)
	}
}

func TestDBToLinear(t *testing.T) {
	tests := []struct {
		db   float64
		want float64
	}{
		{0, 1},
		{20, 10},
		{-20, 0.1},
		{-6.0205999132796239, 0.5},
	}

	for _, tt := range tests {
		if got := DBToLinear(tt.db); !NearlyEqual(got, tt.want, 1e-12) {
			t.Fatalf("DBToLinear(%v) = %v, want %v", tt.db, got, tt.want)
		}
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(1); !NearlyEqual(got, 0, 1e-12) {
		t.Fatalf("LinearToDB(1) = %v, want 0", got)
	}
	if got := LinearToDB(10); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("LinearToDB(10) = %v, want 20", got)
	}
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %v, want -Inf", got)
	}
	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %v, want NaN", got)
	}
}

func TestLinearToDBRoundTrip(t *testing.T) {
	for _, db := range []float64{-60, -20, -6, -0.3, 0} {
		got := LinearToDB(DBToLinear(db))
		if !NearlyEqual(got, db, 1e-9) {
			t.Fatalf("round trip %v dB = %v", db, got)
		}
	}
}
