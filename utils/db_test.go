// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestDBConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		db   float64
		gain float64
	}{
		{0, 1},
		{-20, 0.1},
		{20, 10},
		{6.0206, 2},
		{-6.0206, 0.5},
	}

	for _, tt := range tests {
		if got := DBToGain(tt.db); math.Abs(got-tt.gain) > 1e-4 {
			t.Errorf("DBToGain(%v) = %v, want %v", tt.db, got, tt.gain)
		}
		if got := GainToDB(tt.gain); math.Abs(got-tt.db) > 1e-3 {
			t.Errorf("GainToDB(%v) = %v, want %v", tt.gain, got, tt.db)
		}
	}

	if !math.IsInf(GainToDB(0), -1) {
		t.Error("GainToDB(0) should be -Inf")
	}
}

func TestRMS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []float32
		want    float64
	}{
		{"empty", nil, 0},
		{"silence", []float32{0, 0, 0}, 0},
		{"constant", []float32{0.1, -0.1, 0.1, -0.1}, 0.1},
		{"square", []float32{1, -1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RMS(tt.samples); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("RMS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFinite(t *testing.T) {
	t.Parallel()

	if !Finite([]float32{0, 1, -1}) {
		t.Error("Finite() = false for ordinary samples")
	}
	if Finite([]float32{0, float32(math.NaN())}) {
		t.Error("Finite() = true with NaN")
	}
	if Finite([]float32{float32(math.Inf(1))}) {
		t.Error("Finite() = true with +Inf")
	}
}
