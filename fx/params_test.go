// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	comp := func(thr, ratio, attack, release float64) *CompressorParams {
		return &CompressorParams{ThresholdDB: thr, Ratio: ratio, AttackMs: attack, ReleaseMs: release}
	}

	tests := []struct {
		name  string
		p     Params
		param string // empty when valid
	}{
		{"empty", Params{}, ""},
		{"full", Params{
			HighpassCutoffHz:   Float(80),
			LowpassCutoffHz:    Float(12000),
			LowShelf:           &LowShelfParams{CutoffHz: 100, GainDB: -3},
			Compressor:         comp(-32, 4, 10, 0),
			GainDB:             Float(27),
			TargetLoudnessDB:   Float(-16),
			LimiterThresholdDB: Float(0),
			ChunkDurationS:     Float(0.5),
		}, ""},
		{"negative highpass", Params{HighpassCutoffHz: Float(-200)}, "highpass_cutoff_hz"},
		{"zero lowpass", Params{LowpassCutoffHz: Float(0)}, "lowpass_cutoff_hz"},
		{"nan cutoff", Params{HighpassCutoffHz: Float(math.NaN())}, "highpass_cutoff_hz"},
		{"shelf cutoff", Params{LowShelf: &LowShelfParams{CutoffHz: 0}}, "low_shelf.cutoff_hz"},
		{"shelf q", Params{LowShelf: &LowShelfParams{CutoffHz: 100, Q: -0.5}}, "low_shelf.q"},
		{"ratio below one", Params{Compressor: comp(-20, 0.5, 10, 0)}, "compressor.ratio"},
		{"missing ratio", Params{Compressor: comp(-20, 0, 10, 0)}, "compressor.ratio"},
		{"negative attack", Params{Compressor: comp(-20, 4, -1, 0)}, "compressor.attack_ms"},
		{"release too short", Params{Compressor: comp(-20, 4, 10, 0.5)}, "compressor.release_ms"},
		{"infinite threshold", Params{Compressor: comp(math.Inf(-1), 4, 10, 0)}, "compressor.threshold_db"},
		{"nan gain", Params{GainDB: Float(math.NaN())}, "gain_db"},
		{"infinite target", Params{TargetLoudnessDB: Float(math.Inf(1))}, "target_loudness_db"},
		{"limiter above full scale", Params{LimiterThresholdDB: Float(3)}, ""},
		{"nan limiter", Params{LimiterThresholdDB: Float(math.NaN())}, "limiter_threshold_db"},
		{"gain overflows float32", Params{GainDB: Float(800)}, "gain_db"},
		{"chunk overflows duration", Params{ChunkDurationS: Float(1e10)}, "chunk_duration_s"},
		{"chunk over an hour", Params{ChunkDurationS: Float(3601)}, "chunk_duration_s"},
		{"chunk under a nanosecond", Params{ChunkDurationS: Float(1e-12)}, "chunk_duration_s"},
		{"zero chunk", Params{ChunkDurationS: Float(0)}, "chunk_duration_s"},
		{"negative chunk", Params{ChunkDurationS: Float(-1)}, "chunk_duration_s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.p.Validate()
			if tt.param == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var invalid *InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("Validate() error = %v, want InvalidParameterError", err)
			}
			if invalid.Param != tt.param {
				t.Errorf("Param = %q, want %q", invalid.Param, tt.param)
			}
		})
	}
}

func TestParams_ChunkDuration(t *testing.T) {
	t.Parallel()

	if got := (Params{}).ChunkDuration(); got != time.Second {
		t.Errorf("default ChunkDuration() = %v, want 1s", got)
	}
	if got := (Params{ChunkDurationS: Float(0.25)}).ChunkDuration(); got != 250*time.Millisecond {
		t.Errorf("ChunkDuration() = %v, want 250ms", got)
	}
}

func TestParams_Flags(t *testing.T) {
	t.Parallel()

	if !(Params{}).Empty() || !(Params{ChunkDurationS: Float(2)}).Empty() {
		t.Error("Empty() = false for a parameter set without stages")
	}
	if (Params{GainDB: Float(0)}).Empty() {
		t.Error("Empty() = true with gain set")
	}

	if !(Params{TargetLoudnessDB: Float(-9)}).AutoGain() {
		t.Error("AutoGain() = false with only a target")
	}
	if (Params{TargetLoudnessDB: Float(-9), GainDB: Float(1)}).AutoGain() {
		t.Error("AutoGain() = true with manual gain")
	}
}

func TestInvalidParameterError_Message(t *testing.T) {
	t.Parallel()

	err := &InvalidParameterError{Param: "compressor.ratio", Value: 0.5, Reason: "must be in [1, 100]"}
	want := "invalid parameter compressor.ratio=0.5: must be in [1, 100]"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
