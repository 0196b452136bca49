// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"math"
	"time"
)

const (
	// DefaultChunkDuration is used when Params.ChunkDurationS is not set.
	DefaultChunkDuration = time.Second
	// MaxChunkDuration bounds a chunk so its buffer stays allocatable.
	MaxChunkDuration = time.Hour
)

// LowShelfParams configures the low-shelf stage. A zero Q selects DefaultQ.
type LowShelfParams struct {
	CutoffHz float64 `yaml:"cutoff_hz"`
	GainDB   float64 `yaml:"gain_db"`
	Q        float64 `yaml:"q"`
}

// CompressorParams configures the compressor stage. A zero ReleaseMs
// selects DefaultReleaseMs.
type CompressorParams struct {
	ThresholdDB float64 `yaml:"threshold_db"`
	Ratio       float64 `yaml:"ratio"`
	AttackMs    float64 `yaml:"attack_ms"`
	ReleaseMs   float64 `yaml:"release_ms"`
}

// Params is the sparse description of a chain. A nil field contributes no
// stage; the zero Params builds a pass-through chain.
type Params struct {
	HighpassCutoffHz   *float64          `yaml:"highpass_cutoff_hz"`
	LowpassCutoffHz    *float64          `yaml:"lowpass_cutoff_hz"`
	LowShelf           *LowShelfParams   `yaml:"low_shelf"`
	Compressor         *CompressorParams `yaml:"compressor"`
	GainDB             *float64          `yaml:"gain_db"`
	TargetLoudnessDB   *float64          `yaml:"target_loudness_db"`
	LimiterThresholdDB *float64          `yaml:"limiter_threshold_db"`
	ChunkDurationS     *float64          `yaml:"chunk_duration_s"`
}

// Float returns a pointer to v, for filling Params literals.
func Float(v float64) *float64 { return &v }

// Empty reports whether no stage parameter is set.
func (p Params) Empty() bool {
	return p.HighpassCutoffHz == nil && p.LowpassCutoffHz == nil && p.LowShelf == nil &&
		p.Compressor == nil && p.GainDB == nil && p.TargetLoudnessDB == nil &&
		p.LimiterThresholdDB == nil
}

// AutoGain reports whether building the chain needs a loudness measurement.
func (p Params) AutoGain() bool {
	return p.TargetLoudnessDB != nil && p.GainDB == nil
}

// ChunkDuration returns the configured chunk length or DefaultChunkDuration.
func (p Params) ChunkDuration() time.Duration {
	if p.ChunkDurationS == nil {
		return DefaultChunkDuration
	}

	return time.Duration(*p.ChunkDurationS * float64(time.Second))
}

// Validate checks every rule that does not depend on the stream format.
func (p Params) Validate() error {
	if v := p.HighpassCutoffHz; v != nil && !positive(*v) {
		return invalid("highpass_cutoff_hz", *v, "must be positive")
	}
	if v := p.LowpassCutoffHz; v != nil && !positive(*v) {
		return invalid("lowpass_cutoff_hz", *v, "must be positive")
	}

	if s := p.LowShelf; s != nil {
		if !positive(s.CutoffHz) {
			return invalid("low_shelf.cutoff_hz", s.CutoffHz, "must be positive")
		}
		if !finite(s.GainDB) {
			return invalid("low_shelf.gain_db", s.GainDB, "must be finite")
		}
		if s.Q < 0 || !finite(s.Q) {
			return invalid("low_shelf.q", s.Q, "must not be negative")
		}
	}

	if c := p.Compressor; c != nil {
		if !finite(c.ThresholdDB) {
			return invalid("compressor.threshold_db", c.ThresholdDB, "must be finite")
		}
		if !(c.Ratio >= 1 && c.Ratio <= 100) {
			return invalid("compressor.ratio", c.Ratio, "must be in [1, 100]")
		}
		if !(c.AttackMs >= 0 && c.AttackMs <= 1000) {
			return invalid("compressor.attack_ms", c.AttackMs, "must be in [0, 1000]")
		}
		if c.ReleaseMs != 0 && !(c.ReleaseMs >= 1 && c.ReleaseMs <= 5000) {
			return invalid("compressor.release_ms", c.ReleaseMs, "must be in [1, 5000]")
		}
	}

	if v := p.GainDB; v != nil {
		if _, ok := gainFactor(*v); !ok {
			return invalid("gain_db", *v, "must be finite with a representable factor")
		}
	}
	if v := p.TargetLoudnessDB; v != nil && !finite(*v) {
		return invalid("target_loudness_db", *v, "must be finite")
	}
	if v := p.LimiterThresholdDB; v != nil && !finite(*v) {
		return invalid("limiter_threshold_db", *v, "must be finite")
	}
	if v := p.ChunkDurationS; v != nil && !ValidChunkSeconds(*v) {
		return invalid("chunk_duration_s", *v, "must be above 0 and at most 3600")
	}

	return nil
}

// ValidChunkSeconds reports whether s seconds is a usable chunk length:
// at least one nanosecond and at most MaxChunkDuration.
func ValidChunkSeconds(s float64) bool {
	if !positive(s) || s > MaxChunkDuration.Seconds() {
		return false
	}

	return time.Duration(s*float64(time.Second)) > 0
}

func finite(v float64) bool   { return !math.IsNaN(v) && !math.IsInf(v, 0) }
func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
