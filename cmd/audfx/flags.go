// SPDX-License-Identifier: EPL-2.0

package main

import (
	"github.com/ik5/audfx"
	"github.com/ik5/audfx/config"
	"github.com/ik5/audfx/fx"
)

// chainFlags override the configured chain. Unset flags keep the value
// from the config file or preset.
type chainFlags struct {
	NoPreset bool `help:"Start from an empty chain instead of the configured one."`

	Highpass *float64 `help:"Highpass cutoff in Hz." placeholder:"HZ" group:"Chain"`
	Lowpass  *float64 `help:"Lowpass cutoff in Hz." placeholder:"HZ" group:"Chain"`

	ShelfFreq *float64 `help:"Low-shelf cutoff in Hz." placeholder:"HZ" group:"Chain"`
	ShelfGain *float64 `help:"Low-shelf gain in dB." placeholder:"DB" group:"Chain"`
	ShelfQ    *float64 `help:"Low-shelf Q." placeholder:"Q" group:"Chain"`

	Threshold *float64 `help:"Compressor threshold in dB." placeholder:"DB" group:"Chain"`
	Ratio     *float64 `help:"Compressor ratio, 1 to 100." placeholder:"N" group:"Chain"`
	Attack    *float64 `help:"Compressor attack in ms." placeholder:"MS" group:"Chain"`
	Release   *float64 `help:"Compressor release in ms." placeholder:"MS" group:"Chain"`

	Gain    *float64 `help:"Manual gain in dB; wins over --target." placeholder:"DB" group:"Chain"`
	Target  *float64 `help:"Target level in dB for automatic gain." placeholder:"DB" group:"Chain"`
	Limiter *float64 `help:"Limiter ceiling in dBFS; above 0 the output still clips at full scale." placeholder:"DB" group:"Chain"`

	Chunk *float64 `help:"Chunk duration in seconds." placeholder:"S" group:"Chain"`
}

// outputFlags override file level settings.
type outputFlags struct {
	BitDepth    *int     `help:"Output bit depth, 16 or 24." placeholder:"BITS"`
	Suffix      *string  `help:"Suffix for derived output names."`
	ProbeWindow *float64 `help:"Seconds measured for automatic gain." placeholder:"S"`
}

// apply merges the flags into cfg and validates the result.
func (f *chainFlags) apply(cfg *config.Config, out outputFlags) error {
	if f.NoPreset || cfg.Chain == nil {
		cfg.Chain = &fx.Params{}
	}
	p := cfg.Chain

	set := func(dst **float64, v *float64) {
		if v != nil {
			*dst = fx.Float(*v)
		}
	}
	set(&p.HighpassCutoffHz, f.Highpass)
	set(&p.LowpassCutoffHz, f.Lowpass)
	set(&p.GainDB, f.Gain)
	set(&p.TargetLoudnessDB, f.Target)
	set(&p.LimiterThresholdDB, f.Limiter)
	// a target on the command line replaces a configured manual gain
	if f.Target != nil && f.Gain == nil {
		p.GainDB = nil
	}
	if f.Chunk != nil {
		cfg.ChunkDurationS = *f.Chunk
		p.ChunkDurationS = nil
	}

	if f.ShelfFreq != nil || f.ShelfGain != nil || f.ShelfQ != nil {
		if p.LowShelf == nil {
			p.LowShelf = &fx.LowShelfParams{}
		}
		setValue(&p.LowShelf.CutoffHz, f.ShelfFreq)
		setValue(&p.LowShelf.GainDB, f.ShelfGain)
		setValue(&p.LowShelf.Q, f.ShelfQ)
	}

	if f.Threshold != nil || f.Ratio != nil || f.Attack != nil || f.Release != nil {
		if p.Compressor == nil {
			p.Compressor = &fx.CompressorParams{Ratio: 1}
		}
		setValue(&p.Compressor.ThresholdDB, f.Threshold)
		setValue(&p.Compressor.Ratio, f.Ratio)
		setValue(&p.Compressor.AttackMs, f.Attack)
		setValue(&p.Compressor.ReleaseMs, f.Release)
	}

	if out.BitDepth != nil {
		cfg.BitDepth = *out.BitDepth
	}
	if out.Suffix != nil {
		cfg.Suffix = *out.Suffix
	}
	if out.ProbeWindow != nil {
		cfg.ProbeWindowS = *out.ProbeWindow
	}

	return cfg.Validate()
}

func setValue(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// fileOptions are the audfx options for cfg plus the command's logger.
func fileOptions(rc *runContext, extra ...audfx.Option) []audfx.Option {
	opts := append(rc.cfg.FileOptions(), audfx.WithLogger(rc.logger))
	return append(opts, extra...)
}
