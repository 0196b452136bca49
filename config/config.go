// SPDX-License-Identifier: EPL-2.0

// Package config loads processing presets from YAML files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/batch"
	"github.com/ik5/audfx/fx"
	"github.com/ik5/audfx/loudness"
)

type Config struct {
	// Chain replaces the preset as a whole when present in the file;
	// "chain: {}" selects a pass-through chain.
	Chain *fx.Params `yaml:"chain"`

	ChunkDurationS float64 `yaml:"chunk_duration_s"`
	Suffix         string  `yaml:"suffix"`
	// BitDepth of the WAV output, 16 or 24.
	BitDepth int `yaml:"bit_depth"`
	// Workers bounds batch parallelism; 0 means one per CPU.
	Workers      int     `yaml:"workers"`
	ProbeWindowS float64 `yaml:"probe_window_s"`
	// OutputDir is used by batch runs; empty writes next to each input.
	OutputDir string `yaml:"output_dir"`
}

// Preset is the voice chain used when no chain is configured: a 200 Hz
// highpass, a -32 dB 4:1 compressor with 10 ms attack, and 27 dB of gain.
func Preset() fx.Params {
	return fx.Params{
		HighpassCutoffHz: fx.Float(200),
		Compressor: &fx.CompressorParams{
			ThresholdDB: -32,
			Ratio:       4,
			AttackMs:    10,
		},
		GainDB: fx.Float(27),
	}
}

func Default() *Config {
	p := Preset()

	return &Config{
		Chain:          &p,
		ChunkDurationS: fx.DefaultChunkDuration.Seconds(),
		Suffix:         audfx.DefaultSuffix,
		BitDepth:       audfx.DefaultBitDepth,
		ProbeWindowS:   loudness.DefaultWindow.Seconds(),
	}
}

// Load reads a YAML config. Settings missing from the file keep their
// Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	cfg.Chain = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Chain == nil {
		p := Preset()
		cfg.Chain = &p
	}

	return cfg, nil
}

// Validate checks the chain parameters and the file level settings.
func (c *Config) Validate() error {
	if c.Chain != nil {
		if err := c.Chain.Validate(); err != nil {
			return err
		}
	}

	switch {
	case !fx.ValidChunkSeconds(c.ChunkDurationS):
		return invalid("chunk_duration_s", c.ChunkDurationS, "must be above 0 and at most 3600")
	case c.BitDepth != 16 && c.BitDepth != 24:
		return invalid("bit_depth", c.BitDepth, "must be 16 or 24")
	case c.Workers < 0:
		return invalid("workers", c.Workers, "must not be negative")
	case !(c.ProbeWindowS > 0):
		return invalid("probe_window_s", c.ProbeWindowS, "must be positive")
	case c.Suffix == "":
		return invalid("suffix", c.Suffix, "must not be empty")
	}

	return nil
}

func invalid(param string, v any, reason string) error {
	return &fx.InvalidParameterError{Param: param, Value: v, Reason: reason}
}

// Params returns the chain with the configured chunk duration filled in.
func (c *Config) Params() fx.Params {
	var p fx.Params
	if c.Chain != nil {
		p = *c.Chain
	}
	if p.ChunkDurationS == nil && c.ChunkDurationS > 0 {
		p.ChunkDurationS = fx.Float(c.ChunkDurationS)
	}

	return p
}

func (c *Config) ProbeWindow() time.Duration {
	return time.Duration(c.ProbeWindowS * float64(time.Second))
}

// FileOptions are the audfx options matching c.
func (c *Config) FileOptions() []audfx.Option {
	return []audfx.Option{
		audfx.WithBitDepth(c.BitDepth),
		audfx.WithSuffix(c.Suffix),
		audfx.WithProbeWindow(c.ProbeWindow()),
	}
}

// BatchOptions are the batch options matching c, file options included.
func (c *Config) BatchOptions() []batch.Option {
	return []batch.Option{
		batch.WithWorkers(c.Workers),
		batch.WithSuffix(c.Suffix),
		batch.WithOutputDir(c.OutputDir),
		batch.WithFileOptions(c.FileOptions()...),
	}
}
