// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ik5/audfx/config"
	"github.com/ik5/audfx/fx"
)

func parse(t *testing.T, args ...string) *CLI {
	t.Helper()

	var c CLI
	parser, err := kong.New(&c, kong.Name("audfx"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}

	return &c
}

func TestChainFlags_OverridePreset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := dir + "/in.wav"
	touchFile(t, in)

	c := parse(t, "process", "--highpass=120", "--ratio=8", "--gain=3", "--bit-depth=24", in)

	cfg := config.Default()
	if err := c.Process.apply(cfg, c.Process.outputFlags); err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	p := cfg.Params()
	if *p.HighpassCutoffHz != 120 || *p.GainDB != 3 {
		t.Errorf("highpass/gain = %v/%v, want 120/3", *p.HighpassCutoffHz, *p.GainDB)
	}
	if p.Compressor.Ratio != 8 || p.Compressor.ThresholdDB != -32 {
		t.Errorf("compressor = %+v, want preset threshold with ratio 8", p.Compressor)
	}
	if cfg.BitDepth != 24 {
		t.Errorf("BitDepth = %d, want 24", cfg.BitDepth)
	}
}

func TestChainFlags_NoPreset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := dir + "/in.wav"
	touchFile(t, in)

	c := parse(t, "process", "--no-preset", "--target=-16", "--limiter=-1", "--chunk=0.25", in)

	cfg := config.Default()
	if err := c.Process.apply(cfg, c.Process.outputFlags); err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	p := cfg.Params()
	if p.HighpassCutoffHz != nil || p.Compressor != nil || p.GainDB != nil {
		t.Errorf("preset stages kept: %+v", p)
	}
	if !p.AutoGain() || *p.LimiterThresholdDB != -1 {
		t.Errorf("chain = %+v, want auto gain and limiter", p)
	}
	if p.ChunkDuration().Seconds() != 0.25 {
		t.Errorf("ChunkDuration() = %v, want 250ms", p.ChunkDuration())
	}
}

func TestChainFlags_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := dir + "/in.wav"
	touchFile(t, in)

	c := parse(t, "process", "--no-preset", "--threshold=-20", in)

	// a compressor without --ratio starts at 1:1, which is valid
	if err := c.Process.apply(config.Default(), c.Process.outputFlags); err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	c = parse(t, "process", "--chunk=1e10", in)

	var invalid *fx.InvalidParameterError
	if err := c.Process.apply(config.Default(), c.Process.outputFlags); !errors.As(err, &invalid) {
		t.Errorf("apply() error = %v, want InvalidParameterError", err)
	}
}

func TestChainFlags_TargetReplacesPresetGain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := dir + "/in.wav"
	touchFile(t, in)

	c := parse(t, "process", "--target=-14", in)

	cfg := config.Default()
	if err := c.Process.apply(cfg, c.Process.outputFlags); err != nil {
		t.Fatalf("apply() error = %v", err)
	}

	p := cfg.Params()
	if !p.AutoGain() || p.GainDB != nil || *p.TargetLoudnessDB != -14 {
		t.Errorf("chain = %+v, want automatic gain to -14 dB", p)
	}
	if p.HighpassCutoffHz == nil || p.Compressor == nil {
		t.Errorf("preset filter and compressor dropped: %+v", p)
	}

	c = parse(t, "process", "--target=-14", "--gain=3", in)
	cfg = config.Default()
	if err := c.Process.apply(cfg, c.Process.outputFlags); err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	if p := cfg.Params(); p.AutoGain() || *p.GainDB != 3 {
		t.Errorf("chain = %+v, want manual gain 3 dB to win", p)
	}
}
