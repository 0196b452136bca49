// SPDX-License-Identifier: EPL-2.0

// Package fx builds and runs chains of audio effect stages.
//
// A chain is described by a sparse Params value. Each field that is set
// contributes exactly one stage; Build orders them canonically:
//
//	filters (highpass, lowpass, low-shelf) -> compressor -> gain -> limiter
//
// Stages keep their filter and envelope state between calls, so one chain
// must see the chunks of a single stream in order. Chains are built per
// stream and never shared.
//
// # Gain
//
// GainDB sets a fixed gain. TargetLoudnessDB asks Build to measure the
// stream given with WithLoudnessSource and add target minus measured dB.
// When both are set the manual gain is used.
//
//	chain, err := fx.Build(fx.Params{
//	    HighpassCutoffHz: fx.Float(200),
//	    GainDB:           fx.Float(6),
//	}, 44100, 1)
//
// # Errors
//
// Parameter problems are reported as *InvalidParameterError before any
// audio is read. Chain.Process wraps a failing stage in *StageError.
package fx
