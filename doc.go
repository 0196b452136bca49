// SPDX-License-Identifier: EPL-2.0

// Package audfx applies effect chains to audio files.
//
// The package ties the lower layers together: a decoder is picked from the
// file extension, an fx.Chain is built from Params, and a session.Session
// streams the input through the chain into a WAV file, one chunk at a time.
//
// # Supported Formats
//
// Input is decoded by the registry returned by DefaultRegistry:
//   - WAV (8/16/24/32-bit integer and 32-bit float PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (8/16/24/32-bit PCM) via formats/aiff
//
// Output is always WAV, 16-bit by default or 24-bit with WithBitDepth.
//
// # Quick Start
//
//	res, err := audfx.ProcessFile(ctx, "voice.mp3", "", fx.Params{
//	    HighpassCutoffHz: fx.Float(200),
//	    Compressor:       &fx.CompressorParams{ThresholdDB: -32, Ratio: 4, AttackMs: 10},
//	    GainDB:           fx.Float(27),
//	})
//	// res.Output is "voice_processed.wav"
//
// Setting TargetLoudnessDB instead of GainDB measures the first seconds of
// the input and picks the gain that brings it to the target level.
//
// # Utilities
//
// MakeSample cuts a time range out of a file and ExtractChannel keeps a
// single channel or downmixes to mono. Both stream through a session with
// an empty chain, so they share its error handling and cancellation.
//
// # Errors
//
// Parameter problems are *fx.InvalidParameterError and are reported before
// any file is opened. An unreadable input is *InputOpenError. Failures while
// streaming are the session package errors, which carry the chunk index.
package audfx
