// SPDX-License-Identifier: EPL-2.0

// Package loudness measures the level of audio streams.
//
// Estimate computes a plain RMS level over a bounded window and is what
// automatic gain is derived from:
//
//	m, err := loudness.Estimate(src, 10*time.Second)
//	gain := target - m.DB
//
// A window of digital silence has no finite level and yields a
// *SilentInputError.
//
// Analyze runs a whole stream through a BS.1770 meter from
// github.com/cwbudde/algo-dsp and reports integrated and momentary loudness
// alongside peak and RMS levels.
package loudness
