// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio decoding.
//
// Decoding is done by github.com/jfreymuth/oggvorbis, which yields
// interleaved float32 samples already clamped to [-1, 1].
//
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
// When the input is an io.ReadSeeker the stream length is known up front
// and the source implements audio.Seeker. Otherwise Frames returns -1 and
// SeekFrame fails.
package vorbis
