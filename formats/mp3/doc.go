// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files into
// float32 samples in [-1, 1].
//
// # Output Format
//
//   - Channels: always 2, mono files are duplicated by go-mp3
//   - Sample rate: whatever the file declares
//   - Frames: known when the input is an io.Seeker, -1 otherwise
//
// ReadSamples only ever returns whole stereo frames, so the destination
// length must be even. The source implements audio.Seeker.
//
//	source, err := mp3.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Limitations
//
// Writing MP3 is not supported. Use audio.NewMonoMixer for a single channel.
package mp3
