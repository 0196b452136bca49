// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Chunk parsing is delegated to github.com/go-audio/wav. Once the data
// chunk is located, samples are read straight from the underlying reader so
// that the stream stays seekable by frame.
//
// # Supported Formats
//
// Decoding:
//   - PCM 8-bit (unsigned), 16-bit, 24-bit and 32-bit
//   - IEEE float 32-bit
//   - any channel count and sample rate
//
// Encoding:
//   - PCM 16-bit and 24-bit
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The returned source reports its length with Frames and implements
// audio.Seeker. Input that is not an io.ReadSeeker is buffered in memory
// first, since the RIFF parser needs to seek.
//
// # Writing WAV Files
//
// Writer is an audio.Sink. The first chunk decides the sample rate and
// channel count of the file; later chunks with a different format are
// rejected with audio.ErrFormatChanged:
//
//	w, err := wav.Create("output.wav", 16)
//	for _, c := range chunks {
//	    if err := w.Write(c); err != nil {
//	        // Handle error
//	    }
//	}
//	err = w.Close() // finalizes RIFF and data sizes
//
// Samples outside [-1, 1] are clamped during conversion to integers.
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedEncoding: compressed or unusual sample encodings
//   - ErrUnsupportedWavChunks: no data chunk could be found
//   - ErrUnsupportedBitDepth: output depth other than 16 or 24
//   - ErrSeekOutOfRange: SeekFrame beyond the data chunk
//   - ErrWriterClosed: Write after Close
package wav
