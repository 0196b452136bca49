// SPDX-License-Identifier: EPL-2.0

// Package audio provides the stream primitives the effects pipeline is built on.
//
// This package contains the core building blocks:
//   - Source interface for chunked, position-tracked audio input
//   - Sink interface for sequential output
//   - Chunk, the unit handed through an effect chain
//   - MonoMixer and ChannelExtractor for channel selection
//   - Window for reading a time range out of a stream
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of audio input:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Frames() int64
//	    Position() int64
//	    Close() error
//	}
//
// Frames reports the total length of the stream in frames, or -1 when the
// codec cannot tell up front. Position is the read cursor; it only ever
// moves forward unless the source also implements Seeker:
//
//	type Seeker interface {
//	    SeekFrame(frame int64) error
//	}
//
// ReadSamples may return fewer values than requested. ReadFull keeps
// reading until a buffer is full or the stream ends, which is what the
// streaming session uses to assemble fixed-size chunks.
//
// # Sink Interface
//
// A Sink accepts chunks in call order. The first chunk fixes the sink's
// sample rate and channel count; any later chunk with a different format is
// rejected with ErrFormatChanged. The pipeline never resamples or remixes,
// so the output format is always the input format.
//
// # Channel Selection
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//
// The ChannelExtractor keeps a single channel (0 is left):
//
//	left, err := audio.NewChannelExtractor(source, 0)
//
// # Windows
//
// NewWindow exposes a frame range of a source as its own stream. Seekable
// sources jump straight to the start frame; others are read and discarded
// up to it:
//
//	w, err := audio.NewWindow(source, 30*rate, 90*rate)
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("take.wav")
//
// # Sample Format
//
// Audio samples are represented as float32, nominally in [-1.0, 1.0].
// Effect stages may push values beyond that range; the output writer clamps
// when converting back to integer PCM.
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. io.EOF may be
// returned together with the final samples:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process buf[:n] first
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
