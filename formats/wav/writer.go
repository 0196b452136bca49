// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

// Writer is an audio.Sink producing an integer PCM WAV file.
//
// The encoder is created on the first Write, taking sample rate and channel
// count from that chunk. Later chunks must match.
type Writer struct {
	w        io.WriteSeeker
	closer   io.Closer
	bitDepth int

	enc        *gowav.Encoder
	sampleRate int
	channels   int
	frames     int64
	buf        *goaudio.IntBuffer
	closed     bool
}

// NewWriter returns a Writer encoding to w. bitDepth is 16 or 24.
// The caller keeps ownership of w.
func NewWriter(w io.WriteSeeker, bitDepth int) (*Writer, error) {
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("%d: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	return &Writer{w: w, bitDepth: bitDepth}, nil
}

// Create opens path for writing and returns a Writer that closes the file
// on Close.
func Create(path string, bitDepth int) (*Writer, error) {
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("%d: %w", bitDepth, ErrUnsupportedBitDepth)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &Writer{w: f, closer: f, bitDepth: bitDepth}, nil
}

func (w *Writer) SampleRate() int { return w.sampleRate }
func (w *Writer) Channels() int   { return w.channels }
func (w *Writer) BitDepth() int   { return w.bitDepth }

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int64 { return w.frames }

func (w *Writer) Write(c *audio.Chunk) error {
	if w.closed {
		return ErrWriterClosed
	}

	if w.enc == nil {
		if c.SampleRate <= 0 || c.Channels <= 0 {
			return fmt.Errorf("%d Hz/%d ch: %w", c.SampleRate, c.Channels, audio.ErrFormatChanged)
		}
		w.sampleRate = c.SampleRate
		w.channels = c.Channels
		w.enc = gowav.NewEncoder(w.w, w.sampleRate, w.bitDepth, w.channels, formatPCM)
		w.buf = &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: w.channels, SampleRate: w.sampleRate},
			SourceBitDepth: w.bitDepth,
		}
	} else if c.SampleRate != w.sampleRate || c.Channels != w.channels {
		return fmt.Errorf("%d Hz/%d ch after %d Hz/%d ch: %w",
			c.SampleRate, c.Channels, w.sampleRate, w.channels, audio.ErrFormatChanged)
	}

	if cap(w.buf.Data) < len(c.Data) {
		w.buf.Data = make([]int, len(c.Data))
	}
	w.buf.Data = w.buf.Data[:len(c.Data)]
	for i, v := range c.Data {
		w.buf.Data[i] = utils.FloatToPCM(v, w.bitDepth)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.frames += int64(c.Frames())

	return nil
}

// Close finalizes the WAV headers and closes the file opened by Create.
// Nothing is encoded when Write was never called.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if w.enc != nil {
		if err := w.enc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("finalize wav: %w", err))
		}
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w", err))
		}
	}

	return errors.Join(errs...)
}
