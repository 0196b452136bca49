// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audfx/audio"
)

// go-mp3 always produces interleaved 16-bit stereo.
const (
	channels      = 2
	bytesPerFrame = 4
)

var ErrSeekOutOfRange = errors.New("seek beyond MP3 stream")

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	io.ReadSeeker
	SampleRate() int
	// Length is the decoded stream size in bytes, -1 when unknown.
	Length() int64
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// bytes of a frame split across two decoder reads
	pending []byte
	pos     int64
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
		pending:    make([]byte, 0, bytesPerFrame),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 } // return sample capacity, not bytes
func (s *source) Position() int64 { return s.pos }

func (s *source) Frames() int64 {
	n := s.dec.Length()
	if n < 0 {
		return -1
	}

	return n / bytesPerFrame
}

func (s *source) SeekFrame(frame int64) error {
	if frames := s.Frames(); frame < 0 || (frames >= 0 && frame > frames) {
		return fmt.Errorf("frame %d: %w", frame, ErrSeekOutOfRange)
	}

	if _, err := s.dec.Seek(frame*bytesPerFrame, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	s.pending = s.pending[:0]
	s.pos = frame

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst) / channels * bytesPerFrame
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	n := copy(s.buf, s.pending)
	s.pending = s.pending[:0]

	m, err := s.dec.Read(s.buf[n:])
	n += m

	// only whole frames reach dst, the remainder waits for the next call
	whole := n / bytesPerFrame * bytesPerFrame
	s.pending = append(s.pending, s.buf[whole:n]...)

	samples := whole / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768.0
	}
	s.pos += int64(whole / bytesPerFrame)

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}

	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec), nil
}
