// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audfx/audio"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// source streams raw PCM straight from the data chunk located by go-audio/wav.
type source struct {
	r          io.ReadSeeker
	sampleRate int
	channels   int
	bitDepth   int
	float      bool

	dataStart int64
	frames    int64
	pos       int64

	buf []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return len(s.buf) / s.frameSize() * s.channels }
func (s *source) Frames() int64   { return s.frames }
func (s *source) Position() int64 { return s.pos }

func (s *source) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func (s *source) frameSize() int { return s.channels * s.bitDepth / 8 }

func (s *source) SeekFrame(frame int64) error {
	if frame < 0 || frame > s.frames {
		return fmt.Errorf("frame %d of %d: %w", frame, s.frames, ErrSeekOutOfRange)
	}

	if _, err := s.r.Seek(s.dataStart+frame*int64(s.frameSize()), io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	s.pos = frame

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	frames := min(int64(len(dst)/s.channels), s.frames-s.pos)
	if frames <= 0 {
		return 0, io.EOF
	}

	size := int(frames) * s.frameSize()
	if cap(s.buf) < size {
		s.buf = make([]byte, size)
	}
	s.buf = s.buf[:size]

	n, err := io.ReadFull(s.r, s.buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("%w", err)
	}

	// drop a trailing partial frame of a truncated file
	got := n / s.frameSize()
	samples := got * s.channels
	bps := s.bitDepth / 8
	for i := range samples {
		dst[i] = s.decode(s.buf[i*bps : (i+1)*bps])
	}
	s.pos += int64(got)

	if err == io.ErrUnexpectedEOF || s.pos >= s.frames {
		// a truncated data chunk ends the stream early
		s.frames = s.pos
		return samples, io.EOF
	}

	return samples, nil
}

func (s *source) decode(b []byte) float32 {
	switch s.bitDepth {
	case 8:
		return (float32(b[0]) - 128) / 128
	case 16:
		return float32(int16(binary.LittleEndian.Uint16(b))) / 32768
	case 24:
		v := int32(b[0]) | int32(b[1])<<8 | int32(int8(b[2]))<<16
		return float32(v) / 8388608
	default:
		u := binary.LittleEndian.Uint32(b)
		if s.float {
			return math.Float32frombits(u)
		}
		return float32(float64(int32(u)) / 2147483648)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio/wav walks chunks with Seek, so buffer non seekable input
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	float := false
	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	case formatIEEEFloat:
		float = true
	default:
		return nil, fmt.Errorf("format tag %d: %w", dec.WavAudioFormat, ErrUnsupportedEncoding)
	}

	bitDepth := int(dec.BitDepth)
	switch {
	case float && bitDepth == 32:
	case !float && (bitDepth == 8 || bitDepth == 16 || bitDepth == 24 || bitDepth == 32):
	default:
		return nil, fmt.Errorf("%d-bit: %w", bitDepth, ErrUnsupportedEncoding)
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}
	if dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s := &source{
		r:          rs,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   bitDepth,
		float:      float,
		dataStart:  start,
	}
	s.frames = int64(dec.PCMSize / s.frameSize())
	s.buf = make([]byte, 4096*s.frameSize())

	return s, nil
}
