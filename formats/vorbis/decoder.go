// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audfx/audio"
)

var ErrSeekOutOfRange = errors.New("seek beyond Ogg Vorbis stream")

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read fills p with interleaved samples and returns the number of values.
	Read(p []float32) (int, error)
	// Length in frames, 0 when the input is not seekable.
	Length() int64
	SetPosition(pos int64) error
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	pos        int64
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Position() int64 { return s.pos }

func (s *source) Frames() int64 {
	if n := s.dec.Length(); n > 0 {
		return n
	}

	return -1
}

func (s *source) SeekFrame(frame int64) error {
	if frames := s.Frames(); frame < 0 || (frames >= 0 && frame > frames) {
		return fmt.Errorf("frame %d: %w", frame, ErrSeekOutOfRange)
	}

	if err := s.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("%w", err)
	}
	s.pos = frame

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	// oggvorbis clamps to [-1, 1] and keeps whole frames
	n, err := s.dec.Read(dst)
	s.pos += int64(n / s.channels)

	if err != nil && err != io.EOF {
		return n, fmt.Errorf("%w", err)
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if dec.Channels() <= 0 {
		return nil, fmt.Errorf("%d channels: %w", dec.Channels(), audio.ErrUnsupportedFormat)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
