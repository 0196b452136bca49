// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"

	"github.com/ik5/audfx/audio"
)

// MockSink records every chunk written to it.
type MockSink struct {
	Chunks     []*audio.Chunk
	SampleRate int
	Channels   int
	Closed     int

	// FailOnChunk makes Write return ErrInjected for the chunk with this index.
	FailOnChunk int
	// CloseErr is returned by every Close call.
	CloseErr error
}

func NewMockSink() *MockSink {
	return &MockSink{FailOnChunk: -1}
}

func (s *MockSink) Write(c *audio.Chunk) error {
	if c.Index == s.FailOnChunk {
		return ErrInjected
	}

	if len(s.Chunks) == 0 {
		s.SampleRate = c.SampleRate
		s.Channels = c.Channels
	} else if c.SampleRate != s.SampleRate || c.Channels != s.Channels {
		return fmt.Errorf("%d Hz/%d ch after %d Hz/%d ch: %w",
			c.SampleRate, c.Channels, s.SampleRate, s.Channels, audio.ErrFormatChanged)
	}

	cp := *c
	cp.Data = append([]float32(nil), c.Data...)
	s.Chunks = append(s.Chunks, &cp)

	return nil
}

func (s *MockSink) Close() error {
	s.Closed++
	return s.CloseErr
}

// Samples returns all written samples concatenated in write order.
func (s *MockSink) Samples() []float32 {
	var out []float32
	for _, c := range s.Chunks {
		out = append(out, c.Data...)
	}

	return out
}

// Frames returns the number of frames written.
func (s *MockSink) Frames() int {
	total := 0
	for _, c := range s.Chunks {
		total += c.Frames()
	}

	return total
}
