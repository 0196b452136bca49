// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"math"
)

var ErrInjected = errors.New("injected failure")

// MockSource is a test helper that generates audio data for testing.
// It implements audio.Source and audio.Seeker.
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32

	// UnknownLength makes Frames report -1, like a codec without a length header.
	UnknownLength bool
	// FailAfter makes ReadSamples return ErrInjected once this many frames were produced.
	FailAfter int

	Closed int
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
		FailAfter:    -1,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		return value
	})
}

// NewNoiseSource creates a deterministic pseudo random source in [-amp, amp].
func NewNoiseSource(sampleRate, channels, totalSamples int, amp float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		x := uint32(sample)*2654435761 ^ uint32(channel*40503+1)
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		return amp * (float32(x)/float32(math.MaxUint32)*2 - 1)
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Position() int64 { return int64(m.generated) }

func (m *MockSource) Close() error {
	m.Closed++
	return nil
}

func (m *MockSource) Frames() int64 {
	if m.UnknownLength {
		return -1
	}

	return int64(m.totalSamples)
}

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) SeekFrame(frame int64) error {
	if frame < 0 || frame > int64(m.totalSamples) {
		return io.ErrUnexpectedEOF
	}
	m.generated = int(frame)

	return nil
}

// Sample returns the value the source yields for a frame and channel.
func (m *MockSource) Sample(frame, channel int) float32 {
	return m.waveform(frame, channel)
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}
	if m.FailAfter >= 0 && m.generated >= m.FailAfter {
		return 0, ErrInjected
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	if m.FailAfter >= 0 {
		framesToWrite = min(framesToWrite, m.FailAfter-m.generated)
	}

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
