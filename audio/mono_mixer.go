// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer downmixes a multi-channel source by averaging its channels.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Frames() int64   { return m.src.Frames() }
func (m *MonoMixer) Position() int64 { return m.src.Position() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.src.Channels() == 1 {
		return m.src.ReadSamples(dst)
	}

	channels := m.src.Channels()
	m.tmp = grow(m.tmp, len(dst)*channels)

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames := n / channels

	switch channels {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (m.tmp[idx] + m.tmp[idx+1]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(channels)
		for f := range frames {
			sum := float32(0)
			base := f * channels
			for c := range channels {
				sum += m.tmp[base+c]
			}
			dst[f] = sum * inv
		}
	}

	return frames, err
}

// ChannelExtractor keeps a single channel of a multi-channel source.
type ChannelExtractor struct {
	src     Source
	channel int
	tmp     []float32
}

// NewChannelExtractor returns a mono source carrying channel (0 = left) of src.
func NewChannelExtractor(src Source, channel int) (*ChannelExtractor, error) {
	if channel < 0 || channel >= src.Channels() {
		return nil, fmt.Errorf("channel %d of %d: %w", channel, src.Channels(), ErrInvalidChannel)
	}

	return &ChannelExtractor{
		src:     src,
		channel: channel,
		tmp:     make([]float32, 4096),
	}, nil
}

func (e *ChannelExtractor) SampleRate() int { return e.src.SampleRate() }
func (e *ChannelExtractor) Channels() int   { return 1 }
func (e *ChannelExtractor) BufSize() int    { return e.src.BufSize() }
func (e *ChannelExtractor) Frames() int64   { return e.src.Frames() }
func (e *ChannelExtractor) Position() int64 { return e.src.Position() }
func (e *ChannelExtractor) Close() error {
	if err := e.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (e *ChannelExtractor) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := e.src.Channels()
	if channels == 1 {
		return e.src.ReadSamples(dst)
	}

	e.tmp = grow(e.tmp, len(dst)*channels)

	n, err := e.src.ReadSamples(e.tmp)
	frames := n / channels
	for f := range frames {
		dst[f] = e.tmp[f*channels+e.channel]
	}

	return frames, err
}

// grow returns buf resliced to n values, reallocating only when needed.
func grow(buf []float32, n int) []float32 {
	if cap(buf) < n {
		return make([]float32, n, max(n, 8192))
	}

	return buf[:n]
}
