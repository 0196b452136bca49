// SPDX-License-Identifier: EPL-2.0

package audio

import "time"

// Chunk is a bounded slice of interleaved samples handed through a chain.
type Chunk struct {
	// Index is the zero based position of the chunk within its stream.
	Index      int
	SampleRate int
	Channels   int
	Data       []float32
}

func NewChunk(index, sampleRate, channels, frames int) *Chunk {
	return &Chunk{
		Index:      index,
		SampleRate: sampleRate,
		Channels:   channels,
		Data:       make([]float32, frames*channels),
	}
}

func (c *Chunk) Frames() int {
	if c.Channels <= 0 {
		return 0
	}

	return len(c.Data) / c.Channels
}

func (c *Chunk) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}

	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Peak returns the largest absolute sample value.
func (c *Chunk) Peak() float32 {
	var peak float32
	for _, v := range c.Data {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}

	return peak
}

const maxEmptyReads = 64

// ReadFull fills dst from src until dst is full or the stream ends.
// It returns the number of values read; err is io.EOF only when the
// stream ended, possibly together with n > 0.
func ReadFull(src Source, dst []float32) (int, error) {
	total, empty := 0, 0
	for total < len(dst) {
		n, err := src.ReadSamples(dst[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n > 0 {
			empty = 0
			continue
		}

		empty++
		if empty > maxEmptyReads {
			return total, ErrNoProgress
		}
	}

	return total, nil
}
