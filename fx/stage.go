// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"fmt"
	"math"

	"github.com/ik5/audfx/audio"
)

// Category decides where a stage sits in a chain. Lower values run first.
type Category int

const (
	CategoryFilter Category = iota
	CategoryDynamics
	CategoryGain
	CategoryLimiter
)

func (c Category) String() string {
	switch c {
	case CategoryFilter:
		return "filter"
	case CategoryDynamics:
		return "dynamics"
	case CategoryGain:
		return "gain"
	case CategoryLimiter:
		return "limiter"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Stage is a stateful in-place transform of interleaved chunks.
//
// A stage keeps its state between Process calls, so consecutive chunks of
// one stream must be fed in order to the same stage.
type Stage interface {
	Name() string
	Category() Category
	Process(c *audio.Chunk) error
}

// perChannel is shared by stages that keep one processor per channel.
type perChannel struct {
	sampleRate int
	channels   int
}

func (p perChannel) check(c *audio.Chunk) error {
	if c.SampleRate != p.sampleRate || c.Channels != p.channels {
		return fmt.Errorf("%d Hz/%d ch, want %d Hz/%d ch: %w",
			c.SampleRate, c.Channels, p.sampleRate, p.channels, ErrFormat)
	}

	return nil
}

// run applies fn to every sample with its channel index and rejects
// non-finite output.
func (p perChannel) run(c *audio.Chunk, fn func(ch int, x float64) float64) error {
	if err := p.check(c); err != nil {
		return err
	}

	for i, x := range c.Data {
		y := fn(i%p.channels, float64(x))
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return fmt.Errorf("frame %d: %w", i/p.channels, ErrNonFinite)
		}
		c.Data[i] = float32(y)
	}

	return nil
}
