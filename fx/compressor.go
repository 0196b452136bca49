// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"fmt"

	"github.com/cwbudde/algo-dsp/dsp/effects/dynamics"

	"github.com/ik5/audfx/audio"
)

const (
	// MinAttackMs is the fastest attack the envelope follower supports.
	// Shorter requested attacks are raised to it.
	MinAttackMs      = 0.1
	DefaultReleaseMs = 100.0
)

// Compressor is a hard knee downward compressor with one envelope per
// channel. No makeup gain is applied; a gain stage follows when needed.
type Compressor struct {
	perChannel

	thresholdDB float64
	ratio       float64
	attackMs    float64
	releaseMs   float64
	comps       []*dynamics.Compressor
}

// NewCompressor builds a compressor stage. A zero releaseMs selects
// DefaultReleaseMs.
func NewCompressor(thresholdDB, ratio, attackMs, releaseMs float64, sampleRate, channels int) (*Compressor, error) {
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}
	if releaseMs == 0 {
		releaseMs = DefaultReleaseMs
	}

	c := &Compressor{
		perChannel:  perChannel{sampleRate: sampleRate, channels: channels},
		thresholdDB: thresholdDB,
		ratio:       ratio,
		attackMs:    max(attackMs, MinAttackMs),
		releaseMs:   releaseMs,
		comps:       make([]*dynamics.Compressor, channels),
	}

	for ch := range c.comps {
		comp, err := newDynamics(float64(sampleRate), thresholdDB, ratio, c.attackMs, releaseMs)
		if err != nil {
			return nil, invalid("compressor", fmt.Sprintf("%g/%g:1/%gms", thresholdDB, ratio, attackMs), err.Error())
		}
		c.comps[ch] = comp
	}

	return c, nil
}

func newDynamics(sampleRate, thresholdDB, ratio, attackMs, releaseMs float64) (*dynamics.Compressor, error) {
	comp, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, err
	}

	for _, set := range []func() error{
		func() error { return comp.SetThreshold(thresholdDB) },
		func() error { return comp.SetRatio(ratio) },
		func() error { return comp.SetKnee(0) },
		func() error { return comp.SetAttack(attackMs) },
		func() error { return comp.SetRelease(releaseMs) },
		func() error { return comp.SetMakeupGain(0) },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}

	return comp, nil
}

func (c *Compressor) Category() Category { return CategoryDynamics }
func (c *Compressor) AttackMs() float64  { return c.attackMs }

func (c *Compressor) Name() string {
	return fmt.Sprintf("compressor(%gdB, %g:1, %gms/%gms)", c.thresholdDB, c.ratio, c.attackMs, c.releaseMs)
}

func (c *Compressor) Process(chunk *audio.Chunk) error {
	return c.run(chunk, func(ch int, x float64) float64 {
		return c.comps[ch].ProcessSample(x)
	})
}

func (c *Compressor) Reset() {
	for _, comp := range c.comps {
		comp.Reset()
	}
}
