// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/effects/dynamics"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/utils"
)

const (
	limiterRatio     = 100
	limiterAttackMs  = 0.1
	limiterReleaseMs = 100
)

// Limiter holds peaks at or below its threshold. A fast compressor does the
// gain riding and a hard clip catches what passes during the attack.
type Limiter struct {
	perChannel

	thresholdDB float64
	ceiling     float64
	comps       []*dynamics.Compressor
}

func NewLimiter(thresholdDB float64, sampleRate, channels int) (*Limiter, error) {
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}
	if math.IsNaN(thresholdDB) || math.IsInf(thresholdDB, 0) {
		return nil, invalid("limiter_threshold_db", thresholdDB, "must be finite")
	}

	l := &Limiter{
		perChannel:  perChannel{sampleRate: sampleRate, channels: channels},
		thresholdDB: thresholdDB,
		ceiling:     utils.DBToGain(thresholdDB),
		comps:       make([]*dynamics.Compressor, channels),
	}

	for ch := range l.comps {
		comp, err := newDynamics(float64(sampleRate), thresholdDB, limiterRatio, limiterAttackMs, limiterReleaseMs)
		if err != nil {
			return nil, invalid("limiter_threshold_db", thresholdDB, err.Error())
		}
		l.comps[ch] = comp
	}

	return l, nil
}

func (l *Limiter) Category() Category { return CategoryLimiter }
func (l *Limiter) Ceiling() float64   { return l.ceiling }
func (l *Limiter) Name() string       { return fmt.Sprintf("limiter(%gdB)", l.thresholdDB) }

func (l *Limiter) Process(c *audio.Chunk) error {
	return l.run(c, func(ch int, x float64) float64 {
		return min(max(l.comps[ch].ProcessSample(x), -l.ceiling), l.ceiling)
	})
}

func (l *Limiter) Reset() {
	for _, comp := range l.comps {
		comp.Reset()
	}
}
