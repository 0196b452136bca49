// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"

	"github.com/ik5/audfx/audio"
)

// DefaultQ is the Butterworth quality factor used by highpass and lowpass
// stages, and by a low shelf with Q 0.
const DefaultQ = 1 / math.Sqrt2

type FilterKind int

const (
	Highpass FilterKind = iota
	Lowpass
	LowShelf
)

func (k FilterKind) String() string {
	switch k {
	case Highpass:
		return "highpass"
	case Lowpass:
		return "lowpass"
	case LowShelf:
		return "low-shelf"
	default:
		return fmt.Sprintf("filter(%d)", int(k))
	}
}

// Filter is a second order IIR stage with one biquad section per channel.
type Filter struct {
	perChannel

	kind     FilterKind
	cutoffHz float64
	gainDB   float64
	q        float64
	sections []*biquad.Section
}

func NewHighpass(cutoffHz float64, sampleRate, channels int) (*Filter, error) {
	return newFilter(Highpass, cutoffHz, 0, DefaultQ, sampleRate, channels)
}

func NewLowpass(cutoffHz float64, sampleRate, channels int) (*Filter, error) {
	return newFilter(Lowpass, cutoffHz, 0, DefaultQ, sampleRate, channels)
}

// NewLowShelf boosts or cuts everything below cutoffHz by gainDB.
func NewLowShelf(cutoffHz, gainDB, q float64, sampleRate, channels int) (*Filter, error) {
	if q == 0 {
		q = DefaultQ
	}

	return newFilter(LowShelf, cutoffHz, gainDB, q, sampleRate, channels)
}

func newFilter(kind FilterKind, cutoffHz, gainDB, q float64, sampleRate, channels int) (*Filter, error) {
	param := kind.String() + "_cutoff_hz"
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}
	if !(cutoffHz > 0) || cutoffHz >= float64(sampleRate)/2 {
		return nil, invalid(param, cutoffHz, fmt.Sprintf("must be in (0, %d)", sampleRate/2))
	}
	if !(q > 0) || math.IsInf(q, 0) {
		return nil, invalid(kind.String()+"_q", q, "must be positive")
	}

	var coeffs biquad.Coefficients
	sr := float64(sampleRate)
	switch kind {
	case Highpass:
		coeffs = design.Highpass(cutoffHz, q, sr)
	case Lowpass:
		coeffs = design.Lowpass(cutoffHz, q, sr)
	case LowShelf:
		coeffs = design.LowShelf(cutoffHz, gainDB, q, sr)
	}
	if coeffs == (biquad.Coefficients{}) {
		return nil, invalid(param, cutoffHz, "no stable coefficients")
	}

	f := &Filter{
		perChannel: perChannel{sampleRate: sampleRate, channels: channels},
		kind:       kind,
		cutoffHz:   cutoffHz,
		gainDB:     gainDB,
		q:          q,
		sections:   make([]*biquad.Section, channels),
	}
	for ch := range f.sections {
		f.sections[ch] = biquad.NewSection(coeffs)
	}

	return f, nil
}

func (f *Filter) Kind() FilterKind   { return f.kind }
func (f *Filter) CutoffHz() float64  { return f.cutoffHz }
func (f *Filter) Category() Category { return CategoryFilter }

// Reset clears the filter memory of every channel.
func (f *Filter) Reset() { resetAll(f.sections) }

func (f *Filter) Name() string {
	if f.kind == LowShelf {
		return fmt.Sprintf("low-shelf(%gHz, %+gdB, q=%.3g)", f.cutoffHz, f.gainDB, f.q)
	}

	return fmt.Sprintf("%s(%gHz)", f.kind, f.cutoffHz)
}

func (f *Filter) Process(c *audio.Chunk) error {
	return f.run(c, func(ch int, x float64) float64 {
		return f.sections[ch].ProcessSample(x)
	})
}

func resetAll(sections []*biquad.Section) {
	for _, s := range sections {
		s.Reset()
	}
}

func checkFormat(sampleRate, channels int) error {
	if sampleRate <= 0 {
		return invalid("sample_rate", sampleRate, "must be positive")
	}
	if channels <= 0 {
		return invalid("channels", channels, "must be positive")
	}

	return nil
}
