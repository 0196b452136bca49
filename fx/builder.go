// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"cmp"
	"log/slog"
	"slices"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/loudness"
)

type Option func(*builder)

// WithLoudnessSource gives Build the stream to measure when automatic gain
// is requested. window <= 0 selects loudness.DefaultWindow.
func WithLoudnessSource(src audio.Source, window time.Duration) Option {
	return func(b *builder) {
		b.probe = src
		b.window = window
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.logger = l
		}
	}
}

type builder struct {
	p          Params
	sampleRate int
	channels   int

	probe  audio.Source
	window time.Duration
	logger *slog.Logger
}

// stageRow maps one optional parameter to the stage it produces.
type stageRow struct {
	category Category
	present  func(Params) bool
	build    func(*builder) (Stage, error)
}

// Rows are in no particular order; Build sorts by category.
var stageTable = []stageRow{
	{
		category: CategoryGain,
		present:  func(p Params) bool { return p.GainDB != nil || p.TargetLoudnessDB != nil },
		build:    (*builder).gain,
	},
	{
		category: CategoryLimiter,
		present:  func(p Params) bool { return p.LimiterThresholdDB != nil },
		build: func(b *builder) (Stage, error) {
			return NewLimiter(*b.p.LimiterThresholdDB, b.sampleRate, b.channels)
		},
	},
	{
		category: CategoryDynamics,
		present:  func(p Params) bool { return p.Compressor != nil },
		build: func(b *builder) (Stage, error) {
			c := b.p.Compressor
			return NewCompressor(c.ThresholdDB, c.Ratio, c.AttackMs, c.ReleaseMs, b.sampleRate, b.channels)
		},
	},
	{
		category: CategoryFilter,
		present:  func(p Params) bool { return p.HighpassCutoffHz != nil },
		build: func(b *builder) (Stage, error) {
			return NewHighpass(*b.p.HighpassCutoffHz, b.sampleRate, b.channels)
		},
	},
	{
		category: CategoryFilter,
		present:  func(p Params) bool { return p.LowpassCutoffHz != nil },
		build: func(b *builder) (Stage, error) {
			return NewLowpass(*b.p.LowpassCutoffHz, b.sampleRate, b.channels)
		},
	},
	{
		category: CategoryFilter,
		present:  func(p Params) bool { return p.LowShelf != nil },
		build: func(b *builder) (Stage, error) {
			s := b.p.LowShelf
			return NewLowShelf(s.CutoffHz, s.GainDB, s.Q, b.sampleRate, b.channels)
		},
	},
}

// Build validates p and assembles its chain for a stream of the given
// format. Stages run filters first, then dynamics, gain and the limiter,
// whatever order the parameters were given in.
//
// Every parameter is checked before the loudness source is read. An
// automatic gain stage measures the source given by WithLoudnessSource and
// applies target minus measured level.
func Build(p Params, sampleRate, channels int, opts ...Option) (*Chain, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkFormat(sampleRate, channels); err != nil {
		return nil, err
	}

	b := &builder{p: p, sampleRate: sampleRate, channels: channels, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.checkNyquist(); err != nil {
		return nil, err
	}
	if p.AutoGain() && b.probe == nil {
		return nil, invalid("target_loudness_db", *p.TargetLoudnessDB, ErrNoProbeInput.Error())
	}

	type built struct {
		category Category
		stage    Stage
	}
	var rows []built
	for _, row := range stageTable {
		if !row.present(p) {
			continue
		}

		s, err := row.build(b)
		if err != nil {
			return nil, err
		}
		rows = append(rows, built{category: row.category, stage: s})
	}

	slices.SortStableFunc(rows, func(x, y built) int {
		return cmp.Compare(x.category, y.category)
	})

	stages := make([]Stage, len(rows))
	for i, r := range rows {
		stages[i] = r.stage
	}
	chain := &Chain{stages: stages}

	b.logger.Debug("chain built", "stages", chain.Len(), "chain", chain.String())

	return chain, nil
}

func (b *builder) checkNyquist() error {
	nyquist := float64(b.sampleRate) / 2

	check := func(param string, hz float64) error {
		if hz >= nyquist {
			return invalid(param, hz, "must be below the Nyquist frequency")
		}
		return nil
	}

	if v := b.p.HighpassCutoffHz; v != nil {
		if err := check("highpass_cutoff_hz", *v); err != nil {
			return err
		}
	}
	if v := b.p.LowpassCutoffHz; v != nil {
		if err := check("lowpass_cutoff_hz", *v); err != nil {
			return err
		}
	}
	if s := b.p.LowShelf; s != nil {
		if err := check("low_shelf.cutoff_hz", s.CutoffHz); err != nil {
			return err
		}
	}

	return nil
}

// gain resolves manual versus automatic gain. A manual value always wins.
func (b *builder) gain() (Stage, error) {
	if b.p.GainDB != nil {
		if b.p.TargetLoudnessDB != nil {
			b.logger.Debug("manual gain overrides target loudness",
				"gain_db", *b.p.GainDB, "target_db", *b.p.TargetLoudnessDB)
		}
		return NewGain(*b.p.GainDB)
	}

	m, err := loudness.Estimate(b.probe, b.window)
	if err != nil {
		return nil, err
	}

	gainDB := *b.p.TargetLoudnessDB - m.DB
	b.logger.Info("automatic gain",
		"measured_db", m.DB, "target_db", *b.p.TargetLoudnessDB, "gain_db", gainDB, "frames", m.Frames)

	return NewGain(gainDB)
}
