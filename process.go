// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/fx"
	"github.com/ik5/audfx/loudness"
	"github.com/ik5/audfx/session"
)

// DefaultSuffix is appended to the input name when no output path is given.
const DefaultSuffix = "_processed"

// DefaultBitDepth of the WAV output.
const DefaultBitDepth = 16

// Result describes one processed file.
type Result struct {
	session.Result

	Input  string
	Output string
	// Chain is the summary of the stages that ran.
	Chain string

	// InputLoudness and OutputLoudness are set with WithLoudnessReport.
	InputLoudness  *loudness.Report
	OutputLoudness *loudness.Report
}

type options struct {
	registry    *audio.Registry
	bitDepth    int
	suffix      string
	probeWindow time.Duration
	progress    func(session.Progress)
	logger      *slog.Logger
	report      bool
}

type Option func(*options)

// WithRegistry replaces DefaultRegistry for decoding the input.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithBitDepth sets the WAV output bit depth, 16 or 24.
func WithBitDepth(bits int) Option {
	return func(o *options) { o.bitDepth = bits }
}

// WithSuffix changes the suffix used to derive the output path.
func WithSuffix(suffix string) Option {
	return func(o *options) { o.suffix = suffix }
}

// WithProbeWindow sets how much of the input is measured for automatic gain.
func WithProbeWindow(d time.Duration) Option {
	return func(o *options) { o.probeWindow = d }
}

func WithProgress(fn func(session.Progress)) Option {
	return func(o *options) { o.progress = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLoudnessReport measures input and output after a successful run.
func WithLoudnessReport() Option {
	return func(o *options) { o.report = true }
}

func newOptions(opts []Option) *options {
	o := &options{
		bitDepth:    DefaultBitDepth,
		suffix:      DefaultSuffix,
		probeWindow: loudness.DefaultWindow,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}

	return o
}

// DefaultOutputPath derives the output file from the input path: the
// extension is dropped, suffix is appended and the result always ends
// in ".wav".
func DefaultOutputPath(in, suffix string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + suffix + ".wav"
}

// ProcessFile streams in through the chain described by p and writes the
// result to out as WAV. An empty out selects DefaultOutputPath.
//
// Parameters are validated before anything is opened. When p asks for
// automatic gain the input is opened a second time and measured first.
// Cancelling ctx stops between chunks; the partial output is left in place.
func ProcessFile(ctx context.Context, in, out string, p fx.Params, opts ...Option) (Result, error) {
	o := newOptions(opts)

	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if o.bitDepth != 16 && o.bitDepth != 24 {
		return Result{}, &fx.InvalidParameterError{Param: "bit_depth", Value: o.bitDepth, Reason: "must be 16 or 24"}
	}
	if out == "" {
		out = DefaultOutputPath(in, o.suffix)
	}
	if err := checkPaths(in, out); err != nil {
		return Result{}, err
	}

	src, err := openSource(o.registry, in)
	if err != nil {
		return Result{}, err
	}

	chain, err := buildChain(o, in, p, src)
	if err != nil {
		_ = src.Close()
		return Result{}, err
	}

	o.logger.Info("processing", "path", in, "output", out, "chain", chain.String())

	res, err := run(ctx, o, src, out, chain, p.ChunkDuration())
	res.Input = in
	res.Chain = chain.String()
	if err != nil {
		return res, err
	}

	if o.report {
		if err := attachReports(o, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func buildChain(o *options, in string, p fx.Params, src audio.Source) (*fx.Chain, error) {
	bopts := []fx.Option{fx.WithLogger(o.logger)}

	if p.AutoGain() {
		probe, err := openSource(o.registry, in)
		if err != nil {
			return nil, err
		}
		defer probe.Close()

		bopts = append(bopts, fx.WithLoudnessSource(probe, o.probeWindow))
	}

	return fx.Build(p, src.SampleRate(), src.Channels(), bopts...)
}

// run creates the WAV sink at out and drives src through chain into it.
// It takes ownership of src.
func run(ctx context.Context, o *options, src audio.Source, out string, chain *fx.Chain, chunk time.Duration) (Result, error) {
	sink, err := wav.Create(out, o.bitDepth)
	if err != nil {
		_ = src.Close()
		return Result{Output: out}, &session.OutputWriteError{Chunk: -1, Err: err}
	}

	sopts := []session.Option{session.WithChunkDuration(chunk), session.WithLogger(o.logger)}
	if o.progress != nil {
		sopts = append(sopts, session.WithProgress(o.progress))
	}

	s, err := session.New(src, sink, chain, sopts...)
	if err != nil {
		return Result{Output: out}, errors.Join(err, src.Close(), sink.Close())
	}

	sres, err := s.Run(ctx)

	return Result{Result: sres, Output: out}, err
}

func attachReports(o *options, res *Result) error {
	before, err := analyze(o, res.Input)
	if err != nil {
		return err
	}
	after, err := analyze(o, res.Output)
	if err != nil {
		return err
	}
	res.InputLoudness, res.OutputLoudness = &before, &after

	o.logger.Info("loudness",
		"path", res.Output,
		"before_lufs", before.IntegratedLUFS,
		"after_lufs", after.IntegratedLUFS)

	return nil
}

// AnalyzeFile measures the loudness of a whole file.
func AnalyzeFile(path string, opts ...Option) (loudness.Report, error) {
	return analyze(newOptions(opts), path)
}

func analyze(o *options, path string) (loudness.Report, error) {
	src, err := openSource(o.registry, path)
	if err != nil {
		return loudness.Report{}, err
	}
	defer src.Close()

	r, err := loudness.Analyze(src)
	if err != nil {
		return loudness.Report{}, fmt.Errorf("loudness of %s: %w", path, err)
	}

	return r, nil
}

func checkPaths(in, out string) error {
	a, err := filepath.Abs(in)
	if err != nil {
		return &InputOpenError{Path: in, Err: err}
	}
	b, err := filepath.Abs(out)
	if err != nil {
		return &session.OutputWriteError{Chunk: -1, Err: err}
	}
	if a == b {
		return &fx.InvalidParameterError{Param: "output", Value: out, Reason: "must differ from the input"}
	}

	return nil
}
