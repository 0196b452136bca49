// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
)

// DefaultDebounce is how long Watch waits after the last change to a file.
const DefaultDebounce = 500 * time.Millisecond

// Event reports one finished file.
type Event struct {
	Path   string
	Result audfx.Result
	Err    error
	// Done and Total count files of the current Run. Watch leaves Total at 0.
	Done  int
	Total int
}

type options struct {
	workers   int
	outputDir string
	suffix    string
	debounce  time.Duration
	registry  *audio.Registry
	logger    *slog.Logger
	onFile    func(Event)
	fileOpts  []audfx.Option
}

type Option func(*options)

// WithWorkers bounds the number of files processed at once. Zero or less
// selects runtime.NumCPU.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithOutputDir writes results into dir instead of next to their input.
func WithOutputDir(dir string) Option {
	return func(o *options) { o.outputDir = dir }
}

// WithSuffix sets the output suffix. Inputs already carrying it are skipped.
func WithSuffix(suffix string) Option {
	return func(o *options) { o.suffix = suffix }
}

func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

func WithRegistry(r *audio.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// OnFile is called after each file, one call at a time.
func OnFile(fn func(Event)) Option {
	return func(o *options) { o.onFile = fn }
}

// WithFileOptions passes options through to audfx.ProcessFile.
func WithFileOptions(opts ...audfx.Option) Option {
	return func(o *options) { o.fileOpts = append(o.fileOpts, opts...) }
}

func newOptions(opts []Option) *options {
	o := &options{
		suffix:   audfx.DefaultSuffix,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = audfx.DefaultRegistry()
	}
	if o.workers <= 0 {
		o.workers = runtime.NumCPU()
	}
	if o.debounce <= 0 {
		o.debounce = DefaultDebounce
	}

	return o
}

// processOptions are the audfx options every file is processed with.
func (o *options) processOptions() []audfx.Option {
	opts := []audfx.Option{
		audfx.WithRegistry(o.registry),
		audfx.WithSuffix(o.suffix),
		audfx.WithLogger(o.logger),
	}

	return append(opts, o.fileOpts...)
}
