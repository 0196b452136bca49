// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/fx"
)

// Failure is a file that could not be processed.
type Failure struct {
	Path string
	Err  error
}

type Summary struct {
	Processed []audfx.Result
	Failed    []Failure
}

// Err joins the errors of every failed file, nil when all succeeded.
func (s Summary) Err() error {
	errs := make([]error, 0, len(s.Failed))
	for _, f := range s.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
	}

	return errors.Join(errs...)
}

// List returns the files of dir that reg can decode, in name order.
// Subdirectories are not entered and files whose name already ends in
// suffix are left out.
func List(dir string, reg *audio.Registry, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if accept(path, reg, suffix) {
			files = append(files, path)
		}
	}

	return files, nil
}

func accept(path string, reg *audio.Registry, suffix string) bool {
	if !reg.Supports(path) {
		return false
	}

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return suffix == "" || !strings.HasSuffix(stem, suffix)
}

// Run processes every supported file of dir with p.
//
// Parameters are checked once up front. Per-file failures are collected in
// the Summary; the returned error is only set when dir cannot be listed or
// ctx ends before all files are done.
func Run(ctx context.Context, dir string, p fx.Params, opts ...Option) (Summary, error) {
	o := newOptions(opts)

	if err := p.Validate(); err != nil {
		return Summary{}, err
	}

	files, err := List(dir, o.registry, o.suffix)
	if err != nil {
		return Summary{}, err
	}
	if o.outputDir != "" {
		if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
			return Summary{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	o.logger.Info("batch", "path", dir, "files", len(files), "workers", o.workers)

	var (
		mu      sync.Mutex
		summary Summary
		done    int
		g       errgroup.Group
	)
	g.SetLimit(o.workers)

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			res, err := audfx.ProcessFile(ctx, path, o.outputPath(path), p, o.processOptions()...)

			mu.Lock()
			defer mu.Unlock()

			done++
			if err != nil {
				o.logger.Error("file failed", "path", path, "err", err)
				summary.Failed = append(summary.Failed, Failure{Path: path, Err: err})
			} else {
				summary.Processed = append(summary.Processed, res)
			}
			if o.onFile != nil {
				o.onFile(Event{Path: path, Result: res, Err: err, Done: done, Total: len(files)})
			}

			// a failed file must not cancel its siblings
			return nil
		})
	}
	_ = g.Wait()

	return summary, ctx.Err()
}

// outputPath is empty, letting ProcessFile derive it, unless an output
// directory is set.
func (o *options) outputPath(in string) string {
	if o.outputDir == "" {
		return ""
	}

	return filepath.Join(o.outputDir, filepath.Base(audfx.DefaultOutputPath(in, o.suffix)))
}
