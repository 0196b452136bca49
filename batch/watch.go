// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/fx"
)

var ErrWatcherClosed = errors.New("file watcher closed")

type pending struct {
	timer *time.Timer
	gen   int
}

type ready struct {
	path string
	gen  int
}

// Watch processes every supported file created or written in dir, once it
// has been quiet for the debounce interval. Files already present are left
// alone. Watch returns nil when ctx is cancelled, after the files in flight
// are finished.
func Watch(ctx context.Context, dir string, p fx.Params, opts ...Option) error {
	o := newOptions(opts)

	if err := p.Validate(); err != nil {
		return err
	}
	if o.outputDir != "" {
		if err := os.MkdirAll(o.outputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	o.logger.Info("watching", "path", dir, "debounce", o.debounce)

	var (
		wg     sync.WaitGroup
		sem    = make(chan struct{}, o.workers)
		mu     sync.Mutex
		done   int
		timers = make(map[string]*pending)
		fire   = make(chan ready)
	)
	defer wg.Wait()

	schedule := func(path string) {
		e, ok := timers[path]
		if !ok {
			e = &pending{}
			timers[path] = e
		} else {
			e.timer.Stop()
		}
		e.gen++

		r := ready{path: path, gen: e.gen}
		e.timer = time.AfterFunc(o.debounce, func() {
			select {
			case fire <- r:
			case <-ctx.Done():
			}
		})
	}

	process := func(path string) {
		defer wg.Done()

		sem <- struct{}{}
		defer func() { <-sem }()

		res, err := audfx.ProcessFile(ctx, path, o.outputPath(path), p, o.processOptions()...)
		if err != nil {
			o.logger.Error("file failed", "path", path, "err", err)
		}

		mu.Lock()
		defer mu.Unlock()
		done++
		if o.onFile != nil {
			o.onFile(Event{Path: path, Result: res, Err: err, Done: done})
		}
	}

	for {
		select {
		case <-ctx.Done():
			for _, e := range timers {
				e.timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !accept(event.Name, o.registry, o.suffix) {
				continue
			}
			o.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			schedule(event.Name)

		case r := <-fire:
			if e, ok := timers[r.path]; !ok || e.gen != r.gen {
				continue
			}
			delete(timers, r.path)

			if info, err := os.Stat(r.path); err != nil || info.IsDir() {
				continue
			}
			wg.Add(1)
			go process(r.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			o.logger.Warn("watcher error", "err", err)
		}
	}
}
