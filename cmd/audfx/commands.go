// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/batch"
	"github.com/ik5/audfx/internal/cli"
	"github.com/ik5/audfx/internal/ui"
	"github.com/ik5/audfx/session"
)

type processCmd struct {
	chainFlags
	outputFlags

	Output   string   `short:"o" type:"path" help:"Output file; only with a single input."`
	Loudness bool     `help:"Measure loudness before and after."`
	Files    []string `arg:"" name:"files" type:"existingfile" help:"Audio files to process."`
}

func (c *processCmd) Run(rc *runContext) error {
	if c.Output != "" && len(c.Files) > 1 {
		return errors.New("--output needs exactly one input file")
	}
	if err := c.apply(rc.cfg, c.outputFlags); err != nil {
		return err
	}

	p := rc.cfg.Params()
	extra := []audfx.Option{}
	if c.Loudness {
		extra = append(extra, audfx.WithLoudnessReport())
	}

	if !rc.tui {
		var errs []error
		for _, in := range c.Files {
			res, err := audfx.ProcessFile(rc.ctx, in, c.Output, p, fileOptions(rc, extra...)...)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", in, err))
				if rc.ctx.Err() != nil {
					break
				}
				continue
			}
			cli.PrintResult(os.Stdout, res)
		}
		return errors.Join(errs...)
	}

	return runWithUI(rc, "process", c.Files, func(prog *tea.Program) error {
		var errs []error
		for _, in := range c.Files {
			prog.Send(ui.FileStartMsg{Path: in})

			opts := fileOptions(rc, append(extra, audfx.WithProgress(func(pr session.Progress) {
				prog.Send(ui.ProgressMsg{Path: in, Progress: pr})
			}))...)
			res, err := audfx.ProcessFile(rc.ctx, in, c.Output, p, opts...)

			prog.Send(ui.FileCompleteMsg{Path: in, Result: res, Err: err})
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", in, err))
				if rc.ctx.Err() != nil {
					break
				}
			}
		}
		return errors.Join(errs...)
	})
}

type batchCmd struct {
	chainFlags
	outputFlags

	Workers   *int   `short:"j" help:"Files processed at once; 0 for one per CPU." placeholder:"N"`
	OutputDir string `type:"path" help:"Write results into this folder."`
	Dir       string `arg:"" type:"existingdir" help:"Folder with audio files."`
}

func (c *batchCmd) Run(rc *runContext) error {
	if err := c.apply(rc.cfg, c.outputFlags); err != nil {
		return err
	}
	if c.Workers != nil {
		rc.cfg.Workers = *c.Workers
	}
	if c.OutputDir != "" {
		rc.cfg.OutputDir = c.OutputDir
	}

	opts := append(rc.cfg.BatchOptions(), batch.WithLogger(rc.logger))

	if !rc.tui {
		summary, err := batch.Run(rc.ctx, c.Dir, rc.cfg.Params(), opts...)
		for _, res := range summary.Processed {
			cli.PrintResult(os.Stdout, res)
		}
		return errors.Join(err, summary.Err())
	}

	files, err := batch.List(c.Dir, audfx.DefaultRegistry(), rc.cfg.Suffix)
	if err != nil {
		return err
	}

	return runWithUI(rc, "batch", files, func(prog *tea.Program) error {
		summary, err := batch.Run(rc.ctx, c.Dir, rc.cfg.Params(), append(opts,
			batch.OnFile(func(e batch.Event) {
				prog.Send(ui.FileCompleteMsg{Path: e.Path, Result: e.Result, Err: e.Err})
			}))...)
		return errors.Join(err, summary.Err())
	})
}

type watchCmd struct {
	chainFlags
	outputFlags

	OutputDir string `type:"path" help:"Write results into this folder."`
	Debounce  string `default:"500ms" help:"Quiet time before a changed file is processed."`
	Dir       string `arg:"" type:"existingdir" help:"Folder to watch."`
}

func (c *watchCmd) Run(rc *runContext) error {
	if err := c.apply(rc.cfg, c.outputFlags); err != nil {
		return err
	}
	if c.OutputDir != "" {
		rc.cfg.OutputDir = c.OutputDir
	}
	debounce, err := audfx.ParseTime(c.Debounce)
	if err != nil {
		return err
	}

	opts := append(rc.cfg.BatchOptions(),
		batch.WithLogger(rc.logger),
		batch.WithDebounce(debounce),
		batch.OnFile(func(e batch.Event) {
			if e.Err != nil {
				cli.PrintError(fmt.Sprintf("%s: %v", e.Path, e.Err))
				return
			}
			cli.PrintResult(os.Stdout, e.Result)
		}))

	fmt.Println(cli.TitleStyle.Render("Watching " + c.Dir + ", Ctrl+C to stop"))

	return batch.Watch(rc.ctx, c.Dir, rc.cfg.Params(), opts...)
}

type sampleCmd struct {
	Output string `short:"o" type:"path" help:"Output file."`
	Input  string `arg:"" type:"existingfile" help:"Audio file."`
	Start  string `arg:"" help:"Start time, e.g. 0m30s."`
	End    string `arg:"" help:"End time, e.g. 1m30s."`
}

func (c *sampleCmd) Run(rc *runContext) error {
	start, err := audfx.ParseTime(c.Start)
	if err != nil {
		return err
	}
	end, err := audfx.ParseTime(c.End)
	if err != nil {
		return err
	}

	res, err := audfx.MakeSample(rc.ctx, c.Input, c.Output, start, end, fileOptions(rc)...)
	if err != nil {
		return err
	}
	cli.PrintResult(os.Stdout, res)

	return nil
}

type extractCmd struct {
	Channel int    `default:"0" help:"Channel to keep, 0 is left."`
	Mono    bool   `help:"Mix all channels down instead."`
	Output  string `short:"o" type:"path" help:"Output file."`
	Input   string `arg:"" type:"existingfile" help:"Audio file."`
}

func (c *extractCmd) Run(rc *runContext) error {
	channel := c.Channel
	if c.Mono {
		channel = audfx.MonoMix
	}

	res, err := audfx.ExtractChannel(rc.ctx, c.Input, c.Output, channel, fileOptions(rc)...)
	if err != nil {
		return err
	}
	cli.PrintResult(os.Stdout, res)

	return nil
}

type loudnessCmd struct {
	Files []string `arg:"" name:"files" type:"existingfile" help:"Audio files to measure."`
}

func (c *loudnessCmd) Run(rc *runContext) error {
	var errs []error
	for _, in := range c.Files {
		r, err := audfx.AnalyzeFile(in, audfx.WithLogger(rc.logger))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cli.PrintReport(os.Stdout, in, r)
	}

	return errors.Join(errs...)
}

// runWithUI runs work next to the progress view. Quitting the view stops
// the work at its next chunk boundary.
func runWithUI(rc *runContext, title string, files []string, work func(*tea.Program) error) error {
	prog := tea.NewProgram(ui.NewModel(title, files))

	ctx, cancel := context.WithCancel(rc.ctx)
	defer cancel()
	rc.ctx = ctx

	done := make(chan error, 1)
	go func() {
		err := work(prog)
		prog.Send(ui.AllCompleteMsg{})
		done <- err
	}()

	final, err := prog.Run()
	if err != nil {
		cancel()
		<-done
		return fmt.Errorf("progress view: %w", err)
	}
	if m, ok := final.(ui.Model); ok && m.Quit {
		cancel()
	}

	return <-done
}
