// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/ik5/audfx/config"
	"github.com/ik5/audfx/internal/cli"
)

var (
	version = "0.1.0"
)

type versionFlag bool

func (versionFlag) BeforeReset(app *kong.Kong) error {
	cli.PrintVersion(version)
	app.Exit(0)
	return nil
}

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information."`
	Config  string      `short:"c" type:"existingfile" help:"YAML preset file."`
	Plain   bool        `help:"Print plain results instead of the progress view."`
	Verbose bool        `help:"Log debug details."`

	Process  processCmd  `cmd:"" help:"Apply the effect chain to audio files."`
	Batch    batchCmd    `cmd:"" help:"Apply the effect chain to every audio file in a folder."`
	Watch    watchCmd    `cmd:"" help:"Process audio files as they appear in a folder."`
	Sample   sampleCmd   `cmd:"" help:"Cut a time range out of an audio file."`
	Extract  extractCmd  `cmd:"" help:"Keep one channel of an audio file, or mix it down to mono."`
	Loudness loudnessCmd `cmd:"" help:"Measure the loudness of audio files."`
}

// runContext is bound into every command's Run method.
type runContext struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger
	tui    bool
}

func main() {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("audfx"),
		kong.Description("Streaming audio effects: filters, compression, gain and limiting"),
		kong.UsageOnError(),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if err := run(kctx, cliArgs); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}

func run(kctx *kong.Context, args *CLI) error {
	cfg := config.Default()
	if args.Config != "" {
		var err error
		if cfg, err = config.Load(args.Config); err != nil {
			return err
		}
	}

	tui := !args.Plain && isatty.IsTerminal(os.Stdout.Fd())

	logger, closeLog, err := newLogger(args.Verbose, tui)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = kctx.Run(&runContext{ctx: ctx, cfg: cfg, logger: logger, tui: tui})
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "interrupted")
		return nil
	}

	return err
}

// newLogger logs to stderr, except under the progress view where stderr
// would garble the screen: there only --verbose logs, into a file.
func newLogger(verbose, tui bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if !tui {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}

	f, err := os.OpenFile("audfx-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}

	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}
