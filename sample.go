// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/fx"
)

// SamplePath is the default output of MakeSample: the input name with the
// range appended, for example "talk_30s_1m30s.wav".
func SamplePath(in string, start, end time.Duration) string {
	return DefaultOutputPath(in, fmt.Sprintf("_%s_%s", start, end))
}

// MakeSample copies the range [start, end) of in to out. An empty out
// selects SamplePath. An end past the input stops at its last frame.
func MakeSample(ctx context.Context, in, out string, start, end time.Duration, opts ...Option) (Result, error) {
	o := newOptions(opts)

	if start < 0 {
		return Result{}, &fx.InvalidParameterError{Param: "start", Value: start, Reason: "must not be negative"}
	}
	if end <= start {
		return Result{}, &fx.InvalidParameterError{Param: "end", Value: end, Reason: "must be after start " + start.String()}
	}
	if out == "" {
		out = SamplePath(in, start, end)
	}
	if err := checkPaths(in, out); err != nil {
		return Result{}, err
	}

	src, err := openSource(o.registry, in)
	if err != nil {
		return Result{}, err
	}

	sr := float64(src.SampleRate())
	w, err := audio.NewWindow(src,
		int64(math.Round(start.Seconds()*sr)),
		int64(math.Round(end.Seconds()*sr)))
	if err != nil {
		_ = src.Close()
		return Result{}, &fx.InvalidParameterError{Param: "start", Value: start, Reason: err.Error()}
	}

	o.logger.Info("sample", "path", in, "output", out, "start", start, "end", end)

	res, err := run(ctx, o, w, out, fx.NewChain(), fx.DefaultChunkDuration)
	res.Input = in

	return res, err
}

// ParseTime reads a position such as "30s", "1m30s" or "0m30s".
// A bare number is taken as seconds.
func ParseTime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse time %q: %w", s, err)
	}

	return d, nil
}
