// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"context"
	"fmt"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/fx"
)

// MonoMix asks ExtractChannel for a downmix of all channels.
const MonoMix = -1

// ChannelSuffix names the output of ExtractChannel: "_left", "_right",
// "_mono" or "_chN".
func ChannelSuffix(channel int) string {
	switch {
	case channel < 0:
		return "_mono"
	case channel == 0:
		return "_left"
	case channel == 1:
		return "_right"
	default:
		return fmt.Sprintf("_ch%d", channel)
	}
}

// ExtractChannel writes a single channel of in (0 is left) to out as mono
// WAV. With MonoMix every channel is averaged instead.
func ExtractChannel(ctx context.Context, in, out string, channel int, opts ...Option) (Result, error) {
	o := newOptions(opts)

	if out == "" {
		out = DefaultOutputPath(in, ChannelSuffix(channel))
	}
	if err := checkPaths(in, out); err != nil {
		return Result{}, err
	}

	src, err := openSource(o.registry, in)
	if err != nil {
		return Result{}, err
	}

	var mono audio.Source
	if channel < 0 {
		mono = audio.NewMonoMixer(src)
	} else {
		ex, err := audio.NewChannelExtractor(src, channel)
		if err != nil {
			_ = src.Close()
			return Result{}, &fx.InvalidParameterError{Param: "channel", Value: channel, Reason: err.Error()}
		}
		mono = ex
	}

	o.logger.Info("extract", "path", in, "output", out, "channel", channel)

	res, err := run(ctx, o, mono, out, fx.NewChain(), fx.DefaultChunkDuration)
	res.Input = in

	return res, err
}
