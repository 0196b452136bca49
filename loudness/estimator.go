// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ik5/audfx/audio"
)

// DefaultWindow is how much audio Estimate reads when no window is given.
const DefaultWindow = 10 * time.Second

const readFrames = 4096

// Measurement is the RMS level of a window of audio.
type Measurement struct {
	Frames int64
	RMS    float64
	DB     float64
}

// Estimate reads up to window of audio from the current position of src and
// returns the RMS over all channels and samples, with DB = 20*log10(RMS).
//
// The window is clamped to what is left of the stream. When src is an
// audio.Seeker its position is restored afterwards; otherwise src is
// consumed and should be a stream opened for this purpose alone.
func Estimate(src audio.Source, window time.Duration) (Measurement, error) {
	if window <= 0 {
		window = DefaultWindow
	}

	want := int64(math.Round(window.Seconds() * float64(src.SampleRate())))
	if total := src.Frames(); total >= 0 {
		want = min(want, total-src.Position())
	}
	if want <= 0 {
		return Measurement{}, ErrEmptyWindow
	}

	start := src.Position()
	frames, sumSquares, err := accumulate(src, want)

	if s, ok := src.(audio.Seeker); ok {
		if serr := s.SeekFrame(start); serr != nil && err == nil {
			err = fmt.Errorf("rewind after measurement: %w", serr)
		}
	}
	if err != nil {
		return Measurement{}, err
	}

	if frames == 0 {
		return Measurement{}, ErrEmptyWindow
	}

	rms := math.Sqrt(sumSquares / float64(frames*int64(src.Channels())))
	if rms == 0 {
		return Measurement{}, &SilentInputError{Frames: frames}
	}

	return Measurement{Frames: frames, RMS: rms, DB: 20 * math.Log10(rms)}, nil
}

func accumulate(src audio.Source, want int64) (int64, float64, error) {
	ch := src.Channels()
	buf := make([]float32, readFrames*ch)

	var (
		frames int64
		sum    float64
	)
	for frames < want {
		n := int(min(want-frames, readFrames)) * ch

		got, err := audio.ReadFull(src, buf[:n])
		for _, v := range buf[:got] {
			sum += float64(v) * float64(v)
		}
		frames += int64(got / ch)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return frames, sum, fmt.Errorf("measure loudness: %w", err)
		}
	}

	return frames, sum, nil
}
