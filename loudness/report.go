// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"errors"
	"fmt"
	"io"
	"math"

	dsploudness "github.com/cwbudde/algo-dsp/measure/loudness"

	"github.com/ik5/audfx/audio"
)

// Report summarises a whole stream.
type Report struct {
	// IntegratedLUFS is the gated programme loudness (BS.1770).
	IntegratedLUFS float64
	// MomentaryLUFS is the highest 400 ms loudness seen.
	MomentaryLUFS float64
	PeakDBFS      float64
	RMSDB         float64
	Frames        int64
}

func (r Report) String() string {
	return fmt.Sprintf("integrated %.1f LUFS, momentary max %.1f LUFS, peak %.1f dBFS, rms %.1f dB",
		r.IntegratedLUFS, r.MomentaryLUFS, r.PeakDBFS, r.RMSDB)
}

// Analyze drains src from its current position and measures it.
func Analyze(src audio.Source) (Report, error) {
	ch := src.Channels()
	meter := dsploudness.NewMeter(
		dsploudness.WithSampleRate(float64(src.SampleRate())),
		dsploudness.WithChannels(ch),
	)
	meter.StartIntegration()

	// 100 ms blocks line up with the meter's gating step
	blockFrames := max(src.SampleRate()/10, 1)
	buf := make([]float32, blockFrames*ch)
	block := make([]float64, len(buf))

	r := Report{MomentaryLUFS: math.Inf(-1)}
	var sum float64
	for {
		n, err := audio.ReadFull(src, buf)
		n -= n % ch
		if n > 0 {
			for i, v := range buf[:n] {
				block[i] = float64(v)
				sum += block[i] * block[i]
			}
			meter.ProcessBlock(block[:n])
			r.Frames += int64(n / ch)
			r.MomentaryLUFS = max(r.MomentaryLUFS, meter.Momentary())
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Report{}, fmt.Errorf("loudness report: %w", err)
		}
	}

	r.IntegratedLUFS = meter.Integrated()

	peak := 0.0
	for _, p := range meter.Peaks() {
		peak = max(peak, p)
	}
	r.PeakDBFS = toDB(peak)

	if r.Frames > 0 {
		r.RMSDB = toDB(math.Sqrt(sum / float64(r.Frames*int64(ch))))
	} else {
		r.RMSDB = math.Inf(-1)
	}

	return r, nil
}

func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}
