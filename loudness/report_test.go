// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"math"
	"testing"

	"github.com/ik5/audfx/internal/audiotest"
)

func TestAnalyze_Sine(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(48000, 1, 48000*3, func(sample, _ int) float32 {
		return float32(0.5 * math.Sin(2*math.Pi*1000*float64(sample)/48000))
	})

	r, err := Analyze(src)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if r.Frames != 48000*3 {
		t.Errorf("Frames = %d, want %d", r.Frames, 48000*3)
	}
	if math.Abs(r.PeakDBFS+6.02) > 0.05 {
		t.Errorf("PeakDBFS = %.3f, want -6.02", r.PeakDBFS)
	}
	if math.Abs(r.RMSDB+9.03) > 0.05 {
		t.Errorf("RMSDB = %.3f, want -9.03", r.RMSDB)
	}
	// K weighting is close to flat at 1 kHz; the meter reads about -9.7 LUFS
	if r.IntegratedLUFS < -11 || r.IntegratedLUFS > -8 {
		t.Errorf("IntegratedLUFS = %.2f, want about -9.7", r.IntegratedLUFS)
	}
	if r.MomentaryLUFS < r.IntegratedLUFS-0.5 {
		t.Errorf("MomentaryLUFS = %.2f below integrated %.2f", r.MomentaryLUFS, r.IntegratedLUFS)
	}
}

func TestAnalyze_Silence(t *testing.T) {
	t.Parallel()

	r, err := Analyze(audiotest.NewSilentSource(8000, 2, 8000))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if !math.IsInf(r.PeakDBFS, -1) || !math.IsInf(r.RMSDB, -1) {
		t.Errorf("silence = peak %v, rms %v, want -Inf", r.PeakDBFS, r.RMSDB)
	}
	if r.IntegratedLUFS > -70 {
		t.Errorf("IntegratedLUFS = %v, want gated out", r.IntegratedLUFS)
	}
}
