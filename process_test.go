// SPDX-License-Identifier: EPL-2.0

package audfx_test

import (
	"context"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audfx"
	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/wav"
	"github.com/ik5/audfx/fx"
	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/loudness"
	"github.com/ik5/audfx/session"
	"github.com/ik5/audfx/utils"
)

func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, suffix, want string
	}{
		{"voice.mp3", "_processed", "voice_processed.wav"},
		{filepath.Join("a", "b", "take.1.wav"), "_fx", filepath.Join("a", "b", "take.1_fx.wav")},
		{"noext", "_processed", "noext_processed.wav"},
		{"song.ogg", "", "song.wav"},
	}

	for _, tt := range tests {
		if got := audfx.DefaultOutputPath(tt.in, tt.suffix); got != tt.want {
			t.Errorf("DefaultOutputPath(%q, %q) = %q, want %q", tt.in, tt.suffix, got, tt.want)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	got := audfx.DefaultRegistry().Formats()
	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}

	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProcessFile_ManualGain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "voice.wav", audiotest.NewNoiseSource(8000, 1, 28000, 0.25))

	res, err := audfx.ProcessFile(context.Background(), in, "", fx.Params{GainDB: fx.Float(6)})
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if want := filepath.Join(dir, "voice_processed.wav"); res.Output != want {
		t.Errorf("Output = %q, want %q", res.Output, want)
	}
	if res.Chunks != 4 || res.Frames != 28000 {
		t.Errorf("result = %d chunks/%d frames, want 4/28000", res.Chunks, res.Frames)
	}
	if res.Chain != "gain(+6.00dB)" {
		t.Errorf("Chain = %q", res.Chain)
	}

	_, before := readWAV(t, in)
	src, after := readWAV(t, res.Output)
	if src.SampleRate() != 8000 || src.Channels() != 1 || src.Frames() != 28000 {
		t.Errorf("output = %d Hz/%d ch/%d frames, want 8000/1/28000", src.SampleRate(), src.Channels(), src.Frames())
	}

	if gain := utils.GainToDB(utils.RMS(after) / utils.RMS(before)); math.Abs(gain-6) > 0.05 {
		t.Errorf("output is %.3f dB over input, want 6", gain)
	}
}

func TestProcessFile_AutoGain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "quiet.wav", audiotest.NewNoiseSource(8000, 2, 24000, 0.25))
	out := filepath.Join(dir, "loud.wav")

	_, err := audfx.ProcessFile(context.Background(), in, out, fx.Params{TargetLoudnessDB: fx.Float(-9)})
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	_, data := readWAV(t, out)
	if level := utils.GainToDB(utils.RMS(data)); math.Abs(level+9) > 0.1 {
		t.Errorf("output level = %.2f dB, want -9", level)
	}
}

func TestProcessFile_ValidatesBeforeOpening(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "missing.wav")

	_, err := audfx.ProcessFile(context.Background(), in, "", fx.Params{
		Compressor: &fx.CompressorParams{ThresholdDB: -20, Ratio: 0.5},
	})

	var invalid *fx.InvalidParameterError
	if !errors.As(err, &invalid) || invalid.Param != "compressor.ratio" {
		t.Fatalf("ProcessFile() error = %v, want InvalidParameterError for compressor.ratio", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing_processed.wav")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("output was created: %v", err)
	}
}

func TestProcessFile_RejectsBeforeCreatingOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		p     fx.Params
		param string
	}{
		{"chunk overflows duration", fx.Params{ChunkDurationS: fx.Float(1e10)}, "chunk_duration_s"},
		{"gain overflows float32", fx.Params{GainDB: fx.Float(800)}, "gain_db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			in := writeWAV(t, dir, "voice.wav", audiotest.NewNoiseSource(8000, 1, 8000, 0.25))
			out := filepath.Join(dir, "out.wav")

			_, err := audfx.ProcessFile(context.Background(), in, out, tt.p)

			var invalid *fx.InvalidParameterError
			if !errors.As(err, &invalid) || invalid.Param != tt.param {
				t.Fatalf("ProcessFile() error = %v, want InvalidParameterError for %s", err, tt.param)
			}
			if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("output was created: %v", err)
			}
		})
	}
}

func TestProcessFile_SilentInputWithTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "silence.wav", audiotest.NewSilentSource(8000, 1, 16000))
	out := filepath.Join(dir, "out.wav")

	_, err := audfx.ProcessFile(context.Background(), in, out, fx.Params{
		HighpassCutoffHz: fx.Float(200),
		TargetLoudnessDB: fx.Float(-16),
	})

	var silent *loudness.SilentInputError
	if !errors.As(err, &silent) {
		t.Fatalf("ProcessFile() error = %v, want SilentInputError", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("output was created: %v", err)
	}

	// manual gain never measures, so silence is fine
	if _, err := audfx.ProcessFile(context.Background(), in, out, fx.Params{
		GainDB:           fx.Float(6),
		TargetLoudnessDB: fx.Float(-16),
	}); err != nil {
		t.Errorf("ProcessFile() with manual gain error = %v", err)
	}
}

func TestProcessFile_InputErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	fake := filepath.Join(dir, "fake.wav")
	for _, p := range []string{text, fake} {
		if err := os.WriteFile(p, []byte("definitely not audio, just some text"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"missing", filepath.Join(dir, "nope.wav"), fs.ErrNotExist},
		{"unsupported", text, audio.ErrUnsupportedFormat},
		{"undecodable", fake, wav.ErrNotWavFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := audfx.ProcessFile(context.Background(), tt.in, filepath.Join(dir, tt.name+"_out.wav"), fx.Params{})

			var open *audfx.InputOpenError
			if !errors.As(err, &open) || open.Path != tt.in {
				t.Fatalf("ProcessFile() error = %v, want InputOpenError", err)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ProcessFile() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProcessFile_OutputNotCreatable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "in.wav", audiotest.NewConstantSource(8000, 1, 800, 0.5))

	_, err := audfx.ProcessFile(context.Background(), in, filepath.Join(dir, "no", "such", "dir.wav"), fx.Params{})

	var we *session.OutputWriteError
	if !errors.As(err, &we) || we.Chunk != -1 {
		t.Fatalf("ProcessFile() error = %v, want OutputWriteError with chunk -1", err)
	}
}

func TestProcessFile_OutputIsInput(t *testing.T) {
	t.Parallel()

	in := writeWAV(t, t.TempDir(), "in.wav", audiotest.NewConstantSource(8000, 1, 800, 0.5))

	_, err := audfx.ProcessFile(context.Background(), in, in, fx.Params{GainDB: fx.Float(1)})

	var invalid *fx.InvalidParameterError
	if !errors.As(err, &invalid) || invalid.Param != "output" {
		t.Fatalf("ProcessFile() error = %v, want InvalidParameterError for output", err)
	}
}

func TestProcessFile_InvalidBitDepth(t *testing.T) {
	t.Parallel()

	_, err := audfx.ProcessFile(context.Background(), "in.wav", "", fx.Params{}, audfx.WithBitDepth(12))

	var invalid *fx.InvalidParameterError
	if !errors.As(err, &invalid) || invalid.Param != "bit_depth" {
		t.Fatalf("ProcessFile() error = %v, want InvalidParameterError for bit_depth", err)
	}
}

func TestProcessFile_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "in.wav", audiotest.NewConstantSource(8000, 1, 8000, 0.5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := audfx.ProcessFile(ctx, in, "", fx.Params{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ProcessFile() error = %v, want context.Canceled", err)
	}
	if res.Chunks != 0 {
		t.Errorf("Chunks = %d, want 0", res.Chunks)
	}
}

func TestProcessFile_ProgressAndBitDepth(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "in.wav", audiotest.NewConstantSource(8000, 1, 20000, 0.5))

	var calls int
	var last session.Progress
	res, err := audfx.ProcessFile(context.Background(), in, "", fx.Params{ChunkDurationS: fx.Float(0.5)},
		audfx.WithBitDepth(24),
		audfx.WithSuffix("_hq"),
		audfx.WithProgress(func(p session.Progress) {
			calls++
			last = p
		}))
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if calls != 5 || last.Fraction != 1 {
		t.Errorf("progress calls = %d, last = %+v, want 5 ending at 1", calls, last)
	}
	if filepath.Base(res.Output) != "in_hq.wav" {
		t.Errorf("Output = %q, want in_hq.wav", res.Output)
	}

	f, err := os.Open(res.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if _, err := (wav.Decoder{}).Decode(f); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
}

func TestProcessFile_LoudnessReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeWAV(t, dir, "in.wav", audiotest.NewNoiseSource(16000, 1, 48000, 0.1))

	res, err := audfx.ProcessFile(context.Background(), in, "", fx.Params{GainDB: fx.Float(6)}, audfx.WithLoudnessReport())
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}
	if res.InputLoudness == nil || res.OutputLoudness == nil {
		t.Fatalf("loudness reports missing: %+v", res)
	}

	if d := res.OutputLoudness.RMSDB - res.InputLoudness.RMSDB; math.Abs(d-6) > 0.05 {
		t.Errorf("RMS difference = %.3f dB, want 6", d)
	}
	if d := res.OutputLoudness.IntegratedLUFS - res.InputLoudness.IntegratedLUFS; math.Abs(d-6) > 0.3 {
		t.Errorf("integrated loudness difference = %.3f LU, want about 6", d)
	}
}

func BenchmarkProcessFile(b *testing.B) {
	dir := b.TempDir()
	in := writeWAV(b, dir, "bench.wav", audiotest.NewNoiseSource(44100, 2, 44100, 0.5))
	p := fx.Params{HighpassCutoffHz: fx.Float(100), GainDB: fx.Float(3), LimiterThresholdDB: fx.Float(-1)}

	for b.Loop() {
		if _, err := audfx.ProcessFile(context.Background(), in, "", p); err != nil {
			b.Fatal(err)
		}
	}
}

func TestAnalyzeFile(t *testing.T) {
	t.Parallel()

	in := writeWAV(t, t.TempDir(), "tone.wav", audiotest.NewSineSource(16000, 1, 32000, 1000))

	r, err := audfx.AnalyzeFile(in)
	if err != nil {
		t.Fatalf("AnalyzeFile() error = %v", err)
	}
	if r.Frames != 32000 {
		t.Errorf("Frames = %d, want 32000", r.Frames)
	}
	if math.Abs(r.RMSDB+3.01) > 0.05 {
		t.Errorf("RMSDB = %.2f, want -3.01", r.RMSDB)
	}

	var open *audfx.InputOpenError
	if _, err := audfx.AnalyzeFile(filepath.Join(t.TempDir(), "gone.wav")); !errors.As(err, &open) {
		t.Errorf("AnalyzeFile(missing) error = %v, want InputOpenError", err)
	}
}
