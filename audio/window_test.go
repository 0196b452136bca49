// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"testing"
)

func readAll(t *testing.T, src Source) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 7*src.Channels())
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestWindow_Range(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end int64
		wantFirst  float32
		wantFrames int
	}{
		{"middle", 10, 25, 10, 15},
		{"from start", 0, 5, 0, 5},
		{"open end", 90, -1, 90, 10},
		{"end clamped to stream", 95, 500, 95, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, seekable := range []bool{false, true} {
				var src Source = newRampSource(8000, 2, 100)
				if seekable {
					src = &seekableSource{mockSource: src.(*mockSource)}
				}

				w, err := NewWindow(src, tt.start, tt.end)
				if err != nil {
					t.Fatalf("NewWindow() error = %v", err)
				}
				if w.Frames() != int64(tt.wantFrames) {
					t.Errorf("Frames() = %d, want %d", w.Frames(), tt.wantFrames)
				}

				got := readAll(t, w)
				if len(got) != tt.wantFrames*2 {
					t.Fatalf("seekable=%v read %d samples, want %d", seekable, len(got), tt.wantFrames*2)
				}
				if got[0] != tt.wantFirst || got[1] != tt.wantFirst+0.1 {
					t.Errorf("first frame = [%v %v], want [%v %v]", got[0], got[1], tt.wantFirst, tt.wantFirst+0.1)
				}
				if w.Position() != int64(tt.wantFrames) {
					t.Errorf("Position() = %d, want %d", w.Position(), tt.wantFrames)
				}
			}
		})
	}
}

func TestWindow_UsesSeeker(t *testing.T) {
	t.Parallel()

	src := &seekableSource{mockSource: newRampSource(8000, 1, 100)}
	w, err := NewWindow(src, 40, 50)
	if err != nil {
		t.Fatalf("NewWindow() error = %v", err)
	}

	_ = readAll(t, w)
	if src.seeks != 1 {
		t.Errorf("SeekFrame called %d times, want 1", src.seeks)
	}
}

func TestWindow_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end int64
	}{
		{"negative start", -1, 10},
		{"end before start", 20, 10},
		{"empty", 10, 10},
		{"start beyond stream", 100, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewWindow(newSilentSource(8000, 1, 100), tt.start, tt.end)
			if !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("NewWindow(%d, %d) error = %v, want ErrInvalidWindow", tt.start, tt.end, err)
			}
		})
	}
}
