// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/wav"
)

// WriteWAV drains src into a 16-bit WAV file at path.
func WriteWAV(tb testing.TB, path string, src audio.Source) {
	tb.Helper()

	w, err := wav.Create(path, 16)
	if err != nil {
		tb.Fatalf("create %s: %v", path, err)
	}

	buf := make([]float32, 4096*src.Channels())
	for i := 0; ; i++ {
		n, err := audio.ReadFull(src, buf)
		if n > 0 {
			c := &audio.Chunk{Index: i, SampleRate: src.SampleRate(), Channels: src.Channels(), Data: buf[:n]}
			if werr := w.Write(c); werr != nil {
				tb.Fatalf("write %s: %v", path, werr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			tb.Fatalf("read source: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		tb.Fatalf("close %s: %v", path, err)
	}
}

// ReadWAV decodes the whole WAV file at path. The returned source is
// closed and only useful for its format.
func ReadWAV(tb testing.TB, path string) (audio.Source, []float32) {
	tb.Helper()

	f, err := os.Open(path)
	if err != nil {
		tb.Fatal(err)
	}

	src, err := wav.Decoder{}.Decode(f)
	if err != nil {
		_ = f.Close()
		tb.Fatalf("decode %s: %v", path, err)
	}
	defer src.Close()

	data := make([]float32, src.Frames()*int64(src.Channels()))
	if _, err := audio.ReadFull(src, data); err != nil && !errors.Is(err, io.EOF) {
		tb.Fatalf("read %s: %v", path, err)
	}

	return src, data
}
