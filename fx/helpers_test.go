// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"io"
	"testing"

	"github.com/ik5/audfx/audio"
)

func readAll(t testing.TB, src audio.Source) []float32 {
	t.Helper()

	out := make([]float32, 0, max(src.Frames(), 0)*int64(src.Channels()))
	buf := make([]float32, 1024*src.Channels())
	for {
		n, err := audio.ReadFull(src, buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadFull() error = %v", err)
		}
	}
}

func chunkOf(index, rate, channels int, data []float32) *audio.Chunk {
	return &audio.Chunk{
		Index:      index,
		SampleRate: rate,
		Channels:   channels,
		Data:       append([]float32(nil), data...),
	}
}
