// SPDX-License-Identifier: EPL-2.0

package audfx_test

import (
	"path/filepath"
	"testing"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/internal/audiotest"
)

// writeWAV drains src into dir/name and returns the path.
func writeWAV(tb testing.TB, dir, name string, src audio.Source) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	audiotest.WriteWAV(tb, path, src)

	return path
}

func readWAV(tb testing.TB, path string) (audio.Source, []float32) {
	tb.Helper()

	return audiotest.ReadWAV(tb, path)
}
