// SPDX-License-Identifier: EPL-2.0

package loudness_test

import (
	"fmt"

	"github.com/ik5/audfx/internal/audiotest"
	"github.com/ik5/audfx/loudness"
)

func ExampleEstimate() {
	src := audiotest.NewConstantSource(44100, 2, 44100, 0.1)

	m, err := loudness.Estimate(src, loudness.DefaultWindow)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("%.1f dB over %d frames\n", m.DB, m.Frames)
	fmt.Println("gain to reach -9 dB:", fmt.Sprintf("%+.1f", -9-m.DB))
	// Output:
	// -20.0 dB over 44100 frames
	// gain to reach -9 dB: +11.0
}

func ExampleEstimate_silence() {
	_, err := loudness.Estimate(audiotest.NewSilentSource(8000, 1, 800), 0)
	fmt.Println(err)
	// Output:
	// silent input: 800 frames with zero amplitude
}
