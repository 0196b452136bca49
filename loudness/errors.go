// SPDX-License-Identifier: EPL-2.0

package loudness

import (
	"errors"
	"fmt"
)

var ErrEmptyWindow = errors.New("loudness window holds no frames")

// SilentInputError is returned when the measured window has zero RMS and
// no finite level exists.
type SilentInputError struct {
	Frames int64
}

func (e *SilentInputError) Error() string {
	return fmt.Sprintf("silent input: %d frames with zero amplitude", e.Frames)
}
