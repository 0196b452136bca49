// SPDX-License-Identifier: EPL-2.0

package session

import (
	"errors"
	"fmt"
)

var ErrNotOpen = errors.New("session is not open")

// StageProcessingError reports the stage that failed and the chunk it was
// working on.
type StageProcessingError struct {
	Chunk     int
	Stage     int
	StageName string
	Err       error
}

func (e *StageProcessingError) Error() string {
	return fmt.Sprintf("chunk %d: stage %d (%s): %v", e.Chunk, e.Stage, e.StageName, e.Err)
}

func (e *StageProcessingError) Unwrap() error { return e.Err }

// OutputWriteError is a sink failure. Chunk is the chunk being written, the
// chunk count when finalizing the sink failed, or -1 when the sink could
// not be created at all.
type OutputWriteError struct {
	Chunk int
	Err   error
}

func (e *OutputWriteError) Error() string {
	if e.Chunk < 0 {
		return fmt.Sprintf("create output: %v", e.Err)
	}

	return fmt.Sprintf("write chunk %d: %v", e.Chunk, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// ReadError is a source failure other than the end of the stream.
type ReadError struct {
	Chunk int
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read chunk %d: %v", e.Chunk, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
