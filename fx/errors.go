// SPDX-License-Identifier: EPL-2.0

package fx

import (
	"errors"
	"fmt"
)

var (
	ErrNonFinite    = errors.New("non-finite sample")
	ErrFormat       = errors.New("chunk format does not match stage")
	ErrNoProbeInput = errors.New("target loudness needs a loudness source")
)

// InvalidParameterError reports a parameter rejected before any audio is
// read or written.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

func invalid(param string, value any, reason string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}

// StageError wraps the failure of the stage at Index in a chain.
type StageError struct {
	Index int
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %d (%s): %v", e.Index, e.Stage.Name(), e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
