// SPDX-License-Identifier: EPL-2.0

package audfx

import "fmt"

// InputOpenError reports an input file that could not be opened or decoded.
type InputOpenError struct {
	Path string
	Err  error
}

func (e *InputOpenError) Error() string {
	return fmt.Sprintf("open input %s: %v", e.Path, e.Err)
}

func (e *InputOpenError) Unwrap() error { return e.Err }
