// SPDX-License-Identifier: EPL-2.0

package session

import "fmt"

type State int32

const (
	// Opened: source and sink are acquired, nothing read yet.
	Opened State = iota
	Processing
	// Drained: every frame of the source was written.
	Drained
	// Closed: handles released after draining or cancellation.
	Closed
	// Failed: a read, stage or write error stopped the session. Handles
	// are released and partial output stays in the sink.
	Failed
)

func (s State) String() string {
	switch s {
	case Opened:
		return "opened"
	case Processing:
		return "processing"
	case Drained:
		return "drained"
	case Closed:
		return "closed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}
