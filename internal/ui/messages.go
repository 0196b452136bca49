// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"github.com/ik5/audfx"
	"github.com/ik5/audfx/session"
)

// FileStartMsg marks a file as being processed.
type FileStartMsg struct {
	Path string
}

// ProgressMsg carries a session progress report for a file.
type ProgressMsg struct {
	Path     string
	Progress session.Progress
}

// FileCompleteMsg indicates a file has finished, successfully or not.
type FileCompleteMsg struct {
	Path   string
	Result audfx.Result
	Err    error
}

// AllCompleteMsg indicates all files have been processed
type AllCompleteMsg struct{}
