// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrFormatChanged     = errors.New("sink format cannot change after first write")
	ErrInvalidChannel    = errors.New("channel index out of range")
	ErrInvalidWindow     = errors.New("window end must be after start")
	ErrNotSeekable       = errors.New("source is not seekable")
	ErrNoProgress        = errors.New("source returned no samples repeatedly")
)
