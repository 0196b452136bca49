// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedEncoding  = errors.New("unsupported WAV sample encoding")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
	ErrUnsupportedBitDepth  = errors.New("output bit depth must be 16 or 24")
	ErrSeekOutOfRange       = errors.New("seek beyond WAV data")
	ErrWriterClosed         = errors.New("WAV writer is closed")
)
