// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Frames is the total number of frames in the stream, or -1 when the
	// codec cannot tell before reaching the end.
	Frames() int64
	// Position is the number of frames consumed so far.
	Position() int64

	// Close releases any resources.
	Close() error
}

// Seeker is implemented by sources that can move their read cursor.
type Seeker interface {
	SeekFrame(frame int64) error
}

// Sink receives processed chunks in call order.
//
// The first Write fixes the sink's sample rate and channel count; a chunk
// with a different format is rejected with ErrFormatChanged. Callers may
// reuse c.Data once Write returns.
type Sink interface {
	Write(c *Chunk) error
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Lookup resolves a decoder from the extension of path.
func (r *Registry) Lookup(path string) (Decoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	d, ok := r.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ext, ErrUnsupportedFormat)
	}

	return d, nil
}

// Supports reports whether a decoder is registered for the extension of path.
func (r *Registry) Supports(path string) bool {
	_, err := r.Lookup(path)
	return err == nil
}

// Formats returns the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}
