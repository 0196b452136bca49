// SPDX-License-Identifier: EPL-2.0

package audfx

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/aiff"
	"github.com/ik5/audfx/formats/mp3"
	"github.com/ik5/audfx/formats/vorbis"
	"github.com/ik5/audfx/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})

	return r
}

// fileSource ties a decoded stream to the file it reads from.
type fileSource struct {
	audio.Source
	f *os.File
}

func (s *fileSource) Close() error {
	var errs []error
	if err := s.Source.Close(); err != nil {
		errs = append(errs, err)
	}
	// some decoders close the file themselves
	if err := s.f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

type seekableFileSource struct {
	*fileSource
	seeker audio.Seeker
}

func (s *seekableFileSource) SeekFrame(frame int64) error {
	return s.seeker.SeekFrame(frame)
}

// openSource decodes path with the decoder registered for its extension.
// The returned source closes the file.
func openSource(reg *audio.Registry, path string) (audio.Source, error) {
	dec, err := reg.Lookup(path)
	if err != nil {
		return nil, &InputOpenError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &InputOpenError{Path: path, Err: err}
	}

	src, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, &InputOpenError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	fs := &fileSource{Source: src, f: f}
	if s, ok := src.(audio.Seeker); ok {
		return &seekableFileSource{fileSource: fs, seeker: s}, nil
	}

	return fs, nil
}
