// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Window exposes the frames [start, end) of a source as a stream of its own.
type Window struct {
	src   Source
	start int64
	end   int64
	pos   int64

	positioned bool
	skip       []float32
}

// NewWindow wraps src so that reading starts at frame start and stops
// before frame end. A negative end means "until the end of src".
func NewWindow(src Source, start, end int64) (*Window, error) {
	if start < 0 || (end >= 0 && end <= start) {
		return nil, fmt.Errorf("[%d, %d): %w", start, end, ErrInvalidWindow)
	}

	if total := src.Frames(); total >= 0 {
		if start >= total {
			return nil, fmt.Errorf("start %d beyond %d frames: %w", start, total, ErrInvalidWindow)
		}
		if end < 0 || end > total {
			end = total
		}
	}

	return &Window{src: src, start: start, end: end}, nil
}

func (w *Window) SampleRate() int { return w.src.SampleRate() }
func (w *Window) Channels() int   { return w.src.Channels() }
func (w *Window) BufSize() int    { return w.src.BufSize() }
func (w *Window) Position() int64 { return w.pos }
func (w *Window) Close() error {
	if err := w.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (w *Window) Frames() int64 {
	if w.end < 0 {
		return -1
	}

	return w.end - w.start
}

func (w *Window) ReadSamples(dst []float32) (int, error) {
	if !w.positioned {
		if err := w.seekStart(); err != nil {
			return 0, err
		}
		w.positioned = true
	}

	channels := w.src.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if w.end >= 0 {
		left := (w.end - w.start - w.pos) * int64(channels)
		if left <= 0 {
			return 0, io.EOF
		}
		if int64(len(dst)) > left {
			dst = dst[:left]
		}
	}

	n, err := w.src.ReadSamples(dst)
	w.pos += int64(n / channels)

	if err == nil && w.end >= 0 && w.pos >= w.end-w.start {
		err = io.EOF
	}

	return n, err
}

func (w *Window) seekStart() error {
	offset := w.start - w.src.Position()
	if offset == 0 {
		return nil
	}

	if s, ok := w.src.(Seeker); ok {
		if err := s.SeekFrame(w.start); err != nil {
			return fmt.Errorf("seek to frame %d: %w", w.start, err)
		}
		return nil
	}

	if offset < 0 {
		return fmt.Errorf("rewind to frame %d: %w", w.start, ErrNotSeekable)
	}

	channels := w.src.Channels()
	w.skip = grow(w.skip, 4096*channels)
	for offset > 0 {
		want := min(offset, 4096) * int64(channels)
		n, err := w.src.ReadSamples(w.skip[:want])
		offset -= int64(n / channels)
		if err == io.EOF {
			if offset > 0 {
				return io.EOF
			}
			break
		}
		if err != nil {
			return fmt.Errorf("skip to frame %d: %w", w.start, err)
		}
	}

	return nil
}
