// SPDX-License-Identifier: EPL-2.0

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/fx"
	"github.com/ik5/audfx/utils"
)

// Progress is reported after every chunk written.
type Progress struct {
	Chunk      int
	FramesDone int64
	// FramesTotal is -1 when the source length is unknown.
	FramesTotal int64
	// Fraction is FramesDone/FramesTotal, 0 when the total is unknown.
	Fraction float64
	// LevelDB is the RMS level of the processed chunk.
	LevelDB float64
}

type Result struct {
	Chunks   int
	Frames   int64
	Duration time.Duration
	PeakDBFS float64
}

type Option func(*Session)

func WithProgress(fn func(Progress)) Option {
	return func(s *Session) { s.progress = fn }
}

// WithChunkDuration sets the nominal chunk length. The default is
// fx.DefaultChunkDuration.
func WithChunkDuration(d time.Duration) Option {
	return func(s *Session) { s.chunkDuration = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session streams one source through one chain into one sink.
//
// The session owns both handles from New on and releases them exactly once,
// whether Run succeeds, fails or is cancelled, or Close is called without
// running.
type Session struct {
	src   audio.Source
	sink  audio.Sink
	chain *fx.Chain

	chunkDuration time.Duration
	chunkFrames   int
	progress      func(Progress)
	logger        *slog.Logger

	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

// New takes ownership of src and sink. A nil chain passes audio through.
func New(src audio.Source, sink audio.Sink, chain *fx.Chain, opts ...Option) (*Session, error) {
	if chain == nil {
		chain = fx.NewChain()
	}

	s := &Session{
		src:           src,
		sink:          sink,
		chain:         chain,
		chunkDuration: fx.DefaultChunkDuration,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.chunkDuration <= 0 {
		return nil, &fx.InvalidParameterError{Param: "chunk_duration_s", Value: s.chunkDuration.Seconds(), Reason: "must be positive"}
	}
	if src.SampleRate() <= 0 || src.Channels() <= 0 {
		return nil, &fx.InvalidParameterError{
			Param:  "input_format",
			Value:  fmt.Sprintf("%d Hz/%d ch", src.SampleRate(), src.Channels()),
			Reason: "sample rate and channel count must be positive",
		}
	}

	s.chunkFrames = max(int(math.Round(s.chunkDuration.Seconds()*float64(src.SampleRate()))), 1)
	s.state.Store(int32(Opened))

	return s, nil
}

func (s *Session) State() State { return State(s.state.Load()) }

// ChunkFrames is the nominal number of frames per chunk.
func (s *Session) ChunkFrames() int { return s.chunkFrames }

// Run processes the source until it is exhausted, ctx is done or an error
// occurs, then releases both handles. Cancellation is checked before each
// chunk; a chunk in flight is always completed.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if !s.state.CompareAndSwap(int32(Opened), int32(Processing)) {
		return Result{}, fmt.Errorf("run in state %s: %w", s.State(), ErrNotOpen)
	}

	res, err := s.loop(ctx)

	switch {
	case err == nil:
		s.state.Store(int32(Drained))
		if cerr := s.Close(); cerr != nil {
			s.state.Store(int32(Failed))
			return res, &OutputWriteError{Chunk: res.Chunks, Err: cerr}
		}
		s.logger.Info("session drained", "chunks", res.Chunks, "frames", res.Frames, "peak_dbfs", res.PeakDBFS)

	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		s.logger.Info("session cancelled", "chunks", res.Chunks, "frames", res.Frames)
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}

	default:
		s.state.Store(int32(Failed))
		s.logger.Error("session failed", "chunks", res.Chunks, "err", err)
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}

	return res, err
}

func (s *Session) loop(ctx context.Context) (Result, error) {
	sr, ch := s.src.SampleRate(), s.src.Channels()
	total := s.src.Frames()
	bufFrames := int64(s.chunkFrames)
	if total >= 0 {
		bufFrames = min(bufFrames, max(total, 1))
	}
	buf := make([]float32, bufFrames*int64(ch))

	res := Result{PeakDBFS: math.Inf(-1)}
	var peak float32

	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if total >= 0 && res.Frames >= total {
			break
		}

		want := int64(s.chunkFrames)
		if total >= 0 {
			want = min(want, total-res.Frames)
		}

		n, err := audio.ReadFull(s.src, buf[:want*int64(ch)])
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return res, &ReadError{Chunk: index, Err: err}
		}

		frames := n / ch
		if frames == 0 {
			break
		}

		chunk := &audio.Chunk{Index: index, SampleRate: sr, Channels: ch, Data: buf[:frames*ch]}
		if err := s.chain.Process(chunk); err != nil {
			return res, stageFailure(index, err)
		}
		if err := s.sink.Write(chunk); err != nil {
			return res, &OutputWriteError{Chunk: index, Err: err}
		}

		res.Chunks++
		res.Frames += int64(frames)
		peak = max(peak, chunk.Peak())
		res.PeakDBFS = utils.GainToDB(float64(peak))
		res.Duration = time.Duration(res.Frames) * time.Second / time.Duration(sr)

		s.logger.Debug("chunk written", "chunk", index, "frames", frames)
		if s.progress != nil {
			s.progress(s.report(index, res.Frames, total, chunk))
		}

		if eof {
			break
		}
	}

	return res, nil
}

func (s *Session) report(index int, done, total int64, c *audio.Chunk) Progress {
	p := Progress{
		Chunk:       index,
		FramesDone:  done,
		FramesTotal: total,
		LevelDB:     utils.GainToDB(utils.RMS(c.Data)),
	}
	if total > 0 {
		p.Fraction = float64(done) / float64(total)
	}

	return p
}

func stageFailure(index int, err error) error {
	var se *fx.StageError
	if errors.As(err, &se) {
		return &StageProcessingError{Chunk: index, Stage: se.Index, StageName: se.Stage.Name(), Err: se.Err}
	}

	return &StageProcessingError{Chunk: index, Stage: -1, Err: err}
}

// Close releases the source and the sink. Only the first call does work;
// later calls return the same error.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		var errs []error
		if err := s.src.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close input: %w", err))
		}
		if err := s.sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close output: %w", err))
		}
		s.closeErr = errors.Join(errs...)

		if s.State() != Failed {
			s.state.Store(int32(Closed))
		}
	})

	return s.closeErr
}
