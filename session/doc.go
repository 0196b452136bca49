// SPDX-License-Identifier: EPL-2.0

// Package session drives one stream through an effect chain.
//
// A Session owns an audio.Source, an audio.Sink and an *fx.Chain. Run reads
// the source in chunks of a fixed duration (the last chunk may be shorter),
// passes each chunk through the chain and writes it to the sink, in order.
// Both handles are released when Run returns, on every path.
//
//	s, err := session.New(src, sink, chain, session.WithChunkDuration(time.Second))
//	if err != nil {
//	    return err
//	}
//	res, err := s.Run(ctx)
//
// Failures carry the index of the chunk they happened on: *ReadError,
// *StageProcessingError and *OutputWriteError. Chunks written before a
// failure stay in the sink.
package session
