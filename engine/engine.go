// Package engine defines the boundary to the external text-generation
// engine and the adapters that speak to it. The core never touches model
// internals; it hands over a flat prompt plus sampling parameters and gets
// back either a complete string or an ordered, finite fragment stream.
package engine

import (
	"context"
	"sync"
)

// Params are the per-request sampling parameters. Nil pointer fields leave
// the engine's own defaults in place.
type Params struct {
	Temperature *float64
	TopP        *float64
	TopK        *int
	MaxLength   *int
	// Stop carries stop-sequence hints for engines that can honor them
	// natively. Post-hoc trimming is applied by the caller regardless.
	Stop []string
}

// Result is a complete blocking generation.
type Result struct {
	Text string
	// FinishReason is "stop" or "length" as reported by the engine;
	// empty means the engine did not say and "stop" should be assumed.
	FinishReason string
}

// Engine produces text from prompts. Implementations are not assumed to be
// reentrant; wrap with Serialized when sharing one instance across requests.
type Engine interface {
	// Complete runs one blocking generation.
	Complete(ctx context.Context, prompt string, params Params) (*Result, error)
	// Stream starts a generation whose decoded fragments are delivered
	// through the returned Stream in production order. The producer runs on
	// its own goroutine; abandoning the consumer must go through
	// Stream.Detach, which lets the adapter wind the producer down safely
	// instead of killing generation mid-token.
	Stream(ctx context.Context, prompt string, params Params) (*Stream, error)
}

// Event is one element of a fragment stream: a piece of decoded text, or a
// terminal error.
type Event struct {
	Text string
	Err  error
}

// Stream is a finite, ordered, non-restartable fragment sequence bridging a
// producer goroutine and a single consumer.
type Stream struct {
	events chan Event
	quit   chan struct{}
	once   sync.Once
}

// NewStream creates a stream with the given channel buffer.
func NewStream(buffer int) *Stream {
	if buffer < 0 {
		buffer = 0
	}
	return &Stream{
		events: make(chan Event, buffer),
		quit:   make(chan struct{}),
	}
}

// Events returns the fragment channel. It is closed by the producer when
// generation finishes or the stream is detached.
func (s *Stream) Events() <-chan Event { return s.events }

// Detach tells the producer the consumer is gone. Pending and future
// fragments are discarded; the producer decides how to wind down the
// underlying generation. Safe to call multiple times and concurrently with
// channel reads.
func (s *Stream) Detach() {
	s.once.Do(func() { close(s.quit) })
}

// Done exposes the detach signal to the producer side.
func (s *Stream) Done() <-chan struct{} { return s.quit }

// Send delivers one event to the consumer. It reports false when the stream
// was detached, in which case the producer must stop sending and Close.
func (s *Stream) Send(ev Event) bool {
	select {
	case <-s.quit:
		return false
	case s.events <- ev:
		return true
	}
}

// Close marks the end of the sequence. Producer side only, exactly once.
func (s *Stream) Close() { close(s.events) }
