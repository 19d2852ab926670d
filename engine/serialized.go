package engine

import (
	"context"
	"sync"
)

// Serialized guards a non-reentrant engine shared across requests. The
// underlying model is a single mutable resource, so concurrent generations
// queue FIFO on the mutex (queue-and-serialize) rather than being rejected;
// a waiting request simply blocks at the invocation boundary until the
// model frees up.
type Serialized struct {
	inner Engine
	mu    sync.Mutex
}

// NewSerialized wraps inner with queue-and-serialize access.
func NewSerialized(inner Engine) *Serialized {
	return &Serialized{inner: inner}
}

func (s *Serialized) Complete(ctx context.Context, prompt string, params Params) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Complete(ctx, prompt, params)
}

// Stream holds the model lock for the whole lifetime of the inner stream:
// it is released only once the inner producer closes its channel, whether
// the consumer read everything or detached early. Detaching the returned
// stream detaches the inner one and drains it so the lock cannot leak.
func (s *Serialized) Stream(ctx context.Context, prompt string, params Params) (*Stream, error) {
	s.mu.Lock()
	inner, err := s.inner.Stream(ctx, prompt, params)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	out := NewStream(cap(inner.events))
	go func() {
		defer s.mu.Unlock()
		defer out.Close()
		for ev := range inner.Events() {
			if !out.Send(ev) {
				inner.Detach()
				for range inner.Events() {
				}
				return
			}
		}
	}()
	return out, nil
}
