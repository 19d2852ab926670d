package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// overlapEngine tracks how many generations run at once.
type overlapEngine struct {
	fragments []string

	inFlight    int32
	maxInFlight int32
}

func (e *overlapEngine) enter() {
	n := atomic.AddInt32(&e.inFlight, 1)
	for {
		max := atomic.LoadInt32(&e.maxInFlight)
		if n <= max || atomic.CompareAndSwapInt32(&e.maxInFlight, max, n) {
			break
		}
	}
}

func (e *overlapEngine) leave() { atomic.AddInt32(&e.inFlight, -1) }

func (e *overlapEngine) Complete(ctx context.Context, prompt string, params Params) (*Result, error) {
	e.enter()
	defer e.leave()
	time.Sleep(5 * time.Millisecond)
	return &Result{Text: "echo: " + prompt, FinishReason: "stop"}, nil
}

func (e *overlapEngine) Stream(ctx context.Context, prompt string, params Params) (*Stream, error) {
	e.enter()
	s := NewStream(1)
	go func() {
		defer s.Close()
		defer e.leave()
		for _, fragment := range e.fragments {
			time.Sleep(time.Millisecond)
			if !s.Send(Event{Text: fragment}) {
				return
			}
		}
	}()
	return s, nil
}

func TestSerializedComplete(t *testing.T) {
	inner := &overlapEngine{}
	serialized := NewSerialized(inner)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := serialized.Complete(context.Background(), "p", Params{})
			assert.NoError(t, err)
			assert.Equal(t, "echo: p", result.Text)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.maxInFlight))
}

func TestSerializedStreamForwardsEvents(t *testing.T) {
	inner := &overlapEngine{fragments: []string{"a", "b", "c"}}
	serialized := NewSerialized(inner)

	stream, err := serialized.Stream(context.Background(), "p", Params{})
	require.NoError(t, err)

	var got []string
	for ev := range stream.Events() {
		require.NoError(t, ev.Err)
		got = append(got, ev.Text)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSerializedStreamHoldsLockUntilDrained(t *testing.T) {
	inner := &overlapEngine{fragments: []string{"a", "b"}}
	serialized := NewSerialized(inner)

	stream, err := serialized.Stream(context.Background(), "p", Params{})
	require.NoError(t, err)

	for range stream.Events() {
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := serialized.Complete(context.Background(), "next", Params{})
		assert.NoError(t, err)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("complete blocked after stream drained")
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&inner.maxInFlight))
}

func TestSerializedStreamDetachReleasesLock(t *testing.T) {
	inner := &overlapEngine{fragments: []string{"a", "b", "c", "d", "e"}}
	serialized := NewSerialized(inner)

	stream, err := serialized.Stream(context.Background(), "p", Params{})
	require.NoError(t, err)
	stream.Detach()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := serialized.Complete(context.Background(), "next", Params{})
		assert.NoError(t, err)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("complete blocked after stream detach")
	}
}

func TestStreamSendAfterDetach(t *testing.T) {
	s := NewStream(0)
	s.Detach()
	assert.False(t, s.Send(Event{Text: "late"}))
	s.Close()
}
