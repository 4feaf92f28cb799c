// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// Future is a pollable computation producing a single value of type T.
//
// Poll advances the computation. It returns (value, true) when the
// computation completes and (zero, false) while it is not ready yet. A
// future that returns false must have arranged for the [Waker] found in cx
// to be woken once progress is possible.
//
// Poll must not be called again after it has returned true. Futures built by
// this package panic when that happens.
type Future[T any] interface {
	Poll(cx *Context) (T, bool)
}

// Status is the three-way outcome of [Stream.PollNext].
type Status uint8

const (
	// Pending means no item is available yet; the stream has registered
	// interest in the Waker.
	Pending Status = iota
	// Produced means an item was produced.
	Produced
	// Ended means the stream is exhausted. It is not an error.
	Ended
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Produced:
		return "Produced"
	case Ended:
		return "Ended"
	}
	return "Status(?)"
}

// Stream is a pollable computation producing a sequence of values.
// PollNext must not be called again after it has returned [Ended].
type Stream[T any] interface {
	PollNext(cx *Context) (T, Status)
}

// Sink is a pollable consumer of a sequence of values.
//
// The protocol is: PollReady until it reports true, then StartSend exactly
// once. StartSend either accepts the item (nil) or rejects it (non-nil
// error). PollFlush drives buffered items out; PollClose flushes and
// releases the sink. All Poll methods return (false, nil) while pending.
type Sink[T any] interface {
	PollReady(cx *Context) (bool, error)
	StartSend(item T) error
	PollFlush(cx *Context) (bool, error)
	PollClose(cx *Context) (bool, error)
}

// FutureFunc adapts a poll function to [Future].
// It carries no completion guard; see [PollFunc] for one that does.
type FutureFunc[T any] func(cx *Context) (T, bool)

// Poll implements [Future].
func (f FutureFunc[T]) Poll(cx *Context) (T, bool) { return f(cx) }

// StreamFunc adapts a poll function to [Stream].
type StreamFunc[T any] func(cx *Context) (T, Status)

// PollNext implements [Stream].
func (f StreamFunc[T]) PollNext(cx *Context) (T, Status) { return f(cx) }
