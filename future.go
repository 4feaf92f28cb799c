// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// phase is the lifecycle of a future built by this package.
type phase uint8

const (
	notStarted phase = iota
	running
	done
)

type readyFuture[T any] struct {
	value T
	done  bool
}

// Ready returns a future that completes with v on its first poll.
func Ready[T any](v T) Future[T] {
	return &readyFuture[T]{value: v}
}

func (f *readyFuture[T]) Poll(*Context) (T, bool) {
	if f.done {
		panic(panicPolledAfterCompletion)
	}
	f.done = true
	v := f.value
	var zero T
	f.value = zero
	return v, true
}

type lazyFuture[T any] struct {
	phase phase
	init  func() Future[T]
	inner Future[T]
}

// Lazy defers building a future until its first poll.
// init runs exactly once; the future it returns is dropped on completion.
func Lazy[T any](init func() Future[T]) Future[T] {
	return &lazyFuture[T]{init: init}
}

func (f *lazyFuture[T]) Poll(cx *Context) (T, bool) {
	switch f.phase {
	case notStarted:
		f.inner = f.init()
		f.init = nil
		f.phase = running
		fallthrough
	case running:
		v, ok := f.inner.Poll(cx)
		if ok {
			f.inner = nil
			f.phase = done
		}
		return v, ok
	}
	panic(panicPolledAfterCompletion)
}

type funcFuture[T any] struct {
	fn   func(cx *Context) (T, bool)
	done bool
}

// PollFunc returns a future polled by fn, guarded against polling after
// completion.
func PollFunc[T any](fn func(cx *Context) (T, bool)) Future[T] {
	return &funcFuture[T]{fn: fn}
}

func (f *funcFuture[T]) Poll(cx *Context) (T, bool) {
	if f.done {
		panic(panicPolledAfterCompletion)
	}
	v, ok := f.fn(cx)
	if ok {
		f.done = true
		f.fn = nil
	}
	return v, ok
}

type pendingOnce[T any] struct {
	inner   Future[T]
	yielded bool
}

// PendingOnce returns a future that reports not ready on its first poll,
// waking itself, and then behaves like f.
func PendingOnce[T any](f Future[T]) Future[T] {
	return &pendingOnce[T]{inner: f}
}

func (f *pendingOnce[T]) Poll(cx *Context) (T, bool) {
	if !f.yielded {
		f.yielded = true
		cx.Waker().Wake()
		var zero T
		return zero, false
	}
	return f.inner.Poll(cx)
}

type never[T any] struct{}

// Never returns a future that is never ready and never registers interest.
func Never[T any]() Future[T] {
	return never[T]{}
}

func (never[T]) Poll(*Context) (T, bool) {
	var zero T
	return zero, false
}
