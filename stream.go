// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// Item is an optional stream value. OK is false once the stream has ended.
type Item[T any] struct {
	Value T
	OK    bool
}

type sliceStream[T any] struct {
	items []T
	ended bool
}

// FromSlice returns a stream producing items in order, each immediately.
// items is read but never modified.
func FromSlice[T any](items []T) Stream[T] {
	return &sliceStream[T]{items: items}
}

func (s *sliceStream[T]) PollNext(*Context) (T, Status) {
	var zero T
	if s.ended {
		panic(panicStreamAfterEnd)
	}
	if len(s.items) == 0 {
		s.ended = true
		return zero, Ended
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, Produced
}

type filterStream[T any] struct {
	inner Stream[T]
	keep  func(T) bool
}

// Filter produces the items of s for which keep reports true. Rejected
// items are skipped within the same poll.
func Filter[T any](s Stream[T], keep func(T) bool) Stream[T] {
	return &filterStream[T]{inner: s, keep: keep}
}

func (f *filterStream[T]) PollNext(cx *Context) (T, Status) {
	for {
		v, st := f.inner.PollNext(cx)
		if st != Produced || f.keep(v) {
			return v, st
		}
	}
}

type filterMapStream[A, B any] struct {
	inner   Stream[A]
	f       func(A) Future[Item[B]]
	current Future[Item[B]]
}

// FilterMap maps each item of s through the future returned by f, producing
// the values whose Item is OK. While a mapped future is pending, s is not
// advanced.
func FilterMap[A, B any](s Stream[A], f func(A) Future[Item[B]]) Stream[B] {
	return &filterMapStream[A, B]{inner: s, f: f}
}

func (m *filterMapStream[A, B]) PollNext(cx *Context) (B, Status) {
	var zero B
	for {
		if m.current != nil {
			it, ok := m.current.Poll(cx)
			if !ok {
				return zero, Pending
			}
			m.current = nil
			if it.OK {
				return it.Value, Produced
			}
		}
		a, st := m.inner.PollNext(cx)
		switch st {
		case Produced:
			m.current = m.f(a)
		case Ended:
			return zero, Ended
		default:
			return zero, Pending
		}
	}
}

type nextFuture[T any] struct {
	s    Stream[T]
	done bool
}

// Next returns a future of the next item of s. The Item is not OK when s
// has ended.
func Next[T any](s Stream[T]) Future[Item[T]] {
	return &nextFuture[T]{s: s}
}

func (n *nextFuture[T]) Poll(cx *Context) (Item[T], bool) {
	if n.done {
		panic(panicPolledAfterCompletion)
	}
	v, st := n.s.PollNext(cx)
	switch st {
	case Produced:
		n.done = true
		return Item[T]{Value: v, OK: true}, true
	case Ended:
		n.done = true
		return Item[T]{}, true
	}
	return Item[T]{}, false
}

type firstFuture[T any] struct {
	s    Stream[T]
	done bool
}

// First returns a future of the next item of an infinite stream such as a
// timer interval. It panics if s ends.
func First[T any](s Stream[T]) Future[T] {
	return &firstFuture[T]{s: s}
}

func (f *firstFuture[T]) Poll(cx *Context) (T, bool) {
	if f.done {
		panic(panicPolledAfterCompletion)
	}
	v, st := f.s.PollNext(cx)
	switch st {
	case Produced:
		f.done = true
		return v, true
	case Ended:
		panic(panicInfiniteStreamEnded)
	}
	return v, false
}

type takeStream[T any] struct {
	inner Stream[T]
	left  int
	ended bool
}

// Take produces at most n items of s, then ends without polling s again.
func Take[T any](s Stream[T], n int) Stream[T] {
	return &takeStream[T]{inner: s, left: n}
}

func (t *takeStream[T]) PollNext(cx *Context) (T, Status) {
	var zero T
	if t.ended {
		panic(panicStreamAfterEnd)
	}
	if t.left <= 0 {
		t.ended = true
		t.inner = nil
		return zero, Ended
	}
	v, st := t.inner.PollNext(cx)
	switch st {
	case Produced:
		t.left--
	case Ended:
		t.ended = true
		t.inner = nil
	}
	return v, st
}
