// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import "code.hybscloud.com/kont"

type thenFuture[A, B any] struct {
	phase  phase
	first  Future[A]
	f      func(A) Future[B]
	second Future[B]
}

// Then sequences a and the future built from its result.
//
// While a is pending, Then reports pending without building the second
// future. Once a completes it is dropped, f runs, and the second future is
// polled in the same call, so a chain of ready steps completes in a single
// driver loop pass.
func Then[A, B any](a Future[A], f func(A) Future[B]) Future[B] {
	return &thenFuture[A, B]{first: a, f: f}
}

func (t *thenFuture[A, B]) Poll(cx *Context) (B, bool) {
	switch t.phase {
	case notStarted:
		a, ok := t.first.Poll(cx)
		if !ok {
			var zero B
			return zero, false
		}
		t.first = nil
		t.second = t.f(a)
		t.f = nil
		t.phase = running
		fallthrough
	case running:
		b, ok := t.second.Poll(cx)
		if ok {
			t.second = nil
			t.phase = done
		}
		return b, ok
	}
	panic(panicPolledAfterCompletion)
}

type mapFuture[A, B any] struct {
	inner Future[A]
	f     func(A) B
}

// Map applies f to the result of a.
func Map[A, B any](a Future[A], f func(A) B) Future[B] {
	return &mapFuture[A, B]{inner: a, f: f}
}

func (m *mapFuture[A, B]) Poll(cx *Context) (B, bool) {
	if m.inner == nil {
		panic(panicPolledAfterCompletion)
	}
	a, ok := m.inner.Poll(cx)
	if !ok {
		var zero B
		return zero, false
	}
	f := m.f
	m.inner, m.f = nil, nil
	return f(a), true
}

type selectFuture[A, B any] struct {
	left  Future[A]
	right Future[B]
	done  bool
}

// Select races a against b. Each poll advances a first, then b; the first
// to complete wins and the other is dropped. The result is Left for a and
// Right for b.
func Select[A, B any](a Future[A], b Future[B]) Future[kont.Either[A, B]] {
	return &selectFuture[A, B]{left: a, right: b}
}

func (s *selectFuture[A, B]) Poll(cx *Context) (kont.Either[A, B], bool) {
	if s.done {
		panic(panicPolledAfterCompletion)
	}
	if a, ok := s.left.Poll(cx); ok {
		s.finish()
		return kont.Left[A, B](a), true
	}
	if b, ok := s.right.Poll(cx); ok {
		s.finish()
		return kont.Right[A, B](b), true
	}
	var zero kont.Either[A, B]
	return zero, false
}

func (s *selectFuture[A, B]) finish() {
	s.done = true
	s.left, s.right = nil, nil
}

// Timeout races f against deadline. It completes with Right(value) when f
// wins and with Left([ErrTimeout]) when deadline completes first.
func Timeout[T any](f Future[T], deadline Future[struct{}]) Future[kont.Either[error, T]] {
	return Map(Select(f, deadline), func(e kont.Either[T, struct{}]) kont.Either[error, T] {
		if v, ok := e.GetLeft(); ok {
			return kont.Right[error, T](v)
		}
		return kont.Left[error, T](ErrTimeout)
	})
}

// Pair holds the results of [Join].
type Pair[A, B any] struct {
	First  A
	Second B
}

type joinFuture[A, B any] struct {
	left      Future[A]
	right     Future[B]
	pair      Pair[A, B]
	leftDone  bool
	rightDone bool
	done      bool
}

// Join waits for both a and b. Each poll advances whichever is still
// pending, a before b. Both share the single Waker: any notification
// re-polls both pending sides.
func Join[A, B any](a Future[A], b Future[B]) Future[Pair[A, B]] {
	return &joinFuture[A, B]{left: a, right: b}
}

func (j *joinFuture[A, B]) Poll(cx *Context) (Pair[A, B], bool) {
	if j.done {
		panic(panicPolledAfterCompletion)
	}
	if !j.leftDone {
		if a, ok := j.left.Poll(cx); ok {
			j.pair.First, j.leftDone, j.left = a, true, nil
		}
	}
	if !j.rightDone {
		if b, ok := j.right.Poll(cx); ok {
			j.pair.Second, j.rightDone, j.right = b, true, nil
		}
	}
	if !j.leftDone || !j.rightDone {
		var zero Pair[A, B]
		return zero, false
	}
	j.done = true
	p := j.pair
	j.pair = Pair[A, B]{}
	return p, true
}
