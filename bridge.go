// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"code.hybscloud.com/kont"
)

type asyncFuture[R any] struct {
	phase phase
	start func() (R, *kont.Suspension[R])
	susp  *kont.Suspension[R]
}

// Async converts a Cont-world computation that performs [Await] into a
// [Future].
//
// Each poll resumes the computation where it last suspended. Awaited
// futures that are already ready resume the computation immediately, in
// the same poll; only a pending awaited future suspends the whole Async
// future. Performing any effect other than Await panics.
func Async[R any](m kont.Eff[R]) Future[R] {
	return &asyncFuture[R]{start: func() (R, *kont.Suspension[R]) {
		return kont.Step(m)
	}}
}

// AsyncExpr is the Expr-world counterpart of [Async].
//
// kont's Expr evaluator type-asserts the final value, so R must not be an
// interface type that completes as nil. Use [Async] for error results.
func AsyncExpr[R any](m kont.Expr[R]) Future[R] {
	return &asyncFuture[R]{start: func() (R, *kont.Suspension[R]) {
		return Step(m)
	}}
}

func (f *asyncFuture[R]) Poll(cx *Context) (R, bool) {
	switch f.phase {
	case notStarted:
		result, susp := f.start()
		f.start = nil
		if susp == nil {
			f.phase = done
			return result, true
		}
		f.susp, f.phase = susp, running
	case done:
		panic(panicPolledAfterCompletion)
	}
	for {
		result, next, err := Advance(cx, f.susp)
		if err != nil {
			var zero R
			return zero, false
		}
		if next == nil {
			f.susp, f.phase = nil, done
			return result, true
		}
		f.susp = next
	}
}

type asyncStream[T any] struct {
	phase   phase
	m       kont.Eff[struct{}]
	susp    *kont.Suspension[struct{}]
	yielded bool
}

// AsyncStream converts a computation that performs [Yield] (and [Await])
// into a [Stream]. Each Yield produces one item; completion of the
// computation ends the stream.
func AsyncStream[T any](m kont.Eff[struct{}]) Stream[T] {
	return &asyncStream[T]{m: m}
}

func (s *asyncStream[T]) PollNext(cx *Context) (T, Status) {
	var zero T
	switch s.phase {
	case notStarted:
		_, s.susp = kont.Step(s.m)
		s.m, s.phase = nil, running
	case running:
		if s.yielded {
			s.yielded = false
			_, s.susp = s.susp.Resume(yieldResumed)
		}
	default:
		panic(panicStreamAfterEnd)
	}
	for s.susp != nil {
		switch op := s.susp.Op().(type) {
		case Yield[T]:
			s.yielded = true
			return op.Value, Produced
		case awaiter:
			v, ok := op.pollAwait(cx)
			if !ok {
				return zero, Pending
			}
			_, s.susp = s.susp.Resume(v)
		default:
			panic(panicUnhandledEffect)
		}
	}
	s.phase = done
	return zero, Ended
}
