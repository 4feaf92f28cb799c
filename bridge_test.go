// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop_test

import (
	"errors"
	"reflect"
	"testing"

	"code.hybscloud.com/coop"
	"code.hybscloud.com/kont"
)

const panicUnhandledEffect = "coop: unhandled effect in Async"

func TestAsyncReadyChainOnePoll(t *testing.T) {
	ex := newExecutor(t)
	m := coop.AwaitBind(coop.Ready(1), func(a int) kont.Eff[int] {
		return coop.AwaitBind(coop.Ready(a+1), func(b int) kont.Eff[int] {
			return kont.Pure(b * 2)
		})
	})
	if got := coop.BlockOn(ex, coop.Async(m)); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	if st := ex.Stats(); st.Polls != 1 || st.Parks != 0 {
		t.Fatalf("stats: got %+v, want one poll", st)
	}
}

func TestAsyncSuspendsOnPendingAwait(t *testing.T) {
	ex := newExecutor(t)
	m := coop.AwaitBind(countdown(2, 5), func(v int) kont.Eff[int] {
		return coop.AwaitThen(coop.Ready("ignored"), kont.Pure(v+1))
	})
	if got := coop.BlockOn(ex, coop.Async(m)); got != 6 {
		t.Fatalf("got %d, want 6", got)
	}
	if st := ex.Stats(); st.Polls != 3 || st.Parks != 2 {
		t.Fatalf("stats: got %+v, want 3 polls and 2 parks", st)
	}
}

func TestAsyncPure(t *testing.T) {
	_, cx := newCx()
	f := coop.Async(kont.Pure("done"))
	if v, ok := f.Poll(cx); !ok || v != "done" {
		t.Fatalf("got (%q, %v)", v, ok)
	}
	expectPanic(t, panicPolledAfterCompletion, func() { f.Poll(cx) })
}

func TestAsyncExpr(t *testing.T) {
	ex := newExecutor(t)
	m := coop.ExprAwaitBind(countdown(1, 20), func(v int) kont.Expr[int] {
		return coop.ExprAwaitThen(coop.Ready(struct{}{}), kont.ExprReturn(v+2))
	})
	if got := coop.BlockOn(ex, coop.AsyncExpr(m)); got != 22 {
		t.Fatalf("got %d, want 22", got)
	}
}

func TestAsyncUnhandledEffect(t *testing.T) {
	_, cx := newCx()
	f := coop.Async(kont.Perform(kont.Get[int]{}))
	expectPanic(t, panicUnhandledEffect, func() { f.Poll(cx) })
}

func TestAwaitEff(t *testing.T) {
	ex := newExecutor(t)
	m := kont.Map(coop.AwaitEff(countdown(1, 3)), func(v int) int { return v * 3 })
	if got := coop.BlockOn(ex, coop.Async(m)); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
}

func TestAsyncStream(t *testing.T) {
	ex := newExecutor(t)
	m := coop.YieldThen(1,
		coop.AwaitThen(countdown(1, struct{}{}),
			coop.YieldThen(2, kont.Pure(struct{}{}))))
	s := coop.AsyncStream[int](m)
	got := coop.BlockOn(ex, coop.Collect(s))
	if !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("got %v", got)
	}
	_, cx := newCx()
	expectPanic(t, panicStreamAfterEnd, func() { s.PollNext(cx) })
}

func TestAsyncStreamForward(t *testing.T) {
	ex := newExecutor(t)
	items := coop.Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		if i == 4 {
			return kont.Pure(kont.Right[int](struct{}{}))
		}
		return coop.YieldThen(i*i, kont.Pure(kont.Left[int, struct{}](i+1)))
	})
	sink := &recordingSink[int]{t: t}
	if err := coop.BlockOn(ex, coop.Forward(coop.AsyncStream[int](items), sink)); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sink.items, []int{0, 1, 4, 9}) {
		t.Fatalf("got %v", sink.items)
	}
}

func TestLoopAwaits(t *testing.T) {
	ex := newExecutor(t)
	sum := coop.Loop(loopState{}, func(p loopState) kont.Eff[kont.Either[loopState, int]] {
		if p.i == 5 {
			return kont.Pure(kont.Right[loopState](p.acc))
		}
		return coop.AwaitBind(countdown(p.i%2, p.i), func(v int) kont.Eff[kont.Either[loopState, int]] {
			return kont.Pure(kont.Left[loopState, int](loopState{i: p.i + 1, acc: p.acc + v}))
		})
	})
	if got := coop.BlockOn(ex, coop.Async(sum)); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}

// loopState is the loop state of TestLoopAwaits.
type loopState struct{ i, acc int }

func TestForever(t *testing.T) {
	ex := newExecutor(t)
	stop := errors.New("stop")
	n := 0
	m := coop.Forever(func() kont.Eff[error] {
		return coop.AwaitBind(countdown(1, n), func(v int) kont.Eff[error] {
			n++
			if v == 3 {
				return kont.Pure(stop)
			}
			return kont.Pure[error](nil)
		})
	})
	if err := coop.BlockOn(ex, coop.Async(m)); !errors.Is(err, stop) {
		t.Fatalf("got %v, want stop", err)
	}
	if n != 4 {
		t.Fatalf("iterations: got %d, want 4", n)
	}
}

func TestAwaitNilError(t *testing.T) {
	ex := newExecutor(t)
	m := coop.AwaitBind(coop.Ready[error](nil), func(err error) kont.Eff[string] {
		return coop.AwaitBind(countdown[error](1, nil), func(err2 error) kont.Eff[string] {
			if err != nil || err2 != nil {
				return kont.Pure("non-nil")
			}
			return kont.Pure("ok")
		})
	})
	if got := coop.BlockOn(ex, coop.Async(m)); got != "ok" {
		t.Fatalf("got %q, want ok", got)
	}
}

func TestAwaitEffNilError(t *testing.T) {
	ex := newExecutor(t)
	m := coop.AwaitThen(countdown(1, 0), coop.AwaitEff(coop.Ready[error](nil)))
	if err := coop.BlockOn(ex, coop.Async(m)); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
}

func TestAwaitResumesAwaited(t *testing.T) {
	ex := newExecutor(t)
	m := kont.Perform(coop.Await[any]{Future: coop.Ready[any](nil)})
	got := coop.BlockOn(ex, coop.Async(m))
	if got.Value != nil {
		t.Fatalf("got %+v, want a nil Value", got)
	}
}

func TestAsyncStreamAwaitsNilError(t *testing.T) {
	ex := newExecutor(t)
	m := coop.AwaitBind(countdown[error](1, nil), func(err error) kont.Eff[struct{}] {
		return coop.YieldThen(err == nil, kont.Pure(struct{}{}))
	})
	got := coop.BlockOn(ex, coop.Collect(coop.AsyncStream[bool](m)))
	if !reflect.DeepEqual(got, []bool{true}) {
		t.Fatalf("got %v", got)
	}
}
