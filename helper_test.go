// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop_test

import (
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/coop"
)

// newExecutor claims the executor for one test, parked on a channel.
// Later options override the parker.
func newExecutor(tb testing.TB, options ...coop.Option) *coop.Executor {
	tb.Helper()
	options = append([]coop.Option{coop.WithParker(coop.NewChanParker())}, options...)
	ex, err := coop.New(options...)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	tb.Cleanup(func() { ex.Close() })
	return ex
}

// newCx returns a context on a standalone Waker.
func newCx() (*coop.Waker, *coop.Context) {
	w := coop.NewWaker(coop.NewChanParker())
	return w, coop.NewContext(w)
}

// expectPanic runs fn and fails the test unless it panics with want.
func expectPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if r := recover(); r != want {
			t.Fatalf("panic: got %v, want %q", r, want)
		}
	}()
	fn()
}

// gate is a future opened from outside the driver loop, the way an
// interrupt handler completes a leaf future.
type gate struct {
	slot coop.WakerSlot
	open atomix.Bool
}

func (g *gate) Poll(cx *coop.Context) (struct{}, bool) {
	g.slot.Register(cx.Waker())
	return struct{}{}, g.open.LoadAcquire()
}

func (g *gate) Open() {
	g.open.StoreRelease(true)
	g.slot.Wake()
}

// scriptParker runs step before every Park. When step reports true, Park
// returns without waiting for an Unpark, which is a spurious wake.
type scriptParker struct {
	ch   *coop.ChanParker
	n    int
	step func(n int) bool
}

func newScriptParker(step func(n int) bool) *scriptParker {
	return &scriptParker{ch: coop.NewChanParker(), step: step}
}

func (p *scriptParker) Park() {
	p.n++
	if p.step(p.n) {
		return
	}
	p.ch.Park()
}

func (p *scriptParker) Unpark() { p.ch.Unpark() }

// manualHW is a timer compare unit fired by the test.
type manualHW struct {
	fire func()
}

func (h *manualHW) Arm(_ time.Duration, fire func()) { h.fire = fire }
func (h *manualHW) Disarm()                          { h.fire = nil }

func (h *manualHW) Fire() {
	f := h.fire
	h.fire = nil
	if f != nil {
		f()
	}
}

// recordingSink checks the Sink protocol and records accepted items.
// It reports ready on every other PollReady call and fails the test if
// StartSend is called without a preceding ready report.
type recordingSink[T any] struct {
	t       *testing.T
	items   []T
	ready   bool
	toggle  bool
	flushes int
	closed  bool
	failAt  int
	failErr error
}

func (s *recordingSink[T]) PollReady(cx *coop.Context) (bool, error) {
	if s.ready {
		return true, nil
	}
	s.toggle = !s.toggle
	if s.toggle {
		cx.Waker().Wake()
		return false, nil
	}
	s.ready = true
	return true, nil
}

func (s *recordingSink[T]) StartSend(item T) error {
	if !s.ready {
		s.t.Fatalf("StartSend without readiness after %d items", len(s.items))
	}
	s.ready = false
	if s.failErr != nil && len(s.items) == s.failAt {
		return s.failErr
	}
	s.items = append(s.items, item)
	return nil
}

func (s *recordingSink[T]) PollFlush(*coop.Context) (bool, error) {
	s.flushes++
	return true, nil
}

func (s *recordingSink[T]) PollClose(*coop.Context) (bool, error) {
	if s.closed {
		s.t.Fatal("sink closed twice")
	}
	s.closed = true
	return true, nil
}

// countdown is pending n times, waking itself each time, then ready with v.
func countdown[T any](n int, v T) coop.Future[T] {
	return coop.FutureFunc[T](func(cx *coop.Context) (T, bool) {
		if n > 0 {
			n--
			cx.Waker().Wake()
			var zero T
			return zero, false
		}
		return v, true
	})
}
