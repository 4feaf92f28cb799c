// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package timer drives a compare-unit timer as coop futures and streams.
//
// A [Timer] wraps a [Hardware] compare unit. Its interrupt handler, the
// fire callback passed to Arm, sets a compare event and wakes the Waker
// registered by the most recent poll. Futures observe and clear the
// event; they never block.
//
//	tm := timer.New(timer.NewHost())
//	v := coop.BlockOn(ex, coop.Timeout(read, tm.Timeout(time.Second)))
package timer

import (
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/coop"
)

// Hardware is a one-shot compare unit.
//
// Arm starts the unit so that fire runs once after d. Arming again
// replaces any pending compare. Disarm cancels a pending compare; a fire
// already in flight may still run. fire may be called from interrupt
// context or from another goroutine and may re-arm the unit.
type Hardware interface {
	Arm(d time.Duration, fire func())
	Disarm()
}

// Timer multiplexes one compare unit between one Timeout or Interval at a
// time. Starting a new one supersedes the previous.
type Timer struct {
	hw    Hardware
	slot  coop.WakerSlot
	event atomix.Uint64 // generation of the last compare, 0 once consumed
	gen   atomix.Uint64 // arm generation, bumped on every Timeout, Interval, Stop
}

// New returns a Timer over hw.
func New(hw Hardware) *Timer {
	return &Timer{hw: hw}
}

// Timeout returns a future that completes once d has elapsed.
//
// The unit is armed on the first poll, and that poll always reports
// pending: even Timeout(0) completes only after the compare interrupt.
func (t *Timer) Timeout(d time.Duration) coop.Future[struct{}] {
	return &timeout{t: t, d: d}
}

// Interval returns an infinite stream producing one item per elapsed
// period d. The unit re-arms on every compare; ticks that elapse between
// two polls coalesce into a single item.
func (t *Timer) Interval(d time.Duration) coop.Stream[struct{}] {
	return &interval{t: t, d: d}
}

// Stop disarms the unit and supersedes the active Timeout or Interval.
func (t *Timer) Stop() {
	t.gen.AddAcqRel(1)
	t.hw.Disarm()
	t.slot.Clear()
}

// start supersedes the previous user, clears stale events and arms the
// unit for d. Returns the generation owning the unit.
func (t *Timer) start(cx *coop.Context, d time.Duration, periodic bool) uint64 {
	gen := t.gen.AddAcqRel(1)
	t.hw.Disarm()
	t.event.StoreRelease(0)
	t.slot.Register(cx.Waker())
	var fire func()
	fire = func() {
		// The event is published only while gen still owns the unit, so a
		// compare from an older generation can never complete a newer one.
		for {
			cur := t.event.LoadAcquire()
			if t.gen.LoadAcquire() != gen {
				return
			}
			if t.event.CompareAndSwapAcqRel(cur, gen) {
				break
			}
		}
		t.slot.Wake()
		if periodic {
			t.hw.Arm(d, fire)
		}
	}
	t.hw.Arm(d, fire)
	return gen
}

// poll reports whether the compare event of gen fired, and clears it.
func (t *Timer) poll(cx *coop.Context, gen uint64) bool {
	if t.gen.LoadAcquire() != gen {
		panic(panicSuperseded)
	}
	t.slot.Register(cx.Waker())
	return t.event.CompareAndSwapAcqRel(gen, 0)
}

const panicSuperseded = "timer: polled after being superseded"

type timeout struct {
	t     *Timer
	d     time.Duration
	gen   uint64
	armed bool
	done  bool
}

func (f *timeout) Poll(cx *coop.Context) (struct{}, bool) {
	if f.done {
		panic("coop: future polled after completion")
	}
	if !f.armed {
		f.armed = true
		f.gen = f.t.start(cx, f.d, false)
		return struct{}{}, false
	}
	if !f.t.poll(cx, f.gen) {
		return struct{}{}, false
	}
	f.done = true
	return struct{}{}, true
}

type interval struct {
	t     *Timer
	d     time.Duration
	gen   uint64
	armed bool
}

func (s *interval) PollNext(cx *coop.Context) (struct{}, coop.Status) {
	if !s.armed {
		s.armed = true
		s.gen = s.t.start(cx, s.d, true)
		return struct{}{}, coop.Pending
	}
	if !s.t.poll(cx, s.gen) {
		return struct{}{}, coop.Pending
	}
	return struct{}{}, coop.Produced
}
