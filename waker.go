// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import "code.hybscloud.com/atomix"

// Waker is the process-wide notification token of an [Executor].
//
// It is a single-slot, edge-triggered signal: any number of Wake calls
// between two TestAndClear calls collapse into one notification. Wake is
// safe from interrupt context and from any goroutine standing in for an
// interrupt handler. TestAndClear belongs to the driver loop: while a
// [BlockOn] run is in progress, calling it from any other goroutine panics.
//
// A Waker is always shared by pointer; handing it to drivers never
// allocates.
type Waker struct {
	flag   wakeFlag
	parker Parker
	owner  atomix.Uint64 // goroutine of the active BlockOn run, 0 when idle
}

// NewWaker returns a standalone Waker backed by p, for loops that poll
// futures without an [Executor]. Use it with [NewContext].
func NewWaker(p Parker) *Waker {
	return &Waker{parker: p}
}

// Wake marks the token signalled and forces the CPU out of its low-power
// wait so a parked driver loop observes the notification promptly.
func (w *Waker) Wake() {
	w.flag.set()
	w.parker.Unpark()
}

// TestAndClear reports whether the token was signalled since the previous
// call, and clears it.
func (w *Waker) TestAndClear() bool {
	if o := w.owner.LoadAcquire(); o != 0 && o != currentOwner() {
		panic(panicWakerOwner)
	}
	return w.flag.testAndClear()
}

// bind records the calling goroutine as the driver loop.
// Returns false if a run is already bound.
func (w *Waker) bind() bool {
	return w.owner.CompareAndSwapAcqRel(0, currentOwner())
}

// unbind releases the driver loop binding.
func (w *Waker) unbind() {
	w.owner.StoreRelease(0)
}
