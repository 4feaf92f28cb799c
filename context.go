// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

// Context is the handle threaded into every Poll call.
//
// It references the driver loop's [Waker] and carries a rejection-only
// spawn capability. A Context belongs to the poll it was passed into; leaf
// futures that must be woken later store cx.Waker() in a [WakerSlot]
// instead of retaining the Context.
type Context struct {
	waker *Waker
}

// NewContext returns a Context referencing w.
// Used by external loops and tests that poll futures without an [Executor].
func NewContext(w *Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the notification token of the current poll.
func (cx *Context) Waker() *Waker { return cx.waker }

// Spawn always rejects f with [ErrNoSpawn]: exactly one root computation is
// in flight per driver loop.
func (cx *Context) Spawn(f Future[struct{}]) error {
	return ErrNoSpawn
}
