// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coop

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Parker is the platform wait primitive behind a [Waker].
//
// Park puts the CPU (or the driver loop goroutine on hosts) into a
// low-power wait and returns when woken. Returning early is permitted: the
// driver loop treats every return as a wake attempt and checks the Waker.
// Unpark forces a pending or subsequent Park to return; it must be safe
// from interrupt context and must not be lost if it happens before Park.
type Parker interface {
	Park()
	Unpark()
}

// SpinParker is the software-only wait primitive for targets without a
// sleep instruction. Park backs off adaptively with iox.Backoff instead of
// sleeping the CPU, so wakes are observed with bounded latency.
//
// The zero value is ready to use.
type SpinParker struct {
	woke atomix.Uint32
	bo   iox.Backoff
}

// Park waits for one backoff step, or returns immediately after Unpark.
func (p *SpinParker) Park() {
	if p.woke.SwapAcqRel(0) != 0 {
		p.bo.Reset()
		return
	}
	p.bo.Wait()
}

// Unpark makes the next Park return without waiting.
func (p *SpinParker) Unpark() {
	p.woke.StoreRelease(1)
}

// ChanParker parks the driver loop goroutine on a one-slot channel.
// It is the portable host wait primitive.
type ChanParker struct {
	ch chan struct{}
}

// NewChanParker returns a ready ChanParker.
func NewChanParker() *ChanParker {
	return &ChanParker{ch: make(chan struct{}, 1)}
}

// Park blocks until Unpark has been called at least once since the
// previous Park returned.
func (p *ChanParker) Park() {
	<-p.ch
}

// Unpark releases the pending or next Park. Never blocks.
func (p *ChanParker) Unpark() {
	select {
	case p.ch <- struct{}{}:
	default:
	}
}
