// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build tinygo && (nrf51 || atsamd21 || rp2040)

package coop

import "runtime/interrupt"

// wakeFlag is the signalled bit of a Waker on Cortex-M0 class cores, which
// lack exclusive load/store. Both operations run with interrupts disabled.
type wakeFlag struct {
	v bool
}

func (f *wakeFlag) set() {
	s := interrupt.Disable()
	f.v = true
	interrupt.Restore(s)
}

func (f *wakeFlag) testAndClear() bool {
	s := interrupt.Disable()
	v := f.v
	f.v = false
	interrupt.Restore(s)
	return v
}
