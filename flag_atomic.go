// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !(tinygo && (nrf51 || atsamd21 || rp2040))

package coop

import "code.hybscloud.com/atomix"

// wakeFlag is the signalled bit of a Waker on targets with atomic
// read-modify-write instructions.
type wakeFlag struct {
	v atomix.Uint32
}

// set publishes the signal with release ordering; everything the waker
// wrote before Wake is visible to the loop that observes it.
func (f *wakeFlag) set() {
	f.v.StoreRelease(1)
}

func (f *wakeFlag) testAndClear() bool {
	return f.v.SwapAcqRel(0) != 0
}
