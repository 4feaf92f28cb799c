// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build tinygo && cortexm

package coop

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

const (
	scbSCR       = 0xE000ED10
	scrSEVONPEND = 1 << 4
)

// WFEParker sleeps the core with the wfe instruction.
//
// The event register makes wakes sticky: a sev (or a pending interrupt,
// with SEVONPEND set) that happens before wfe makes the next wfe return
// immediately.
type WFEParker struct{}

// NewWFEParker enables SEVONPEND so that interrupts becoming pending wake
// wfe even when the peripheral's handler has not run yet.
func NewWFEParker() *WFEParker {
	scr := (*volatile.Register32)(unsafe.Pointer(uintptr(scbSCR)))
	scr.SetBits(scrSEVONPEND)
	return &WFEParker{}
}

// Park executes wfe.
func (*WFEParker) Park() { arm.Asm("wfe") }

// Unpark executes sev. Safe from interrupt handlers.
func (*WFEParker) Unpark() { arm.Asm("sev") }

// DefaultParker returns a [WFEParker].
func DefaultParker() Parker {
	return NewWFEParker()
}
